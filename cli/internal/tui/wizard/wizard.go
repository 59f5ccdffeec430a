// ABOUTME: Assessment wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Eswari2225/DropSaviors/cli/internal/client"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/icons"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Input *client.AssessmentInput
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard collects an assessment request as a bubbletea model
type Wizard struct {
	meta  *client.Meta
	input *client.AssessmentInput
	form  *huh.Form
	step  int
	width int

	// Form field values (strings for huh)
	district     string
	station      string
	roofType     string
	roofArea     string
	hasOpenSpace bool
	openArea     string
}

// Step names for progress indicator
var stepNames = []string{"District", "Station & Roof", "Open Space"}

const defaultRoofType = "concrete"

// createTheme returns a custom huh theme in the CLI water palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Water palette
	cyan := lipgloss.Color("#06B6D4")      // Cyan-500 - primary
	cyanLight := lipgloss.Color("#22D3EE") // Cyan-400 - accents
	blue := lipgloss.Color("#3B82F6")      // Blue-500 - info
	gray := lipgloss.Color("#9CA3AF")      // Gray-400 - muted
	grayLight := lipgloss.Color("#E5E7EB") // Gray-200 - text
	red := lipgloss.Color("#F87171")       // Red-400 - errors
	slate := lipgloss.Color("#334155")     // Slate-700 - borders

	// Group styles (section headers)
	t.Group.Title = lipgloss.NewStyle().
		Foreground(cyan).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	// Focused field styles
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(cyan)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(cyanLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	// Select field styles
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(cyan).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(cyan).
		Bold(true)
	t.Focused.NextIndicator = lipgloss.NewStyle().
		Foreground(cyan).
		MarginLeft(1).
		SetString("→")
	t.Focused.PrevIndicator = lipgloss.NewStyle().
		Foreground(cyan).
		MarginRight(1).
		SetString("←")

	// Text input styles
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(cyan)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(cyan)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	// Button styles
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	// Blurred field styles (inherit from focused with muted colors)
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// New creates a wizard whose choices come from the backend metadata
func New(meta *client.Meta) *Wizard {
	if meta == nil {
		meta = &client.Meta{}
	}
	w := &Wizard{
		meta:         meta,
		input:        &client.AssessmentInput{HasOpenSpace: true},
		step:         1,
		roofType:     defaultRoofType,
		roofArea:     "100",
		hasOpenSpace: true,
		openArea:     "0",
	}
	if len(meta.Districts) > 0 {
		w.district = meta.Districts[0]
	}
	if len(meta.RoofTypes) > 0 && !contains(meta.RoofTypes, defaultRoofType) {
		w.roofType = meta.RoofTypes[0]
	}

	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("District").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(huh.NewOptions(w.meta.Districts...)...).
				Height(10).
				Value(&w.district),
		).Title("Step 1: District").
			Description("Where is the building?"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	stations := w.meta.Stations[w.district]
	if len(stations) > 0 && !contains(stations, w.station) {
		w.station = stations[0]
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Rain gauge station").
				Description("Nearest station in "+w.district).
				Options(huh.NewOptions(stations...)...).
				Value(&w.station),
			huh.NewSelect[string]().
				Title("Roof material").
				Description("Sets the runoff coefficient").
				Options(huh.NewOptions(w.meta.RoofTypes...)...).
				Value(&w.roofType),
			huh.NewInput().
				Title("Roof area (m²)").
				Description("Type a number and press Enter to continue").
				Placeholder("e.g., 120").
				CharLimit(8).
				Value(&w.roofArea).
				Validate(validatePositiveArea),
		).Title("Step 2: Station & Roof").
			Description("Which rainfall record and catchment should be used?"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Is there open ground for a recharge structure?").
				Description("Without open space only a storage tank is recommended").
				Affirmative("Yes").
				Negative("No").
				Value(&w.hasOpenSpace),
			huh.NewInput().
				Title("Open area (m²)").
				Description("Leave 0 if unknown; ignored without open space").
				CharLimit(8).
				Value(&w.openArea).
				Validate(validateArea),
		).Title("Step 3: Open Space").
			Description("Recharge pits, trenches and shafts need open ground"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		// Forward to form
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	// Update the current form
	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	// Check if form is complete
	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.input.District = w.district
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.input.Station = w.station
		w.input.RoofType = w.roofType
		w.input.RoofAreaM2, _ = strconv.ParseFloat(strings.TrimSpace(w.roofArea), 64)
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		w.input.HasOpenSpace = w.hasOpenSpace
		w.input.OpenAreaM2 = 0
		if w.hasOpenSpace {
			w.input.OpenAreaM2, _ = strconv.ParseFloat(strings.TrimSpace(w.openArea), 64)
		}

		return w, func() tea.Msg {
			return WizardCompleteMsg{Input: w.input}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	// Progress indicator
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	// Form content
	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	// Use width - 1 to ensure progress box fits within the frame
	// (w.width is already a.width - 1, so this gives a.width - 2 total)
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	// Build step indicators
	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		if stepNum < w.step {
			// Completed step
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == w.step {
			// Current step
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			// Future step
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	totalSteps := len(stepNames)
	filledWidth := (w.step * barWidth) / totalSteps
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))
	progressBar := filledBar + emptyBar

	// Build panel with consistent width
	styledTitle := titleStyle.Render("Progress")
	titleWidth := lipgloss.Width("Progress")

	// Top border: "┌─ " + title + " " + fill + "┐"
	// Total = 3 + titleWidth + 1 + fillWidth + 1 = width
	topFillWidth := max(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	// Steps line: "│ " + content + padding + " │" = 4 chars overhead
	stepsLineWidth := lipgloss.Width(stepsLine)
	stepsPadding := max(0, width-4-stepsLineWidth)
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	// Progress line: "│  " + bar + " │" (extra indent for visual alignment)
	progressLinePadded := "│  " + progressBar + " │"

	// Bottom border: "└" + fill + "┘"
	bottomFillWidth := width - 2
	bottomBorder := "└" + strings.Repeat("─", bottomFillWidth) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

// GetInput returns the collected assessment input
func (w *Wizard) GetInput() *client.AssessmentInput {
	return w.input
}

func validatePositiveArea(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateArea(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("must be zero or a positive number")
	}
	return nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
