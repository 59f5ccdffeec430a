// ABOUTME: Root bubbletea model for the interactive assessment
// ABOUTME: Runs the wizard, shows a spinner while the backend assesses, then the result

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Eswari2225/DropSaviors/cli/internal/client"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/icons"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/styles"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/wizard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned by Run when the user leaves the wizard
var ErrCancelled = errors.New("assessment cancelled")

// Screen represents the current TUI screen
type Screen int

const (
	ScreenWizard Screen = iota
	ScreenSubmitting
	ScreenResult
)

const minTerminalWidth = 80

// assessedMsg is sent when the backend answers the assessment
type assessedMsg struct {
	result *client.Assessment
	err    error
}

// Assessor submits a completed assessment
type Assessor interface {
	Assess(ctx context.Context, input *client.AssessmentInput) (*client.Assessment, error)
}

// App is the root model for the TUI
type App struct {
	ctx       context.Context
	assessor  Assessor
	screen    Screen
	width     int
	height    int
	wizard    *wizard.Wizard
	spinner   spinner.Model
	result    *client.Assessment
	err       error
	cancelled bool
}

// New creates the app with a wizard populated from meta
func New(ctx context.Context, assessor Assessor, meta *client.Meta) *App {
	if ctx == nil {
		ctx = context.Background()
	}
	return &App{
		ctx:      ctx,
		assessor: assessor,
		screen:   ScreenWizard,
		wizard:   wizard.New(meta),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.wizard.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// One column short of the terminal to avoid wrapping
		a.width = msg.Width - 1
		a.height = msg.Height
		a.wizard.SetWidth(a.width)
		if a.screen == ScreenWizard {
			return a.updateWizard(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.cancelled = a.screen != ScreenResult
			return a, tea.Quit
		}
		switch a.screen {
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenResult:
			switch msg.String() {
			case "q", "esc", "enter":
				return a, tea.Quit
			}
		}
		return a, nil

	case wizard.WizardCompleteMsg:
		a.screen = ScreenSubmitting
		return a, tea.Batch(a.spinner.Tick, a.submit(msg.Input))

	case wizard.WizardCancelledMsg:
		a.cancelled = true
		return a, tea.Quit

	case assessedMsg:
		a.result = msg.result
		a.err = msg.err
		a.screen = ScreenResult
		return a, nil

	case spinner.TickMsg:
		if a.screen != ScreenSubmitting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	default:
		// huh form internals arrive as unknown messages
		if a.screen == ScreenWizard {
			return a.updateWizard(msg)
		}
	}

	return a, nil
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.wizard.Update(msg)
	a.wizard = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) submit(input *client.AssessmentInput) tea.Cmd {
	return func() tea.Msg {
		result, err := a.assessor.Assess(a.ctx, input)
		return assessedMsg{result: result, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenWizard:
		content = a.wizard.View()
	case ScreenSubmitting:
		content = fmt.Sprintf("\n %s Estimating harvest and sizing a structure...\n", a.spinner.View())
	case ScreenResult:
		if a.err != nil {
			content = styles.StatusCritical.Render(icons.Critical.String() + " Error: " + a.err.Error())
		} else {
			content = styles.Panel.Render(RenderAssessment(a.result))
		}
	}

	return a.wrapWithFrame(content)
}

// frameWidth guards against zero/small width before WindowSizeMsg is received
func (a *App) frameWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

// renderHeader creates the header bar with app branding
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)

	left := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Rainwater Harvesting Assessment"))
	fillWidth := max(0, width-4-lipgloss.Width(left)) // -4 for ╭─ and ─╮

	return borderStyle.Render("╭─" + left + strings.Repeat("─", fillWidth) + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts for the current screen
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenWizard:
		shortcuts = []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	case ScreenSubmitting:
		shortcuts = []string{"ctrl+c Abort"}
	case ScreenResult:
		shortcuts = []string{"q Quit"}
	}

	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styled = append(styled, styles.KeyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}
	left := " " + strings.Join(styled, "  ") + " "
	leftPlain := " " + strings.Join(shortcuts, "  ") + " "
	fillWidth := max(0, width-4-lipgloss.Width(leftPlain)) // -4 for ╰─ and ─╯

	return borderStyle.Render("╰─" + left + strings.Repeat("─", fillWidth) + "─╯")
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the interactive assessment and returns the backend's answer.
func Run(ctx context.Context, assessor Assessor, meta *client.Meta) (*client.Assessment, error) {
	app := New(ctx, assessor, meta)

	p := tea.NewProgram(
		app,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	result := final.(*App)
	if result.cancelled {
		return nil, ErrCancelled
	}
	return result.result, result.err
}
