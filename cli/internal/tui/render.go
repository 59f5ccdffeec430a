// ABOUTME: Lipgloss renderers for forecasts, outlooks, assessments and designs
// ABOUTME: Shared by the non-interactive commands and the wizard's result screen

package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Eswari2225/DropSaviors/cli/internal/client"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/icons"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/styles"
	"github.com/Eswari2225/DropSaviors/cli/internal/tui/widgets"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerCell = lipgloss.NewStyle().Foreground(styles.Muted).Bold(true)
	numberCell = lipgloss.NewStyle().Align(lipgloss.Right)
)

// RenderForecast renders a station forecast as a year table plus sparkline.
func RenderForecast(fc *client.Forecast) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s / %s", icons.Rain.String(), fc.District, fc.Station)))
	sb.WriteString("\n")

	years, values := fc.Series.Points()
	rows := make([][]string, len(years))
	for i, year := range years {
		marker := ""
		if year == fc.PeakYear {
			marker = styles.StatusOK.Render("peak")
		}
		rows[i] = []string{fmt.Sprint(year), fmt.Sprintf("%.2f", values[i]), marker}
	}
	sb.WriteString(table([]string{"Year", "Rainfall (mm)", ""}, rows))
	sb.WriteString("\n\n")

	if len(years) > 0 {
		sb.WriteString(widgets.YearSparkline(values, years[0], styles.Primary))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.KeyValue("History years", fmt.Sprint(len(fc.History))))
	return sb.String()
}

// RenderOutlook renders one row per station with its trend.
func RenderOutlook(o *client.Outlook) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s outlook %d-%d", icons.Location.String(), o.District, o.StartYear, o.EndYear)))
	sb.WriteString("\n")

	rows := make([][]string, len(o.Stations))
	for i, s := range o.Stations {
		rows[i] = []string{
			s.Station,
			fmt.Sprintf("%.2f", s.FirstValue),
			fmt.Sprintf("%.2f", s.LastValue),
			fmt.Sprintf("%d (%.2f)", s.PeakYear, s.PeakRainfallMM),
			widgets.TrendIndicator(s.Trend),
		}
	}
	sb.WriteString(table([]string{"Station", fmt.Sprint(o.StartYear), fmt.Sprint(o.EndYear), "Peak", "Trend"}, rows))
	return sb.String()
}

// RenderAssessment renders the harvest estimate and recommended structure.
func RenderAssessment(a *client.Assessment) string {
	if a == nil {
		return ""
	}
	rec := a.Recommendation

	lines := []string{
		styles.Title.Render(fmt.Sprintf("%s %s", icons.Rain.String(), rec.StructureType)) + "  " + widgets.FeasibilityBadge(rec.Feasibility),
		styles.KeyValue("Location", a.District+" / "+a.Station),
		styles.KeyValue("Roof", fmt.Sprintf("%s, %.1f m² (C=%.2f)", a.RoofType, a.RoofAreaM2, a.RunoffCoefficient)),
		styles.KeyValue("Design rainfall", fmt.Sprintf("%.2f mm in %d", a.PeakRainfallMM, a.PeakYear)),
		styles.KeyValue("Harvestable", fmt.Sprintf("%s L / year", formatThousands(a.HarvestedLiters))),
		styles.KeyValue("Structure size", formatDimensions(rec.Dimensions)),
	}
	if years, values := a.RainfallSeries.Points(); len(years) > 0 {
		lines = append(lines, styles.KeyValue("Forecast", "")+widgets.YearSparkline(values, years[0], styles.Primary))
	}
	if rec.Message != "" {
		lines = append(lines, "", widgets.StatusText(rec.Message, widgets.StatusWarning))
	}
	if rec.Description != "" {
		lines = append(lines, styles.Subtitle.Render(rec.Description))
	}
	if len(rec.CostSummary) > 0 {
		lines = append(lines, renderSummary(rec.CostSummary))
	}
	return strings.Join(lines, "\n")
}

// RenderDesign renders packed components and the cost breakdown.
func RenderDesign(d *client.Design) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s (%s)", icons.Tank.String(), d.SystemType, d.Purpose)))
	sb.WriteString("\n")
	sb.WriteString(styles.KeyValue("Required", formatThousands(d.RequiredCapacityLiters)+" L"))
	sb.WriteString("\n")
	if d.CustomVolume != nil {
		custom := fmt.Sprintf("%.2f L (%.4f m³)", d.CustomVolume.Liters, d.CustomVolume.CubicMeters)
		if d.CustomVolume.Degenerate {
			custom = styles.StatusWarning.Render("invalid dimensions, volume 0")
		}
		sb.WriteString(styles.KeyValue("Custom volume", custom))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	rows := make([][]string, len(d.Components))
	for i, c := range d.Components {
		rows[i] = []string{c.Label, fmt.Sprint(c.Count), formatThousands(int(c.UnitVolumeLiters))}
	}
	sb.WriteString(table([]string{"Component", "Count", "Liters each"}, rows))
	sb.WriteString("\n\n")

	itemRows := make([][]string, len(d.Cost.Items))
	for i, item := range d.Cost.Items {
		subtotal := 0
		for _, v := range item.Costs {
			subtotal += v
		}
		itemRows[i] = []string{item.Label, fmt.Sprintf("%g %s", item.Quantity, item.Unit), formatRupees(subtotal)}
	}
	sb.WriteString(table([]string{"Item", "Quantity", "Cost"}, itemRows))
	sb.WriteString("\n\n")
	sb.WriteString(renderSummary(d.Cost.Summary))
	return sb.String()
}

// renderSummary lists summary entries alphabetically with the total last.
func renderSummary(summary map[string]int) string {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		if k != "total" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(summary))
	for _, k := range keys {
		lines = append(lines, styles.KeyValue(strings.ReplaceAll(k, "_", " "), formatRupees(summary[k])))
	}
	if total, ok := summary["total"]; ok {
		lines = append(lines, styles.KeyValue(icons.Cost.String()+" total", formatRupees(total)))
	}
	return strings.Join(lines, "\n")
}

// table pads columns to the widest cell. The first column is left-aligned,
// the rest right-aligned.
func table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	render := func(cells []string, header bool) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			style := lipgloss.NewStyle().Width(widths[i])
			if i > 0 && !header {
				style = numberCell.Width(widths[i])
			}
			if header {
				style = headerCell.Width(widths[i])
			}
			parts[i] = style.Render(cell)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	lines := []string{render(headers, true)}
	for _, row := range rows {
		lines = append(lines, render(row, false))
	}
	return strings.Join(lines, "\n")
}

func formatDimensions(d client.Dimensions) string {
	switch d.Shape {
	case "rectangular":
		return fmt.Sprintf("%.2f x %.2f x %.2f m", d.Length, d.Width, d.Depth)
	case "circular":
		return fmt.Sprintf("%.2f m diameter x %.2f m", d.Diameter, d.Height)
	default:
		return "-"
	}
}

// formatThousands groups digits in threes: 22950 -> 22,950.
func formatThousands(n int) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	s := fmt.Sprint(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

func formatRupees(n int) string {
	return "₹" + formatThousands(n)
}
