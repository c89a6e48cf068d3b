package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rabi3laser/visibility-doctor/internal/doctor"
	"github.com/rabi3laser/visibility-doctor/internal/models"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
	"github.com/rabi3laser/visibility-doctor/pkg/pathutil"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("246"))

	labelStyle = lipgloss.NewStyle().Bold(true).Width(22)

	criticalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	importantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	minorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	advantageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)

// textFormat renders the diagnosis as a styled terminal summary.
type textFormat struct {
	logger logger.Logger
}

func (f *textFormat) Generate(result *doctor.Result, outputPath string) error {
	content := Render(result)

	if outputPath == "" || outputPath == "-" {
		fmt.Fprintln(os.Stdout, content)
		return nil
	}

	validPath, err := pathutil.ValidateOutputPath(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if err := os.WriteFile(validPath, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing text report: %w", err)
	}

	f.logger.Info("Wrote text report", "path", validPath)
	return nil
}

func (f *textFormat) Name() string { return "text" }

func (f *textFormat) Description() string {
	return "Styled terminal summary of the diagnosis"
}

// Render builds the full text summary for a result.
func Render(result *doctor.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Visibility Doctor — Diagnosis"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Listing"))
	b.WriteString("\n")
	writeField(&b, "ID", result.ListingID)
	writeField(&b, "Name", result.ListingName)
	writeField(&b, "Score", fmt.Sprintf("%d/100 (Grade: %s)", result.OverallScore, result.Grade))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Market comparison"))
	b.WriteString("\n")
	writeField(&b, "Competitors analyzed", fmt.Sprintf("%d", result.Summary.CompetitorsCount))
	writeField(&b, "Visibility loss", fmt.Sprintf("-%.0f%%", result.Summary.VisibilityLossPercent))
	writeField(&b, "Critical gaps", fmt.Sprintf("%d", result.Summary.CriticalGapsCount))
	b.WriteString("\n")

	if analysis := result.GapAnalysis; analysis != nil && (analysis.TotalGaps() > 0 || len(analysis.Advantages) > 0) {
		b.WriteString(sectionStyle.Render("Gaps"))
		b.WriteString("\n")
		writeGaps(&b, analysis.CriticalGaps)
		writeGaps(&b, analysis.ImportantGaps)
		writeGaps(&b, analysis.MinorGaps)
		writeGaps(&b, analysis.Advantages)
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Action plan"))
	b.WriteString("\n")
	writeField(&b, "Quick wins", fmt.Sprintf("%d", result.Summary.QuickWinsCount))
	writeField(&b, "Total time", fmt.Sprintf("%.1fh", result.Summary.TotalTimeHours))
	writeField(&b, "Total cost", fmt.Sprintf("€%.0f", result.Summary.TotalCostEUR))
	writeField(&b, "Potential gain", fmt.Sprintf("+%.0f%%", result.Summary.PotentialGainPercent))

	if plan := result.ActionPlan; plan != nil && len(plan.Actions) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Top actions (by ROI)"))
		b.WriteString("\n")
		for i, action := range plan.Actions {
			if i >= 10 {
				break
			}
			marker := "•"
			if action.IsQuickWin() {
				marker = "⚡"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", marker, action.Title))
			b.WriteString(fmt.Sprintf("      impact +%.0f%% | %d min | €%.0f\n",
				action.ImpactPercent, action.TimeMinutes, action.CostEUR))
		}
	}

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

func writeGaps(b *strings.Builder, gaps []models.Gap) {
	for _, gap := range gaps {
		style := severityStyle(gap.Severity)
		b.WriteString(fmt.Sprintf("  %s %s",
			style.Render(strings.ToUpper(gap.Severity)), gap.Title))
		if gap.ImpactPercent != 0 {
			b.WriteString(fmt.Sprintf(" (%+.0f%%)", gap.ImpactPercent))
		}
		b.WriteString("\n")
	}
}

func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case models.SeverityCritical:
		return criticalStyle
	case models.SeverityImportant:
		return importantStyle
	case models.SeverityMinor:
		return minorStyle
	case models.SeverityAdvantage:
		return advantageStyle
	default:
		return lipgloss.NewStyle()
	}
}
