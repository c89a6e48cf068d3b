package actions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rabi3laser/visibility-doctor/internal/models"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

// Generator builds ROI-ranked action plans from gap analyses.
type Generator struct {
	logger logger.Logger
}

// NewGenerator creates a new action plan generator.
func NewGenerator(log logger.Logger) *Generator {
	return &Generator{logger: log}
}

// Generate converts a gap analysis into a prioritized plan. Deficit gaps are
// processed critical first, then important, then minor; advantages never
// produce actions. The resulting actions are ordered by ROI, highest first,
// and ties keep bucket order.
func (g *Generator) Generate(analysis *models.GapAnalysis) *Plan {
	plan := &Plan{
		ListingID: analysis.ListingID,
		Actions:   []Action{},
		QuickWins: []Action{},
	}

	type prioritized struct {
		gap      models.Gap
		priority string
	}
	var gaps []prioritized
	for _, gap := range analysis.CriticalGaps {
		gaps = append(gaps, prioritized{gap, PriorityCritical})
	}
	for _, gap := range analysis.ImportantGaps {
		gaps = append(gaps, prioritized{gap, PriorityHigh})
	}
	for _, gap := range analysis.MinorGaps {
		gaps = append(gaps, prioritized{gap, PriorityMedium})
	}

	for i, pg := range gaps {
		action := g.createAction(pg.gap, pg.priority, i)
		action.CalculateROI()
		plan.Actions = append(plan.Actions, action)
	}

	sort.SliceStable(plan.Actions, func(i, j int) bool {
		return plan.Actions[i].ROIScore > plan.Actions[j].ROIScore
	})

	for _, action := range plan.Actions {
		if action.IsQuickWin() {
			plan.QuickWins = append(plan.QuickWins, action)
		}
		plan.TotalTimeHours += float64(action.TimeMinutes) / 60
		plan.TotalCostEUR += action.CostEUR
		plan.PotentialGainPercent += action.ImpactPercent
	}

	g.logger.Debug("Generated action plan",
		"listing_id", plan.ListingID,
		"actions", len(plan.Actions),
		"quick_wins", len(plan.QuickWins),
	)

	return plan
}

// createAction builds an action from a gap, using the first template whose
// keyword appears in the gap title, or a generic fallback.
func (g *Generator) createAction(gap models.Gap, priority string, index int) Action {
	title := fmt.Sprintf("Fix: %s", gap.Title)
	category := gap.Category
	timeMinutes := 60
	costEUR := 0.0
	steps := fallbackSteps

	gapTitle := strings.ToLower(gap.Title)
	for _, tmpl := range actionTemplates {
		if strings.Contains(gapTitle, tmpl.Keyword) {
			title = tmpl.Title
			category = tmpl.Category
			timeMinutes = tmpl.TimeMinutes
			costEUR = tmpl.CostEUR
			steps = tmpl.Steps
			break
		}
	}

	return Action{
		ID:            fmt.Sprintf("action-%02d", index+1),
		Title:         title,
		Description:   gap.Description,
		Category:      category,
		Priority:      priority,
		TimeMinutes:   timeMinutes,
		CostEUR:       costEUR,
		ImpactPercent: abs(gap.ImpactPercent),
		Steps:         steps,
		GapTitle:      gap.Title,
	}
}
