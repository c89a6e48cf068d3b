// Package actions converts gap analyses into prioritized, ROI-ranked action
// plans.
package actions

// Priority levels for actions, derived from gap severity.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Action is a single remediation step derived from a gap.
type Action struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Description   string   `json:"description" yaml:"description"`
	Category      string   `json:"category" yaml:"category"`
	Priority      string   `json:"priority" yaml:"priority"`
	TimeMinutes   int      `json:"time_minutes" yaml:"time_minutes"`
	CostEUR       float64  `json:"cost_eur" yaml:"cost_eur"`
	ImpactPercent float64  `json:"impact_percent" yaml:"impact_percent"`
	Steps         []string `json:"steps" yaml:"steps"`
	GapTitle      string   `json:"gap_title" yaml:"gap_title"`
	ROIScore      float64  `json:"roi_score" yaml:"roi_score"`
}

// CalculateROI computes and stores the action's ROI score. Effort combines
// time (hours) and cost (hundreds of euros), floored so that free instant
// actions rank by impact instead of dividing by zero.
func (a *Action) CalculateROI() float64 {
	effort := float64(a.TimeMinutes)/60 + a.CostEUR/100
	if effort <= 0 {
		effort = 0.1
	}
	a.ROIScore = abs(a.ImpactPercent) / effort
	return a.ROIScore
}

// IsQuickWin reports whether the action takes at most 30 minutes and costs
// nothing.
func (a *Action) IsQuickWin() bool {
	return a.TimeMinutes <= 30 && a.CostEUR == 0
}

// Plan is a complete prioritized action plan for one listing.
type Plan struct {
	ListingID            string   `json:"listing_id" yaml:"listing_id"`
	Actions              []Action `json:"actions" yaml:"actions"`
	QuickWins            []Action `json:"quick_wins" yaml:"quick_wins"`
	TotalTimeHours       float64  `json:"total_time_hours" yaml:"total_time_hours"`
	TotalCostEUR         float64  `json:"total_cost_eur" yaml:"total_cost_eur"`
	PotentialGainPercent float64  `json:"potential_gain_percent" yaml:"potential_gain_percent"`
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
