package doctor

import (
	"time"

	"github.com/rabi3laser/visibility-doctor/internal/actions"
	"github.com/rabi3laser/visibility-doctor/internal/models"
)

// Result is the complete output of one diagnosis run.
type Result struct {
	RunID       string    `json:"run_id"`
	ListingID   string    `json:"listing_id"`
	ListingName string    `json:"listing_name"`
	ListingURL  string    `json:"listing_url"`
	AnalyzedAt  time.Time `json:"analyzed_at"`

	OverallScore int    `json:"overall_score"`
	Grade        string `json:"grade"`

	Summary Summary `json:"summary"`

	GradeResult models.GradeResult  `json:"grade_result"`
	GapAnalysis *models.GapAnalysis `json:"gap_analysis"`
	ActionPlan  *actions.Plan       `json:"action_plan"`
}

// Summary collects the headline metrics of a run.
type Summary struct {
	VisibilityLossPercent float64 `json:"visibility_loss_percent"`
	PotentialGainPercent  float64 `json:"potential_gain_percent"`
	TotalTimeHours        float64 `json:"total_time_hours"`
	TotalCostEUR          float64 `json:"total_cost_eur"`
	CompetitorsCount      int     `json:"competitors_count"`
	CriticalGapsCount     int     `json:"critical_gaps_count"`
	QuickWinsCount        int     `json:"quick_wins_count"`
}
