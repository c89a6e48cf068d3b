// Package analyzer compares a target listing against market statistics and
// classifies the differences into severity-tagged gaps.
package analyzer

import (
	"github.com/rabi3laser/visibility-doctor/internal/market"
	"github.com/rabi3laser/visibility-doctor/internal/models"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

// GapAnalyzer runs a fixed battery of independent comparison rules. Each rule
// contributes at most one gap to one severity bucket; rules never interact,
// so evaluation order only fixes output ordering.
type GapAnalyzer struct {
	logger     logger.Logger
	essentials []string
}

// NewGapAnalyzer creates a gap analyzer. The essential amenity list comes
// from configuration; lowercase canonical substrings.
func NewGapAnalyzer(essentials []string, log logger.Logger) *GapAnalyzer {
	return &GapAnalyzer{
		logger:     log,
		essentials: essentials,
	}
}

// Analyze classifies gaps between the target listing and its competitors.
// With no competitors there is no market to compare against: the result is
// an empty analysis with zero loss, and the aggregator is never invoked.
func (a *GapAnalyzer) Analyze(target models.Listing, competitors []models.Competitor, grade models.GradeResult) *models.GapAnalysis {
	result := models.NewGapAnalysis(target.ID, len(competitors))

	if len(competitors) == 0 {
		a.logger.Debug("No competitors, skipping gap analysis", "listing", target.ID)
		return result
	}

	stats := market.Compute(competitors)

	a.analyzeInstantBook(target, stats, result)
	a.analyzePhotos(target, stats, result)
	a.analyzeRating(target, stats, result)
	a.analyzeResponse(target, grade, result)
	a.analyzePricing(target, stats, result)
	a.analyzeAmenities(target, competitors, result)
	a.analyzeSuperhost(target, stats, result)
	a.analyzeGuestFavorite(target, stats, result)
	a.analyzeReviewCount(target, stats, result)

	result.RecalculateLoss()

	a.logger.Debug("Gap analysis complete",
		"listing", target.ID,
		"critical", len(result.CriticalGaps),
		"important", len(result.ImportantGaps),
		"minor", len(result.MinorGaps),
		"advantages", len(result.Advantages),
		"estimated_loss", result.EstimatedVisibilityLoss,
	)

	return result
}
