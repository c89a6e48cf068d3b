// Package doctor orchestrates the full diagnosis pipeline: fetch the target
// record, grade it, gather peers, classify gaps, and build the action plan.
package doctor

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/rabi3laser/visibility-doctor/internal/actions"
	"github.com/rabi3laser/visibility-doctor/internal/analyzer"
	"github.com/rabi3laser/visibility-doctor/internal/config"
	"github.com/rabi3laser/visibility-doctor/internal/models"
	"github.com/rabi3laser/visibility-doctor/internal/sources"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

var roomsPattern = regexp.MustCompile(`/rooms/(\d+)`)

// ExtractListingID resolves a listing reference to a bare ID. A reference is
// either the ID itself (digits only) or a listing URL containing /rooms/<id>.
func ExtractListingID(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty listing reference")
	}

	digits := true
	for _, r := range ref {
		if r < '0' || r > '9' {
			digits = false
			break
		}
	}
	if digits {
		return ref, nil
	}

	if match := roomsPattern.FindStringSubmatch(ref); match != nil {
		return match[1], nil
	}

	return "", fmt.Errorf("invalid listing URL or ID: %s", ref)
}

// Options controls a single diagnosis run.
type Options struct {
	// CompareMarket enables peer gathering. When false the diagnosis runs
	// on the target's own signals only and reports an empty gap analysis.
	CompareMarket bool
}

// Doctor runs the diagnosis pipeline against a source.
type Doctor struct {
	config    *config.Config
	source    sources.Source
	analyzer  *analyzer.GapAnalyzer
	generator *actions.Generator
	logger    logger.Logger
}

// New creates a Doctor backed by the given source.
func New(cfg *config.Config, source sources.Source, log logger.Logger) *Doctor {
	return &Doctor{
		config:    cfg,
		source:    source,
		analyzer:  analyzer.NewGapAnalyzer(cfg.EssentialAmenities, log),
		generator: actions.NewGenerator(log),
		logger:    log,
	}
}

// Diagnose analyzes one listing end to end.
func (d *Doctor) Diagnose(ctx context.Context, ref string, opts Options) (*Result, error) {
	listingID, err := ExtractListingID(ref)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	log := d.logger.With("run_id", runID, "listing_id", listingID)
	log.Info("Starting diagnosis")

	listing, err := d.source.Listing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("fetching listing %s: %w", listingID, err)
	}
	log.Debug("Fetched listing", "name", listing.Name)

	grade, err := d.source.Grade(ctx, listing)
	if err != nil {
		return nil, fmt.Errorf("grading listing %s: %w", listingID, err)
	}
	log.Debug("Graded listing", "score", grade.OverallScore, "grade", grade.Grade)

	var competitors []models.Competitor
	if opts.CompareMarket {
		competitors, err = d.source.Competitors(ctx, listingID, d.config.MaxCompetitors)
		if err != nil {
			return nil, fmt.Errorf("gathering competitors for %s: %w", listingID, err)
		}
		competitors = excludeTarget(competitors, listingID)
		log.Debug("Gathered competitors", "count", len(competitors))
	}

	analysis := d.analyzer.Analyze(listing, competitors, grade)
	plan := d.generator.Generate(analysis)

	log.Info("Diagnosis complete",
		"critical_gaps", len(analysis.CriticalGaps),
		"actions", len(plan.Actions),
		"quick_wins", len(plan.QuickWins),
	)

	return &Result{
		RunID:        runID,
		ListingID:    listingID,
		ListingName:  listing.Name,
		ListingURL:   fmt.Sprintf("https://www.airbnb.com/rooms/%s", listingID),
		AnalyzedAt:   time.Now().UTC(),
		OverallScore: grade.OverallScore,
		Grade:        grade.Grade,
		Summary: Summary{
			VisibilityLossPercent: analysis.EstimatedVisibilityLoss,
			PotentialGainPercent:  plan.PotentialGainPercent,
			TotalTimeHours:        plan.TotalTimeHours,
			TotalCostEUR:          plan.TotalCostEUR,
			CompetitorsCount:      len(competitors),
			CriticalGapsCount:     len(analysis.CriticalGaps),
			QuickWinsCount:        len(plan.QuickWins),
		},
		GradeResult: grade,
		GapAnalysis: analysis,
		ActionPlan:  plan,
	}, nil
}

// excludeTarget drops the target from its own peer set. Sources should do
// this already; the pipeline enforces it anyway. The input slice belongs to
// the source and is never written to.
func excludeTarget(competitors []models.Competitor, id string) []models.Competitor {
	out := make([]models.Competitor, 0, len(competitors))
	for _, c := range competitors {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
