package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabi3laser/visibility-doctor/internal/config"
	"github.com/rabi3laser/visibility-doctor/internal/models"
	"github.com/rabi3laser/visibility-doctor/internal/sources"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

func TestExtractListingID(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{"bare id", "12345", "12345", false},
		{"full url", "https://www.airbnb.com/rooms/987654", "987654", false},
		{"url with query", "https://airbnb.fr/rooms/42?adults=2", "42", false},
		{"path only", "/rooms/7", "7", false},
		{"empty", "", "", true},
		{"no id in url", "https://www.airbnb.com/s/Paris", "", true},
		{"mixed id", "12a45", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractListingID(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func testSource() *sources.MockSource {
	source := sources.NewMockSource()
	source.Listings["12345"] = models.Listing{
		ID:            "12345",
		Name:          "Sunny Loft",
		Rating:        4.3,
		ReviewsCount:  40,
		PricePerNight: 100,
		Images:        make([]string, 12),
		Amenities:     []string{"Wifi", "Kitchen", "Washer", "Air conditioning", "Heating", "TV", "Hair dryer", "Iron"},
	}
	competitors := make([]models.Competitor, 10)
	for i := range competitors {
		competitors[i] = models.Competitor{
			ID:            string(rune('a' + i)),
			Rating:        4.8,
			ReviewsCount:  40,
			PricePerNight: 100,
			Images:        make([]string, 12),
			Amenities:     []string{"Wifi", "Kitchen", "Washer", "Air conditioning", "Heating", "TV", "Hair dryer", "Iron"},
		}
	}
	source.CompetitorSets["12345"] = competitors
	source.Grades["12345"] = models.GradeResult{OverallScore: 68, Grade: "B-", ResponseScore: 80}
	return source
}

func TestDiagnose(t *testing.T) {
	d := New(config.Default(), testSource(), logger.NewMockLogger())

	result, err := d.Diagnose(context.Background(), "12345", Options{CompareMarket: true})

	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "12345", result.ListingID)
	assert.Equal(t, "Sunny Loft", result.ListingName)
	assert.Equal(t, "https://www.airbnb.com/rooms/12345", result.ListingURL)
	assert.Equal(t, 68, result.OverallScore)
	assert.Equal(t, "B-", result.Grade)
	assert.False(t, result.AnalyzedAt.IsZero())

	// Rating 4.3 against a 4.8 market is a critical gap, which must show up
	// in the analysis, the plan, and the summary consistently.
	require.NotNil(t, result.GapAnalysis)
	require.NotNil(t, result.ActionPlan)
	assert.NotEmpty(t, result.GapAnalysis.CriticalGaps)
	assert.NotEmpty(t, result.ActionPlan.Actions)
	assert.Equal(t, len(result.GapAnalysis.CriticalGaps), result.Summary.CriticalGapsCount)
	assert.Equal(t, len(result.ActionPlan.QuickWins), result.Summary.QuickWinsCount)
	assert.Equal(t, 10, result.Summary.CompetitorsCount)
	assert.Equal(t, result.GapAnalysis.EstimatedVisibilityLoss, result.Summary.VisibilityLossPercent)
	assert.Equal(t, result.ActionPlan.PotentialGainPercent, result.Summary.PotentialGainPercent)
}

func TestDiagnoseFromURL(t *testing.T) {
	d := New(config.Default(), testSource(), logger.NewMockLogger())

	result, err := d.Diagnose(context.Background(), "https://www.airbnb.com/rooms/12345", Options{CompareMarket: true})

	require.NoError(t, err)
	assert.Equal(t, "12345", result.ListingID)
}

func TestDiagnoseWithoutMarket(t *testing.T) {
	source := testSource()
	d := New(config.Default(), source, logger.NewMockLogger())

	result, err := d.Diagnose(context.Background(), "12345", Options{})

	require.NoError(t, err)
	assert.Zero(t, source.CompetitorCalls, "peer source must not be consulted")
	assert.Zero(t, result.Summary.CompetitorsCount)
	assert.Empty(t, result.GapAnalysis.AllGaps())
	assert.Empty(t, result.ActionPlan.Actions)
}

func TestDiagnoseExcludesTargetFromPeers(t *testing.T) {
	source := testSource()
	source.CompetitorSets["12345"] = append(
		[]models.Competitor{{ID: "12345", Rating: 4.8}},
		source.CompetitorSets["12345"]...,
	)
	d := New(config.Default(), source, logger.NewMockLogger())

	result, err := d.Diagnose(context.Background(), "12345", Options{CompareMarket: true})

	require.NoError(t, err)
	assert.Equal(t, 10, result.Summary.CompetitorsCount)
}

// Filtering the target out of its own peer set must not write into the
// source's slice: a second run against the same source has to see the same
// market.
func TestDiagnoseRepeatedRunsSeeSamePeers(t *testing.T) {
	source := testSource()
	source.CompetitorSets["12345"] = []models.Competitor{
		{ID: "a", Rating: 4.8, ReviewsCount: 40, PricePerNight: 100, Images: make([]string, 12)},
		{ID: "12345", Rating: 4.8},
		{ID: "b", Rating: 4.8, ReviewsCount: 40, PricePerNight: 100, Images: make([]string, 12)},
	}
	d := New(config.Default(), source, logger.NewMockLogger())

	first, err := d.Diagnose(context.Background(), "12345", Options{CompareMarket: true})
	require.NoError(t, err)
	second, err := d.Diagnose(context.Background(), "12345", Options{CompareMarket: true})
	require.NoError(t, err)

	assert.Equal(t, 2, first.Summary.CompetitorsCount)
	assert.Equal(t, 2, second.Summary.CompetitorsCount)
	assert.Equal(t, first.GapAnalysis, second.GapAnalysis)

	stored := source.CompetitorSets["12345"]
	require.Len(t, stored, 3)
	assert.Equal(t, "a", stored[0].ID)
	assert.Equal(t, "12345", stored[1].ID)
	assert.Equal(t, "b", stored[2].ID)
}

func TestDiagnoseUniqueRunIDs(t *testing.T) {
	d := New(config.Default(), testSource(), logger.NewMockLogger())

	first, err := d.Diagnose(context.Background(), "12345", Options{})
	require.NoError(t, err)
	second, err := d.Diagnose(context.Background(), "12345", Options{})
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestDiagnoseErrors(t *testing.T) {
	t.Run("invalid reference", func(t *testing.T) {
		d := New(config.Default(), testSource(), logger.NewMockLogger())
		_, err := d.Diagnose(context.Background(), "not-a-listing", Options{})
		assert.Error(t, err)
	})

	t.Run("listing fetch failure", func(t *testing.T) {
		source := testSource()
		source.ListingErr = errors.New("snapshot corrupted")
		d := New(config.Default(), source, logger.NewMockLogger())
		_, err := d.Diagnose(context.Background(), "12345", Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetching listing")
	})

	t.Run("grade failure", func(t *testing.T) {
		source := testSource()
		source.GradeErr = errors.New("scorer unavailable")
		d := New(config.Default(), source, logger.NewMockLogger())
		_, err := d.Diagnose(context.Background(), "12345", Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "grading listing")
	})

	t.Run("competitor failure", func(t *testing.T) {
		source := testSource()
		source.CompetitorsErr = errors.New("peers unavailable")
		d := New(config.Default(), source, logger.NewMockLogger())
		_, err := d.Diagnose(context.Background(), "12345", Options{CompareMarket: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gathering competitors")
	})
}
