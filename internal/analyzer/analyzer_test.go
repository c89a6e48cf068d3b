package analyzer

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabi3laser/visibility-doctor/internal/models"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

var testEssentials = []string{"wifi", "kitchen", "washer", "air conditioning", "heating", "tv"}

func newTestAnalyzer() *GapAnalyzer {
	return NewGapAnalyzer(testEssentials, logger.NewMockLogger())
}

func photos(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "img.jpg"
	}
	return out
}

// defaultTarget is a listing that triggers no rules against defaultMarket:
// every signal sits in the neutral band.
func defaultTarget() models.Listing {
	return models.Listing{
		ID:                "12345",
		Name:              "Test Listing",
		Rating:            4.82,
		ReviewsCount:      50,
		PricePerNight:     100,
		ResponseRate:      90,
		ResponseTimeHours: 2,
		InstantBookable:   false,
		Images:            photos(15),
		Amenities:         []string{"Wifi", "Kitchen", "Air conditioning", "TV", "Washer", "Heating"},
	}
}

// defaultMarket returns competitors with 40% instant book adoption, avg 15
// photos, avg rating 4.8, avg 50 reviews, avg price 100.
func defaultMarket(n int) []models.Competitor {
	out := make([]models.Competitor, n)
	for i := range out {
		out[i] = models.Competitor{
			ID:            string(rune('a' + i)),
			Rating:        4.8,
			ReviewsCount:  50,
			PricePerNight: 100,
			Images:        photos(15),
			Amenities:     []string{"Wifi", "Kitchen", "Air conditioning", "TV", "Washer", "Heating"},
		}
		if i%5 < 2 {
			out[i].InstantBookable = true
		}
	}
	return out
}

func neutralGrade() models.GradeResult {
	return models.GradeResult{OverallScore: 80, Grade: "B+", ResponseScore: 75}
}

func TestAnalyzeEmptyCompetitors(t *testing.T) {
	a := newTestAnalyzer()

	result := a.Analyze(defaultTarget(), nil, neutralGrade())

	assert.Zero(t, result.EstimatedVisibilityLoss)
	assert.Empty(t, result.CriticalGaps)
	assert.Empty(t, result.ImportantGaps)
	assert.Empty(t, result.MinorGaps)
	assert.Empty(t, result.Advantages)
	assert.Equal(t, 0, result.CompetitorsCount)
}

func TestAnalyzeNeutralTargetProducesNoGaps(t *testing.T) {
	a := newTestAnalyzer()

	result := a.Analyze(defaultTarget(), defaultMarket(20), neutralGrade())

	assert.Empty(t, result.CriticalGaps, "critical: %v", result.CriticalGaps)
	assert.Empty(t, result.ImportantGaps, "important: %v", result.ImportantGaps)
	assert.Zero(t, result.EstimatedVisibilityLoss)
}

// Scenario: instant booking off while 16 of 20 competitors (80%) have it on.
func TestAnalyzeInstantBookCritical(t *testing.T) {
	a := newTestAnalyzer()
	competitors := defaultMarket(20)
	for i := range competitors {
		competitors[i].InstantBookable = i < 16
	}

	result := a.Analyze(defaultTarget(), competitors, neutralGrade())

	require.NotEmpty(t, result.CriticalGaps)
	gap := result.CriticalGaps[0]
	assert.Equal(t, "Instant Book disabled", gap.Title)
	assert.Equal(t, models.SeverityCritical, gap.Severity)
	assert.InDelta(t, -15.0, gap.ImpactPercent, 1e-9)
}

func TestAnalyzeInstantBookImportantAndAdvantage(t *testing.T) {
	a := newTestAnalyzer()

	// 60% adoption: important, not critical.
	competitors := defaultMarket(20)
	for i := range competitors {
		competitors[i].InstantBookable = i < 12
	}
	result := a.Analyze(defaultTarget(), competitors, neutralGrade())
	assert.Empty(t, result.CriticalGaps)
	require.NotEmpty(t, result.ImportantGaps)
	assert.Equal(t, "Instant Book disabled", result.ImportantGaps[0].Title)
	assert.InDelta(t, -10.0, result.ImportantGaps[0].ImpactPercent, 1e-9)

	// Target has it on: advantage regardless of adoption.
	target := defaultTarget()
	target.InstantBookable = true
	result = a.Analyze(target, competitors, neutralGrade())
	require.NotEmpty(t, result.Advantages)
	assert.Equal(t, "Instant Book enabled", result.Advantages[0].Title)
	assert.InDelta(t, 5.0, result.Advantages[0].ImpactPercent, 1e-9)
}

// Scenario: target rating 4.3 against a 4.8 market mean.
func TestAnalyzeRatingCritical(t *testing.T) {
	a := newTestAnalyzer()
	target := defaultTarget()
	target.Rating = 4.3

	result := a.Analyze(target, defaultMarket(20), neutralGrade())

	var ratingGap *models.Gap
	for i := range result.CriticalGaps {
		if result.CriticalGaps[i].Title == "Critical rating" {
			ratingGap = &result.CriticalGaps[i]
		}
	}
	require.NotNil(t, ratingGap)
	assert.InDelta(t, -25.0, ratingGap.ImpactPercent, 1e-9)

	for _, adv := range result.Advantages {
		assert.NotEqual(t, "reviews", adv.Category, "no rating advantage expected: %+v", adv)
	}
}

// Scenario: target rating 4.95 is an advantage and never becomes an action.
func TestAnalyzeRatingExcellent(t *testing.T) {
	a := newTestAnalyzer()
	target := defaultTarget()
	target.Rating = 4.95

	result := a.Analyze(target, defaultMarket(20), neutralGrade())

	var found *models.Gap
	for i := range result.Advantages {
		if result.Advantages[i].Title == "Excellent rating" {
			found = &result.Advantages[i]
		}
	}
	require.NotNil(t, found)
	assert.InDelta(t, 10.0, found.ImpactPercent, 1e-9)
}

func TestAnalyzeRatingAboveMarket(t *testing.T) {
	a := newTestAnalyzer()
	target := defaultTarget()
	target.Rating = 4.85
	competitors := defaultMarket(20)
	for i := range competitors {
		competitors[i].Rating = 4.6
	}

	result := a.Analyze(target, competitors, neutralGrade())

	var found bool
	for _, adv := range result.Advantages {
		if adv.Title == "Rating above market" {
			found = true
			assert.InDelta(t, 5.0, adv.ImpactPercent, 1e-9)
		}
	}
	assert.True(t, found)
}

func TestAnalyzeResponse(t *testing.T) {
	tests := []struct {
		name          string
		grade         models.GradeResult
		responseRate  float64
		responseHours float64
		wantSeverity  string
		wantImpact    float64
	}{
		{"critical sub-score", models.GradeResult{ResponseScore: 40}, 90, 14, models.SeverityCritical, -15},
		{"important sub-score", models.GradeResult{ResponseScore: 60}, 90, 3, models.SeverityImportant, -8},
		{"advantage", models.GradeResult{ResponseScore: 95}, 99, 0.5, models.SeverityAdvantage, 5},
		{"neutral", models.GradeResult{ResponseScore: 95}, 90, 2, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer()
			target := defaultTarget()
			target.ResponseRate = tt.responseRate
			target.ResponseTimeHours = tt.responseHours

			result := a.Analyze(target, defaultMarket(20), tt.grade)

			var gaps []models.Gap
			for _, g := range append(result.AllGaps(), result.Advantages...) {
				if g.Category == "response" {
					gaps = append(gaps, g)
				}
			}
			if tt.wantSeverity == "" {
				assert.Empty(t, gaps)
				return
			}
			require.Len(t, gaps, 1)
			assert.Equal(t, tt.wantSeverity, gaps[0].Severity)
			assert.InDelta(t, tt.wantImpact, gaps[0].ImpactPercent, 1e-9)
		})
	}
}

func TestAnalyzePricing(t *testing.T) {
	tests := []struct {
		name         string
		price        float64
		wantSeverity string
		wantImpact   float64
	}{
		{"far above market", 140, models.SeverityCritical, -20},
		{"above market", 125, models.SeverityImportant, -12},
		{"competitive", 100, models.SeverityAdvantage, 5},
		{"slightly above band", 110, "", 0},
		{"too low", 70, models.SeverityMinor, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer()
			target := defaultTarget()
			target.PricePerNight = tt.price

			result := a.Analyze(target, defaultMarket(20), neutralGrade())

			var gaps []models.Gap
			for _, g := range append(result.AllGaps(), result.Advantages...) {
				if g.Category == "pricing" {
					gaps = append(gaps, g)
				}
			}
			if tt.wantSeverity == "" {
				assert.Empty(t, gaps)
				return
			}
			require.Len(t, gaps, 1)
			assert.Equal(t, tt.wantSeverity, gaps[0].Severity)
			assert.InDelta(t, tt.wantImpact, gaps[0].ImpactPercent, 1e-9)
		})
	}
}

// Scenario: no competitor has a positive price, so the pricing rule is
// disabled outright rather than emitting a zero-impact gap.
func TestAnalyzePricingDisabledWithoutMarketPrice(t *testing.T) {
	a := newTestAnalyzer()
	competitors := defaultMarket(20)
	for i := range competitors {
		competitors[i].PricePerNight = 0
	}

	result := a.Analyze(defaultTarget(), competitors, neutralGrade())

	for _, g := range append(result.AllGaps(), result.Advantages...) {
		assert.NotEqual(t, "pricing", g.Category, "pricing rule should be disabled: %+v", g)
	}
}

func TestAnalyzeAmenities(t *testing.T) {
	a := newTestAnalyzer()
	target := defaultTarget()
	target.Amenities = []string{"Wifi"}

	result := a.Analyze(target, defaultMarket(20), neutralGrade())

	// Kitchen, air conditioning, TV, washer, and heating are essentials
	// present in 100% of the market but missing from the target.
	require.NotEmpty(t, result.CriticalGaps)
	gap := result.CriticalGaps[0]
	assert.Equal(t, "Missing essential amenities", gap.Title)
	assert.InDelta(t, -12.0, gap.ImpactPercent, 1e-9)
	assert.Contains(t, gap.Description, "Kitchen")
}

func TestAnalyzeAmenitiesImportant(t *testing.T) {
	a := newTestAnalyzer()
	target := defaultTarget()
	target.Amenities = []string{"Wifi", "Kitchen", "Air conditioning", "TV"}

	result := a.Analyze(target, defaultMarket(20), neutralGrade())

	assert.Empty(t, result.CriticalGaps)
	require.NotEmpty(t, result.ImportantGaps)
	gap := result.ImportantGaps[0]
	assert.Equal(t, "Missing common amenities", gap.Title)
	assert.InDelta(t, -6.0, gap.ImpactPercent, 1e-9)
}

func TestAnalyzeSuperhost(t *testing.T) {
	a := newTestAnalyzer()
	competitors := defaultMarket(20)
	for i := range competitors {
		competitors[i].Superhost = i < 12
	}

	result := a.Analyze(defaultTarget(), competitors, neutralGrade())
	require.NotEmpty(t, result.ImportantGaps)
	assert.Equal(t, "No Superhost status", result.ImportantGaps[0].Title)
	assert.InDelta(t, -8.0, result.ImportantGaps[0].ImpactPercent, 1e-9)

	target := defaultTarget()
	target.Superhost = true
	result = a.Analyze(target, competitors, neutralGrade())
	assert.Empty(t, result.ImportantGaps)
	var found *models.Gap
	for i := range result.Advantages {
		if result.Advantages[i].Title == "Superhost status" {
			found = &result.Advantages[i]
		}
	}
	require.NotNil(t, found)
	assert.InDelta(t, 8.0, found.ImpactPercent, 1e-9)
}

func TestAnalyzeGuestFavorite(t *testing.T) {
	a := newTestAnalyzer()
	competitors := defaultMarket(20)
	for i := range competitors {
		competitors[i].GuestFavorite = i < 5 // 25% adoption
	}

	// Badge on: advantage.
	target := defaultTarget()
	target.GuestFavorite = true
	result := a.Analyze(target, competitors, neutralGrade())
	var badge *models.Gap
	for i := range result.Advantages {
		if result.Advantages[i].Title == "Guest Favorite badge" {
			badge = &result.Advantages[i]
		}
	}
	require.NotNil(t, badge)
	assert.InDelta(t, 12.0, badge.ImpactPercent, 1e-9)

	// Badge off but rating 4.8+ with 20%+ adoption: reachable, minor.
	target = defaultTarget()
	target.Rating = 4.85
	result = a.Analyze(target, competitors, neutralGrade())
	require.NotEmpty(t, result.MinorGaps)
	assert.Equal(t, "Guest Favorite within reach", result.MinorGaps[0].Title)
	assert.InDelta(t, -5.0, result.MinorGaps[0].ImpactPercent, 1e-9)
}

func TestAnalyzeReviewCount(t *testing.T) {
	tests := []struct {
		name         string
		reviews      int
		wantTitle    string
		wantSeverity string
		wantImpact   float64
	}{
		{"too few", 3, "Too few reviews", models.SeverityCritical, -20},
		{"below half of market", 20, "Review count below market", models.SeverityImportant, -10},
		{"above market", 80, "Excellent review count", models.SeverityAdvantage, 5},
		{"neutral", 50, "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer()
			target := defaultTarget()
			target.ReviewsCount = tt.reviews

			result := a.Analyze(target, defaultMarket(20), neutralGrade())

			var gaps []models.Gap
			for _, g := range append(result.AllGaps(), result.Advantages...) {
				if g.Category == "reviews" {
					gaps = append(gaps, g)
				}
			}
			if tt.wantTitle == "" {
				assert.Empty(t, gaps)
				return
			}
			require.Len(t, gaps, 1)
			assert.Equal(t, tt.wantTitle, gaps[0].Title)
			assert.Equal(t, tt.wantSeverity, gaps[0].Severity)
			assert.InDelta(t, tt.wantImpact, gaps[0].ImpactPercent, 1e-9)
		})
	}
}

// Every advantage carries non-negative impact; every deficit non-positive.
func TestImpactSignsMatchSeverity(t *testing.T) {
	a := newTestAnalyzer()
	target := models.Listing{
		ID:                "999",
		Rating:            4.2,
		ReviewsCount:      2,
		PricePerNight:     160,
		ResponseRate:      50,
		ResponseTimeHours: 20,
		Images:            photos(2),
		Amenities:         []string{},
	}

	result := a.Analyze(target, defaultMarket(20), models.GradeResult{ResponseScore: 30})

	for _, g := range result.AllGaps() {
		assert.LessOrEqual(t, g.ImpactPercent, 0.0, "deficit gap %q must not have positive impact", g.Title)
	}
	for _, g := range result.Advantages {
		assert.GreaterOrEqual(t, g.ImpactPercent, 0.0, "advantage %q must not have negative impact", g.Title)
	}
	assert.Positive(t, result.EstimatedVisibilityLoss)
}

// Identical inputs must produce identical output, including ordering.
func TestAnalyzeIdempotent(t *testing.T) {
	a := newTestAnalyzer()
	target := defaultTarget()
	target.Rating = 4.3
	target.Images = photos(4)
	target.Amenities = []string{"Wifi"}
	competitors := defaultMarket(20)
	grade := models.GradeResult{ResponseScore: 60}

	first := a.Analyze(target, competitors, grade)
	second := a.Analyze(target, competitors, grade)

	assert.True(t, reflect.DeepEqual(first, second))
}
