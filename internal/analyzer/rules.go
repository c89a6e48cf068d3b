package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rabi3laser/visibility-doctor/internal/market"
	"github.com/rabi3laser/visibility-doctor/internal/models"
)

// Per-rule impact magnitudes, in percentage points of estimated visibility.
// Fixed heuristic constants; reproducibility requires exact comparisons
// against them, so they are never derived at runtime.
const (
	impactInstantBookCritical  = -15.0
	impactInstantBookImportant = -10.0
	impactInstantBookAdvantage = 5.0

	impactPhotosCritical  = -15.0
	impactPhotosImportant = -8.0
	impactPhotosAdvantage = 5.0

	impactRatingCritical  = -25.0
	impactRatingImportant = -12.0
	impactRatingExcellent = 10.0
	impactRatingAboveAvg  = 5.0

	impactResponseCritical  = -15.0
	impactResponseImportant = -8.0
	impactResponseAdvantage = 5.0

	impactPriceCritical  = -20.0
	impactPriceImportant = -12.0
	impactPriceAdvantage = 5.0

	impactAmenitiesCritical  = -12.0
	impactAmenitiesImportant = -6.0

	impactSuperhostGap       = -8.0
	impactSuperhostAdvantage = 8.0

	impactGuestFavoriteAdvantage = 12.0
	impactGuestFavoriteReachable = -5.0

	impactReviewsCritical  = -20.0
	impactReviewsImportant = -10.0
	impactReviewsAdvantage = 5.0
)

var titleCaser = cases.Title(language.English)

// analyzeInstantBook checks the instant booking flag against market adoption.
func (a *GapAnalyzer) analyzeInstantBook(target models.Listing, stats market.Stats, result *models.GapAnalysis) {
	marketValue := fmt.Sprintf("%.0f%% of competitors", stats.InstantBookPct)

	switch {
	case !target.InstantBookable && stats.InstantBookPct >= 70:
		a.add(result, models.Gap{
			Category:      "settings",
			Severity:      models.SeverityCritical,
			Title:         "Instant Book disabled",
			Description:   fmt.Sprintf("%.0f%% of competitors have Instant Book enabled. It is a major ranking factor.", stats.InstantBookPct),
			YourValue:     "Disabled",
			MarketValue:   marketValue,
			ImpactPercent: impactInstantBookCritical,
			FixEffort:     models.EffortEasy,
			FixCost:       models.CostFree,
		})
	case !target.InstantBookable && stats.InstantBookPct >= 50:
		a.add(result, models.Gap{
			Category:      "settings",
			Severity:      models.SeverityImportant,
			Title:         "Instant Book disabled",
			Description:   fmt.Sprintf("%.0f%% of competitors offer Instant Book. Consider enabling it.", stats.InstantBookPct),
			YourValue:     "Disabled",
			MarketValue:   marketValue,
			ImpactPercent: impactInstantBookImportant,
			FixEffort:     models.EffortEasy,
			FixCost:       models.CostFree,
		})
	case target.InstantBookable:
		a.add(result, models.Gap{
			Category:      "settings",
			Severity:      models.SeverityAdvantage,
			Title:         "Instant Book enabled",
			Description:   "Instant Book improves ranking and makes booking frictionless.",
			YourValue:     "Enabled",
			MarketValue:   marketValue,
			ImpactPercent: impactInstantBookAdvantage,
			FixEffort:     models.EffortNone,
			FixCost:       models.CostFree,
		})
	}
}

// analyzePhotos compares photo count against the market average.
func (a *GapAnalyzer) analyzePhotos(target models.Listing, stats market.Stats, result *models.GapAnalysis) {
	count := target.PhotoCount()
	diff := float64(count) - stats.AvgPhotos
	yourValue := fmt.Sprintf("%d photos", count)

	switch {
	case diff < -10:
		a.add(result, models.Gap{
			Category:      "photos",
			Severity:      models.SeverityCritical,
			Title:         "Not enough photos",
			Description:   fmt.Sprintf("You have %d photos vs %.0f on average among competitors. Photos are the #1 conversion factor.", count, stats.AvgPhotos),
			YourValue:     yourValue,
			MarketValue:   fmt.Sprintf("%.0f (avg), %d (max)", stats.AvgPhotos, stats.MaxPhotos),
			ImpactPercent: impactPhotosCritical,
			FixEffort:     models.EffortMedium,
			FixCost:       models.CostLow,
		})
	case diff < -5:
		a.add(result, models.Gap{
			Category:      "photos",
			Severity:      models.SeverityImportant,
			Title:         "Photos below market average",
			Description:   fmt.Sprintf("Add %.0f photos to reach the market average.", -diff),
			YourValue:     yourValue,
			MarketValue:   fmt.Sprintf("%.0f on average", stats.AvgPhotos),
			ImpactPercent: impactPhotosImportant,
			FixEffort:     models.EffortEasy,
			FixCost:       models.CostFree,
		})
	case diff > 5:
		a.add(result, models.Gap{
			Category:      "photos",
			Severity:      models.SeverityAdvantage,
			Title:         "Excellent photo count",
			Description:   "You have more photos than the market average, an advantage for conversion.",
			YourValue:     yourValue,
			MarketValue:   fmt.Sprintf("%.0f on average", stats.AvgPhotos),
			ImpactPercent: impactPhotosAdvantage,
			FixEffort:     models.EffortNone,
			FixCost:       models.CostFree,
		})
	}
}

// analyzeRating compares the overall rating against absolute thresholds and
// the market mean. Market-relative branches are disabled when no peer is
// rated (AvgRating == 0); absolute branches still apply.
func (a *GapAnalyzer) analyzeRating(target models.Listing, stats market.Stats, result *models.GapAnalysis) {
	rating := target.Rating
	diff := rating - stats.AvgRating
	yourValue := fmt.Sprintf("%.2f★", rating)
	marketValue := fmt.Sprintf("%.2f★ (avg)", stats.AvgRating)

	switch {
	case rating < 4.5:
		a.add(result, models.Gap{
			Category:      "reviews",
			Severity:      models.SeverityCritical,
			Title:         "Critical rating",
			Description:   "A rating under 4.5 drastically reduces search visibility.",
			YourValue:     yourValue,
			MarketValue:   marketValue,
			ImpactPercent: impactRatingCritical,
			FixEffort:     models.EffortHard,
			FixCost:       models.CostFree,
		})
	case rating < 4.8 && stats.AvgRating > 0 && diff < -0.2:
		a.add(result, models.Gap{
			Category:      "reviews",
			Severity:      models.SeverityImportant,
			Title:         "Rating below market",
			Description:   fmt.Sprintf("Your rating is %.2f points below the market average. Aim for 4.8+ to qualify for Guest Favorites.", -diff),
			YourValue:     yourValue,
			MarketValue:   marketValue,
			ImpactPercent: impactRatingImportant,
			FixEffort:     models.EffortHard,
			FixCost:       models.CostFree,
		})
	case rating >= 4.9:
		a.add(result, models.Gap{
			Category:      "reviews",
			Severity:      models.SeverityAdvantage,
			Title:         "Excellent rating",
			Description:   "A 4.9+ rating potentially qualifies you for Guest Favorites.",
			YourValue:     yourValue,
			MarketValue:   marketValue,
			ImpactPercent: impactRatingExcellent,
			FixEffort:     models.EffortNone,
			FixCost:       models.CostFree,
		})
	case stats.AvgRating > 0 && diff > 0.1:
		a.add(result, models.Gap{
			Category:      "reviews",
			Severity:      models.SeverityAdvantage,
			Title:         "Rating above market",
			Description:   "Your rating is above the local average.",
			YourValue:     yourValue,
			MarketValue:   marketValue,
			ImpactPercent: impactRatingAboveAvg,
			FixEffort:     models.EffortNone,
			FixCost:       models.CostFree,
		})
	}
}

// analyzeResponse evaluates host responsiveness using the external response
// sub-score plus the raw rate/time pair.
func (a *GapAnalyzer) analyzeResponse(target models.Listing, grade models.GradeResult, result *models.GapAnalysis) {
	switch {
	case grade.ResponseScore < 50:
		a.add(result, models.Gap{
			Category:      "response",
			Severity:      models.SeverityCritical,
			Title:         "Slow response time",
			Description:   "Response times over 12h strongly penalize ranking. Responsive hosts are favored.",
			YourValue:     fmt.Sprintf("%.0fh", target.ResponseTimeHours),
			MarketValue:   "< 1h recommended",
			ImpactPercent: impactResponseCritical,
			FixEffort:     models.EffortEasy,
			FixCost:       models.CostFree,
		})
	case grade.ResponseScore < 70:
		a.add(result, models.Gap{
			Category:      "response",
			Severity:      models.SeverityImportant,
			Title:         "Response time needs improvement",
			Description:   "Aim for a response time under 1h to maximize ranking.",
			YourValue:     fmt.Sprintf("%.0fh", target.ResponseTimeHours),
			MarketValue:   "< 1h recommended",
			ImpactPercent: impactResponseImportant,
			FixEffort:     models.EffortEasy,
			FixCost:       models.CostFree,
		})
	case target.ResponseRate >= 98 && target.ResponseTimeHours <= 1:
		a.add(result, models.Gap{
			Category:      "response",
			Severity:      models.SeverityAdvantage,
			Title:         "Excellent response time",
			Description:   "Your responsiveness is a major ranking asset.",
			YourValue:     fmt.Sprintf("%.0fh, %.0f%%", target.ResponseTimeHours, target.ResponseRate),
			MarketValue:   "< 1h recommended",
			ImpactPercent: impactResponseAdvantage,
			FixEffort:     models.EffortNone,
			FixCost:       models.CostFree,
		})
	}
}

// analyzePricing compares nightly price against the market average. The rule
// is disabled entirely when either side lacks a positive price.
func (a *GapAnalyzer) analyzePricing(target models.Listing, stats market.Stats, result *models.GapAnalysis) {
	if stats.AvgPrice <= 0 || target.PricePerNight <= 0 {
		return
	}

	diffPct := (target.PricePerNight - stats.AvgPrice) / stats.AvgPrice
	yourValue := fmt.Sprintf("€%.0f/night", target.PricePerNight)
	marketValue := fmt.Sprintf("€%.0f/night (avg)", stats.AvgPrice)

	switch {
	case diffPct > 0.35:
		a.add(result, models.Gap{
			Category:      "pricing",
			Severity:      models.SeverityCritical,
			Title:         "Price far above market",
			Description:   fmt.Sprintf("Your price is %.0f%% above the market average. This can drastically reduce bookings.", diffPct*100),
			YourValue:     yourValue,
			MarketValue:   marketValue,
			ImpactPercent: impactPriceCritical,
			FixEffort:     models.EffortEasy,
			FixCost:       models.CostFree,
		})
	case diffPct > 0.20:
		a.add(result, models.Gap{
			Category:      "pricing",
			Severity:      models.SeverityImportant,
			Title:         "Price above market",
			Description:   fmt.Sprintf("Your price is %.0f%% above average. Make sure your quality justifies the premium.", diffPct*100),
			YourValue:     yourValue,
			MarketValue:   marketValue,
			ImpactPercent: impactPriceImportant,
			FixEffort:     models.EffortEasy,
			FixCost:       models.CostFree,
		})
	case diffPct >= -0.10 && diffPct <= 0.05:
		a.add(result, models.Gap{
			Category:      "pricing",
			Severity:      models.SeverityAdvantage,
			Title:         "Competitive price",
			Description:   "Your price is well positioned relative to the market.",
			YourValue:     yourValue,
			MarketValue:   marketValue,
			ImpactPercent: impactPriceAdvantage,
			FixEffort:     models.EffortNone,
			FixCost:       models.CostFree,
		})
	case diffPct < -0.25:
		// Informational only: leaving money on the table is not a
		// visibility problem, so the impact stays zero.
		a.add(result, models.Gap{
			Category:      "pricing",
			Severity:      models.SeverityMinor,
			Title:         "Price potentially too low",
			Description:   fmt.Sprintf("Your price is %.0f%% below the market. You could raise revenue.", -diffPct*100),
			YourValue:     yourValue,
			MarketValue:   marketValue,
			ImpactPercent: 0,
			FixEffort:     models.EffortEasy,
			FixCost:       models.CostFree,
		})
	}
}

// missingAmenity is an essential amenity absent from the target but common
// among competitors.
type missingAmenity struct {
	name string
	pct  float64
}

// analyzeAmenities finds essential amenities present in 70%+ of competitors
// but absent from the target.
func (a *GapAnalyzer) analyzeAmenities(target models.Listing, competitors []models.Competitor, result *models.GapAnalysis) {
	freq := make(map[string]int)
	for i := range competitors {
		for _, amenity := range competitors[i].Amenities {
			freq[strings.ToLower(amenity)]++
		}
	}

	have := make(map[string]struct{}, len(target.Amenities))
	for _, amenity := range target.Amenities {
		have[strings.ToLower(amenity)] = struct{}{}
	}

	n := float64(len(competitors))
	var missing []missingAmenity
	for amenity, count := range freq {
		pct := float64(count) / n * 100
		if pct < 70 {
			continue
		}
		if _, ok := have[amenity]; ok {
			continue
		}
		if a.isEssential(amenity) {
			missing = append(missing, missingAmenity{name: titleCaser.String(amenity), pct: pct})
		}
	}

	if len(missing) == 0 {
		return
	}

	// Map iteration order is random; sort for reproducible descriptions.
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].pct != missing[j].pct {
			return missing[i].pct > missing[j].pct
		}
		return missing[i].name < missing[j].name
	})

	yourValue := fmt.Sprintf("%d amenities", len(target.Amenities))

	if len(missing) >= 3 {
		names := make([]string, 0, 5)
		for _, m := range missing[:min(5, len(missing))] {
			names = append(names, fmt.Sprintf("%s (%.0f%%)", m.name, m.pct))
		}
		a.add(result, models.Gap{
			Category:      "amenities",
			Severity:      models.SeverityCritical,
			Title:         "Missing essential amenities",
			Description:   fmt.Sprintf("These amenities are present in 70%%+ of competitors: %s", strings.Join(names, ", ")),
			YourValue:     yourValue,
			MarketValue:   fmt.Sprintf("%d critical missing", len(missing)),
			ImpactPercent: impactAmenitiesCritical,
			FixEffort:     models.EffortMedium,
			FixCost:       models.CostMedium,
		})
		return
	}

	names := make([]string, 0, len(missing))
	for _, m := range missing {
		names = append(names, m.name)
	}
	a.add(result, models.Gap{
		Category:      "amenities",
		Severity:      models.SeverityImportant,
		Title:         "Missing common amenities",
		Description:   fmt.Sprintf("Consider adding: %s", strings.Join(names, ", ")),
		YourValue:     yourValue,
		MarketValue:   fmt.Sprintf("%d missing", len(missing)),
		ImpactPercent: impactAmenitiesImportant,
		FixEffort:     models.EffortMedium,
		FixCost:       models.CostLow,
	})
}

// isEssential reports whether a lowercase amenity matches one of the
// configured canonical substrings.
func (a *GapAnalyzer) isEssential(amenity string) bool {
	for _, essential := range a.essentials {
		if strings.Contains(amenity, essential) {
			return true
		}
	}
	return false
}

// analyzeSuperhost checks the superhost badge against market adoption.
func (a *GapAnalyzer) analyzeSuperhost(target models.Listing, stats market.Stats, result *models.GapAnalysis) {
	marketValue := fmt.Sprintf("%.0f%% of competitors", stats.SuperhostPct)

	switch {
	case target.Superhost:
		a.add(result, models.Gap{
			Category:      "badges",
			Severity:      models.SeverityAdvantage,
			Title:         "Superhost status",
			Description:   "The Superhost badge boosts visibility and traveler trust.",
			YourValue:     "Superhost",
			MarketValue:   marketValue,
			ImpactPercent: impactSuperhostAdvantage,
			FixEffort:     models.EffortNone,
			FixCost:       models.CostFree,
		})
	case stats.SuperhostPct >= 50:
		a.add(result, models.Gap{
			Category:      "badges",
			Severity:      models.SeverityImportant,
			Title:         "No Superhost status",
			Description:   fmt.Sprintf("%.0f%% of competitors are Superhosts. The badge significantly improves ranking.", stats.SuperhostPct),
			YourValue:     "Not a Superhost",
			MarketValue:   marketValue,
			ImpactPercent: impactSuperhostGap,
			FixEffort:     models.EffortHard,
			FixCost:       models.CostFree,
		})
	}
}

// analyzeGuestFavorite checks the guest favorite badge.
func (a *GapAnalyzer) analyzeGuestFavorite(target models.Listing, stats market.Stats, result *models.GapAnalysis) {
	marketValue := fmt.Sprintf("%.0f%% of competitors", stats.GuestFavoritePct)

	switch {
	case target.GuestFavorite:
		a.add(result, models.Gap{
			Category:      "badges",
			Severity:      models.SeverityAdvantage,
			Title:         "Guest Favorite badge",
			Description:   "You are among the best-rated listings. This is a major visibility boost.",
			YourValue:     "Guest Favorite",
			MarketValue:   marketValue,
			ImpactPercent: impactGuestFavoriteAdvantage,
			FixEffort:     models.EffortNone,
			FixCost:       models.CostFree,
		})
	case stats.GuestFavoritePct >= 20 && target.Rating >= 4.8:
		a.add(result, models.Gap{
			Category:      "badges",
			Severity:      models.SeverityMinor,
			Title:         "Guest Favorite within reach",
			Description:   "With a 4.8+ rating you are close to the Guest Favorite badge. Keep it up.",
			YourValue:     fmt.Sprintf("%.2f★", target.Rating),
			MarketValue:   "4.9★ + 5 reviews + <1% cancellations",
			ImpactPercent: impactGuestFavoriteReachable,
			FixEffort:     models.EffortMedium,
			FixCost:       models.CostFree,
		})
	}
}

// analyzeReviewCount compares review volume against the market.
func (a *GapAnalyzer) analyzeReviewCount(target models.Listing, stats market.Stats, result *models.GapAnalysis) {
	count := target.ReviewsCount
	yourValue := fmt.Sprintf("%d reviews", count)

	switch {
	case count < 5:
		a.add(result, models.Gap{
			Category:      "reviews",
			Severity:      models.SeverityCritical,
			Title:         "Too few reviews",
			Description:   "Fewer than 5 reviews means no Guest Favorites eligibility and low traveler trust.",
			YourValue:     yourValue,
			MarketValue:   fmt.Sprintf("%.0f (avg), %d (max)", stats.AvgReviews, stats.MaxReviews),
			ImpactPercent: impactReviewsCritical,
			FixEffort:     models.EffortHard,
			FixCost:       models.CostFree,
		})
	case float64(count) < stats.AvgReviews*0.5:
		a.add(result, models.Gap{
			Category:      "reviews",
			Severity:      models.SeverityImportant,
			Title:         "Review count below market",
			Description:   "More reviews mean more trust and better ranking.",
			YourValue:     yourValue,
			MarketValue:   fmt.Sprintf("%.0f on average", stats.AvgReviews),
			ImpactPercent: impactReviewsImportant,
			FixEffort:     models.EffortHard,
			FixCost:       models.CostFree,
		})
	case float64(count) > stats.AvgReviews*1.5:
		a.add(result, models.Gap{
			Category:      "reviews",
			Severity:      models.SeverityAdvantage,
			Title:         "Excellent review count",
			Description:   "Your review count inspires traveler confidence.",
			YourValue:     yourValue,
			MarketValue:   fmt.Sprintf("%.0f on average", stats.AvgReviews),
			ImpactPercent: impactReviewsAdvantage,
			FixEffort:     models.EffortNone,
			FixCost:       models.CostFree,
		})
	}
}

// add routes a gap into its bucket. Severities are produced by the rules
// above, so a routing failure is a programming error worth surfacing loudly.
func (a *GapAnalyzer) add(result *models.GapAnalysis, gap models.Gap) {
	if err := result.Add(gap); err != nil {
		a.logger.Error("Dropping gap with invalid severity", "title", gap.Title, "error", err)
	}
}
