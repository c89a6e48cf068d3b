// Package market reduces a set of competitor listings into summary
// statistics used by the gap classifier.
package market

import (
	"sort"

	"github.com/rabi3laser/visibility-doctor/internal/models"
)

// Stats is an immutable snapshot of market aggregates. Averages over rating
// and price only count peers with positive values; a zero average means no
// peer carried that signal.
type Stats struct {
	AvgPhotos        float64 `json:"avg_photos"`
	AvgRating        float64 `json:"avg_rating"`
	AvgReviews       float64 `json:"avg_reviews"`
	AvgPrice         float64 `json:"avg_price"`
	MedianPrice      float64 `json:"median_price"`
	InstantBookPct   float64 `json:"instant_book_pct"`
	SuperhostPct     float64 `json:"superhost_pct"`
	GuestFavoritePct float64 `json:"guest_favorite_pct"`
	MaxPhotos        int     `json:"max_photos"`
	MaxReviews       int     `json:"max_reviews"`
}

// Compute aggregates competitor listings into market statistics.
// Precondition: competitors is non-empty. The classifier guards the call;
// Compute itself is undefined on empty input.
func Compute(competitors []models.Competitor) Stats {
	n := float64(len(competitors))

	var (
		photoSum, reviewSum          float64
		ratingSum, priceSum          float64
		ratedCount, pricedCount      int
		instant, superhost, favorite int
		prices                       []float64
	)

	stats := Stats{}
	for i := range competitors {
		c := &competitors[i]

		photoSum += float64(c.PhotoCount())
		reviewSum += float64(c.ReviewsCount)
		if c.PhotoCount() > stats.MaxPhotos {
			stats.MaxPhotos = c.PhotoCount()
		}
		if c.ReviewsCount > stats.MaxReviews {
			stats.MaxReviews = c.ReviewsCount
		}

		if c.Rating > 0 {
			ratingSum += c.Rating
			ratedCount++
		}
		if c.PricePerNight > 0 {
			priceSum += c.PricePerNight
			pricedCount++
			prices = append(prices, c.PricePerNight)
		}

		if c.InstantBookable {
			instant++
		}
		if c.Superhost {
			superhost++
		}
		if c.GuestFavorite {
			favorite++
		}
	}

	stats.AvgPhotos = photoSum / n
	stats.AvgReviews = reviewSum / n
	stats.AvgRating = ratingSum / float64(max(1, ratedCount))
	stats.AvgPrice = priceSum / float64(max(1, pricedCount))
	stats.InstantBookPct = float64(instant) / n * 100
	stats.SuperhostPct = float64(superhost) / n * 100
	stats.GuestFavoritePct = float64(favorite) / n * 100
	stats.MedianPrice = median(prices)

	return stats
}

// median returns the upper median of positive prices, 0 when none exist.
func median(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	sort.Float64s(prices)
	return prices[len(prices)/2]
}
