package market

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rabi3laser/visibility-doctor/internal/models"
)

func photos(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "img.jpg"
	}
	return out
}

func TestCompute(t *testing.T) {
	competitors := []models.Competitor{
		{ID: "1", Images: photos(10), Rating: 4.8, ReviewsCount: 40, PricePerNight: 100, InstantBookable: true, Superhost: true},
		{ID: "2", Images: photos(20), Rating: 4.6, ReviewsCount: 60, PricePerNight: 120, InstantBookable: true, GuestFavorite: true},
		{ID: "3", Images: photos(30), Rating: 0, ReviewsCount: 20, PricePerNight: 0},
		{ID: "4", Images: photos(12), Rating: 5.0, ReviewsCount: 80, PricePerNight: 140, InstantBookable: true},
	}

	stats := Compute(competitors)

	assert.InDelta(t, 18.0, stats.AvgPhotos, 1e-9)
	assert.InDelta(t, 50.0, stats.AvgReviews, 1e-9)
	// Unrated and unpriced peers are excluded from those averages.
	assert.InDelta(t, 4.8, stats.AvgRating, 1e-9)
	assert.InDelta(t, 120.0, stats.AvgPrice, 1e-9)
	assert.InDelta(t, 75.0, stats.InstantBookPct, 1e-9)
	assert.InDelta(t, 25.0, stats.SuperhostPct, 1e-9)
	assert.InDelta(t, 25.0, stats.GuestFavoritePct, 1e-9)
	assert.Equal(t, 30, stats.MaxPhotos)
	assert.Equal(t, 80, stats.MaxReviews)
	assert.InDelta(t, 120.0, stats.MedianPrice, 1e-9)
}

func TestComputeNoRatedOrPricedPeers(t *testing.T) {
	competitors := []models.Competitor{
		{ID: "1", Images: photos(5)},
		{ID: "2", Images: photos(7)},
	}

	stats := Compute(competitors)

	// Denominator floors at 1; absent signals surface as zero, which
	// downstream rules treat as "metric unavailable".
	assert.Zero(t, stats.AvgRating)
	assert.Zero(t, stats.AvgPrice)
	assert.Zero(t, stats.MedianPrice)
	assert.InDelta(t, 6.0, stats.AvgPhotos, 1e-9)
}

func TestComputeSinglePeer(t *testing.T) {
	stats := Compute([]models.Competitor{
		{ID: "1", Images: photos(15), Rating: 4.9, ReviewsCount: 12, PricePerNight: 80, InstantBookable: true},
	})

	assert.InDelta(t, 100.0, stats.InstantBookPct, 1e-9)
	assert.InDelta(t, 4.9, stats.AvgRating, 1e-9)
	assert.InDelta(t, 80.0, stats.MedianPrice, 1e-9)
}
