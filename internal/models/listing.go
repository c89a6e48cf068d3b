// Package models contains data structures for Visibility Doctor analyses.
package models

import (
	"fmt"
	"time"
)

// Listing is the target listing under diagnosis, as materialized by a
// listing source. The core never fetches it itself.
type Listing struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	URL               string    `json:"url,omitempty"`
	City              string    `json:"city,omitempty"`
	Latitude          float64   `json:"latitude,omitempty"`
	Longitude         float64   `json:"longitude,omitempty"`
	PricePerNight     float64   `json:"price_per_night"`
	Currency          string    `json:"currency,omitempty"`
	Rating            float64   `json:"rating"`
	ReviewsCount      int       `json:"reviews_count"`
	ResponseRate      float64   `json:"response_rate"`
	ResponseTimeHours float64   `json:"response_time_hours"`
	InstantBookable   bool      `json:"instant_bookable"`
	Superhost         bool      `json:"is_superhost"`
	GuestFavorite     bool      `json:"is_guest_favorite"`
	Images            []string  `json:"images"`
	Amenities         []string  `json:"amenities"`
	ScrapedAt         time.Time `json:"scraped_at,omitempty"`
}

// PhotoCount returns the number of listing photos.
func (l *Listing) PhotoCount() int { return len(l.Images) }

// IsValid checks the caller-level contract on a target listing. The analysis
// core assumes validated input; this is the single entry check.
func (l *Listing) IsValid() error {
	if l.ID == "" {
		return fmt.Errorf("listing missing required field: id")
	}
	if l.Rating < 0 {
		return fmt.Errorf("listing has negative rating: %.2f", l.Rating)
	}
	if l.ReviewsCount < 0 {
		return fmt.Errorf("listing has negative reviews count: %d", l.ReviewsCount)
	}
	if l.PricePerNight < 0 {
		return fmt.Errorf("listing has negative price: %.2f", l.PricePerNight)
	}
	return nil
}

// Competitor is a peer listing from the same market. Peers are only ever
// aggregated, never exchanged with the target.
type Competitor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	PricePerNight   float64  `json:"price_per_night"`
	Rating          float64  `json:"rating"`
	ReviewsCount    int      `json:"reviews_count"`
	InstantBookable bool     `json:"instant_bookable"`
	Superhost       bool     `json:"is_superhost"`
	GuestFavorite   bool     `json:"is_guest_favorite"`
	Images          []string `json:"images"`
	Amenities       []string `json:"amenities"`
}

// PhotoCount returns the number of competitor photos.
func (c *Competitor) PhotoCount() int { return len(c.Images) }

// GradeResult is the output of the external quality scorer. The scoring
// algorithm itself is a collaborator; only its sub-scores feed the analysis.
type GradeResult struct {
	OverallScore      int     `json:"overall_score"`
	Grade             string  `json:"grade"`
	ResponseScore     float64 `json:"response_score"`
	ReviewsScore      float64 `json:"reviews_score"`
	ResponseRate      float64 `json:"response_rate"`
	ResponseTimeHours float64 `json:"response_time_hours"`
}
