// Package sources defines where listing data comes from. Implementations
// read materialized records; nothing here talks to the network.
package sources

import (
	"context"

	"github.com/rabi3laser/visibility-doctor/internal/models"
)

// ListingSource provides the target listing record.
type ListingSource interface {
	Listing(ctx context.Context, id string) (models.Listing, error)
}

// CompetitorSource provides peer listings for a target. Implementations may
// return fewer than max competitors; the target itself must not appear in
// the result.
type CompetitorSource interface {
	Competitors(ctx context.Context, id string, max int) ([]models.Competitor, error)
}

// Grader provides an external quality score for a listing.
type Grader interface {
	Grade(ctx context.Context, listing models.Listing) (models.GradeResult, error)
}

// Source bundles the three collaborator roles behind one value.
type Source interface {
	ListingSource
	CompetitorSource
	Grader
}
