package sources

import (
	"context"
	"fmt"

	"github.com/rabi3laser/visibility-doctor/internal/models"
)

// MockSource serves canned records from memory. Useful in tests and for
// exercising the pipeline without a snapshot on disk.
type MockSource struct {
	Listings        map[string]models.Listing
	CompetitorSets  map[string][]models.Competitor
	Grades          map[string]models.GradeResult
	ListingErr      error
	CompetitorsErr  error
	GradeErr        error
	CompetitorCalls int
}

// NewMockSource creates an empty mock source.
func NewMockSource() *MockSource {
	return &MockSource{
		Listings:       make(map[string]models.Listing),
		CompetitorSets: make(map[string][]models.Competitor),
		Grades:         make(map[string]models.GradeResult),
	}
}

// Listing returns the canned listing for id.
func (m *MockSource) Listing(_ context.Context, id string) (models.Listing, error) {
	if m.ListingErr != nil {
		return models.Listing{}, m.ListingErr
	}
	listing, ok := m.Listings[id]
	if !ok {
		return models.Listing{}, fmt.Errorf("listing not found: %s", id)
	}
	return listing, nil
}

// Competitors returns the canned peer set for id, capped at max.
func (m *MockSource) Competitors(_ context.Context, id string, max int) ([]models.Competitor, error) {
	m.CompetitorCalls++
	if m.CompetitorsErr != nil {
		return nil, m.CompetitorsErr
	}
	competitors := m.CompetitorSets[id]
	if max > 0 && len(competitors) > max {
		competitors = competitors[:max]
	}
	return competitors, nil
}

// Grade returns the canned grade for the listing, or a zero result when none
// was registered.
func (m *MockSource) Grade(_ context.Context, listing models.Listing) (models.GradeResult, error) {
	if m.GradeErr != nil {
		return models.GradeResult{}, m.GradeErr
	}
	return m.Grades[listing.ID], nil
}
