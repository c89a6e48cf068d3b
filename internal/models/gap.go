package models

import "fmt"

// Gap is one rule's verdict comparing the target listing to its market.
// Negative impact is a visibility deficit, positive an advantage; the
// magnitude is a fixed per-rule heuristic, not a measurement.
type Gap struct {
	Category      string  `json:"category"`
	Severity      string  `json:"severity"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	YourValue     string  `json:"your_value"`
	MarketValue   string  `json:"market_value"`
	ImpactPercent float64 `json:"impact_percent"`
	FixEffort     string  `json:"fix_effort"`
	FixCost       string  `json:"fix_cost"`
}

// GapAnalysis is the complete classifier result: four ordered severity
// buckets plus the derived visibility loss estimate.
type GapAnalysis struct {
	ListingID               string  `json:"listing_id"`
	CompetitorsCount        int     `json:"competitors_count"`
	CriticalGaps            []Gap   `json:"critical_gaps"`
	ImportantGaps           []Gap   `json:"important_gaps"`
	MinorGaps               []Gap   `json:"minor_gaps"`
	Advantages              []Gap   `json:"advantages"`
	EstimatedVisibilityLoss float64 `json:"estimated_visibility_loss"`
}

// NewGapAnalysis creates an empty analysis for a listing.
func NewGapAnalysis(listingID string, competitorsCount int) *GapAnalysis {
	return &GapAnalysis{
		ListingID:        listingID,
		CompetitorsCount: competitorsCount,
		CriticalGaps:     []Gap{},
		ImportantGaps:    []Gap{},
		MinorGaps:        []Gap{},
		Advantages:       []Gap{},
	}
}

// Add appends a gap to the bucket matching its severity. Bucket order is
// insertion order, so rule evaluation order determines output ordering.
func (a *GapAnalysis) Add(gap Gap) error {
	switch gap.Severity {
	case SeverityCritical:
		a.CriticalGaps = append(a.CriticalGaps, gap)
	case SeverityImportant:
		a.ImportantGaps = append(a.ImportantGaps, gap)
	case SeverityMinor:
		a.MinorGaps = append(a.MinorGaps, gap)
	case SeverityAdvantage:
		a.Advantages = append(a.Advantages, gap)
	default:
		return fmt.Errorf("invalid gap severity: %q", gap.Severity)
	}
	return nil
}

// AllGaps returns critical, important, and minor gaps in bucket order.
// Advantages are not gaps and are excluded.
func (a *GapAnalysis) AllGaps() []Gap {
	all := make([]Gap, 0, len(a.CriticalGaps)+len(a.ImportantGaps)+len(a.MinorGaps))
	all = append(all, a.CriticalGaps...)
	all = append(all, a.ImportantGaps...)
	all = append(all, a.MinorGaps...)
	return all
}

// TotalGaps returns the number of deficit gaps across all three buckets.
func (a *GapAnalysis) TotalGaps() int {
	return len(a.CriticalGaps) + len(a.ImportantGaps) + len(a.MinorGaps)
}

// RecalculateLoss recomputes the estimated visibility loss as the sum of
// absolute impacts over deficit gaps. Advantages never contribute.
func (a *GapAnalysis) RecalculateLoss() {
	var loss float64
	for _, g := range a.AllGaps() {
		if g.ImpactPercent < 0 {
			loss -= g.ImpactPercent
		} else {
			loss += g.ImpactPercent
		}
	}
	a.EstimatedVisibilityLoss = loss
}
