package models

// Gap severity levels as constants for type safety and consistency.
// The set is closed: every gap lands in exactly one of these buckets.
const (
	SeverityCritical  = "critical"
	SeverityImportant = "important"
	SeverityMinor     = "minor"
	SeverityAdvantage = "advantage"
)

// ValidSeverities returns all valid severity levels for validation.
func ValidSeverities() []string {
	return []string{
		SeverityCritical,
		SeverityImportant,
		SeverityMinor,
		SeverityAdvantage,
	}
}

// IsValidSeverity checks if a severity level is valid.
func IsValidSeverity(severity string) bool {
	switch severity {
	case SeverityCritical, SeverityImportant, SeverityMinor, SeverityAdvantage:
		return true
	default:
		return false
	}
}

// Fix effort levels.
const (
	EffortNone   = "none"
	EffortEasy   = "easy"
	EffortMedium = "medium"
	EffortHard   = "hard"
)

// Fix cost levels.
const (
	CostFree   = "free"
	CostLow    = "low"
	CostMedium = "medium"
	CostHigh   = "high"
)
