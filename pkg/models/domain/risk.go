package domain

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities for sorting; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// RiskFlag is one triggered underwriting condition. Flags are
// independent; no flag depends on another flag's presence.
type RiskFlag struct {
	Severity       Severity
	Category       string
	Title          string
	Description    string
	Recommendation string
}

type RiskRating string

const (
	RiskLow      RiskRating = "low"
	RiskModerate RiskRating = "moderate"
	RiskElevated RiskRating = "elevated"
	RiskHigh     RiskRating = "high"
)
