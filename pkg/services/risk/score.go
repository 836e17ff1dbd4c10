package risk

import "github.com/fin-tools/credit-atlas/pkg/models/domain"

const (
	highWeight   = 20
	mediumWeight = 10
	lowWeight    = 3
	maxScore     = 100
)

// Score reduces a flag list to a 0-100 composite. Weights are fixed so
// two reports with the same flags always score identically.
func Score(flags []domain.RiskFlag) int {
	score := 0
	for _, f := range flags {
		switch f.Severity {
		case domain.SeverityHigh:
			score += highWeight
		case domain.SeverityMedium:
			score += mediumWeight
		case domain.SeverityLow:
			score += lowWeight
		}
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}

// RatingForScore maps a composite score to its qualitative band.
func RatingForScore(score int) domain.RiskRating {
	switch {
	case score <= 25:
		return domain.RiskLow
	case score <= 45:
		return domain.RiskModerate
	case score <= 70:
		return domain.RiskElevated
	default:
		return domain.RiskHigh
	}
}
