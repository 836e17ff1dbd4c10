package debt

import (
	"fmt"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/fin-tools/credit-atlas/pkg/services/docvalue"
)

// CalculateDSCR compares annual qualifying income against total
// detected debt service including the proposed loan payment.
func CalculateDSCR(annualQualifyingIncome float64, payments []domain.RecurringPayment, proposedMonthly float64) domain.DscrAnalysis {
	result := domain.DscrAnalysis{
		AnnualQualifyingIncome: annualQualifyingIncome,
		ProposedMonthlyPayment: proposedMonthly,
	}

	monthlyDebt := proposedMonthly
	for _, p := range payments {
		if p.Debt {
			monthlyDebt += p.Monthly
		}
	}
	result.AnnualDebtService = docvalue.RoundCurrency(monthlyDebt * 12)

	if result.AnnualDebtService == 0 {
		result.Notes = append(result.Notes, "no debt service detected; coverage ratio not applicable")
		result.Rating = domain.DscrStrong
		return result
	}

	// The rating is classified on the unrounded ratio; rounding the
	// reported figure must never promote a value across a tier boundary.
	ratio := annualQualifyingIncome / result.AnnualDebtService
	result.DSCR = docvalue.RoundRatio(ratio)
	switch {
	case ratio >= 1.5:
		result.Rating = domain.DscrStrong
	case ratio >= 1.25:
		result.Rating = domain.DscrGood
	case ratio >= 1.0:
		result.Rating = domain.DscrAdequate
	default:
		result.Rating = domain.DscrInsufficient
		result.Notes = append(result.Notes,
			fmt.Sprintf("income covers only %.0f%% of debt service", result.DSCR*100))
	}
	return result
}
