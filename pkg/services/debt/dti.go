package debt

import (
	"strings"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/fin-tools/credit-atlas/pkg/services/docvalue"
)

// Paired front-end/back-end rating thresholds, tightest first.
var dtiTiers = []struct {
	front, back float64
	rating      domain.DtiRating
}{
	{0.28, 0.36, domain.DtiExcellent},
	{0.31, 0.43, domain.DtiGood},
	{0.33, 0.45, domain.DtiAcceptable},
	{0.36, 0.50, domain.DtiHigh},
}

// CalculateDTI computes front-end and back-end debt-to-income ratios.
// A refinance replaces the detected housing expense with the proposed
// payment instead of stacking the old and new mortgage; any other
// purpose adds the proposed payment to the detected housing cost.
func CalculateDTI(annualQualifyingIncome float64, payments []domain.RecurringPayment, loan domain.LoanTerms, proposedMonthly float64) domain.DtiAnalysis {
	result := domain.DtiAnalysis{
		GrossMonthlyIncome: docvalue.RoundCurrency(annualQualifyingIncome / 12),
		Payments:           payments,
	}

	var detectedHousing, nonHousingDebt float64
	for _, p := range payments {
		switch {
		case p.Housing:
			detectedHousing += p.Monthly
		case p.Debt:
			nonHousingDebt += p.Monthly
		}
	}
	result.HousingDetected = detectedHousing > 0

	housing := detectedHousing
	if isRefinance(loan.Purpose) {
		housing = proposedMonthly
		if result.HousingDetected {
			result.Notes = append(result.Notes,
				"refinance: proposed payment replaces the detected housing expense")
		}
	} else {
		housing += proposedMonthly
	}

	result.HousingExpense = docvalue.RoundCurrency(housing)
	result.TotalMonthlyDebt = docvalue.RoundCurrency(housing + nonHousingDebt)

	if result.GrossMonthlyIncome <= 0 {
		if result.TotalMonthlyDebt > 0 {
			result.Rating = domain.DtiExcessive
			result.Notes = append(result.Notes, "no qualifying income to support detected debt")
		} else {
			result.Rating = domain.DtiExcellent
		}
		return result
	}

	result.FrontEndRatio = docvalue.RoundRatio(result.HousingExpense / result.GrossMonthlyIncome)
	result.BackEndRatio = docvalue.RoundRatio(result.TotalMonthlyDebt / result.GrossMonthlyIncome)

	backOnly := result.HousingExpense == 0
	if backOnly {
		result.Notes = append(result.Notes,
			"no housing expense detected; rating uses back-end thresholds only and front-end may be understated")
	}

	result.Rating = domain.DtiExcessive
	for _, tier := range dtiTiers {
		if result.BackEndRatio <= tier.back && (backOnly || result.FrontEndRatio <= tier.front) {
			result.Rating = tier.rating
			break
		}
	}
	return result
}

func isRefinance(purpose string) bool {
	return strings.Contains(strings.ToLower(purpose), "refinance")
}
