package income

import (
	"fmt"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/fin-tools/credit-atlas/pkg/services/docvalue"
)

// qualify assembles the qualifying-income figure from per-category
// rules and records the reasoning in the result notes.
func (a *Analyzer) qualify(result *domain.IncomeAnalysis) {
	categories := map[string]float64{}

	wages := categoryNetByYear(result.Sources, domain.IncomeW2)
	if v := latestYearNet(wages); v != 0 {
		categories["wages"] = v
	}

	se := categoryNetByYear(result.Sources, domain.IncomeSelfEmployment)
	result.SelfEmploymentYears = len(se)
	if v, note := conservativeAverage(se, "self-employment"); v != 0 {
		categories["self_employment"] = v
		if note != "" {
			result.Notes = append(result.Notes, note)
		}
	}

	k1 := categoryNetByYear(result.Sources, domain.IncomePartnership, domain.IncomeSCorp)
	if v, note := conservativeAverage(k1, "partnership/S-corp"); v != 0 {
		categories["k1"] = v
		if note != "" {
			result.Notes = append(result.Notes, note)
		}
	}

	rental := categoryNetByYear(result.Sources, domain.IncomeRental)
	if v := latestYearNet(rental); v != 0 {
		categories["rental"] = v
	}

	passive := categoryNetByYear(result.Sources,
		domain.IncomeInterest, domain.IncomeDividends,
		domain.IncomeSocialSecurity, domain.IncomePension, domain.IncomeOther)
	if v := latestYearNet(passive); v != 0 {
		categories["passive"] = v
	}

	var total float64
	for _, v := range categories {
		total += v
	}
	result.QualifyingByCategory = categories
	result.QualifyingIncome = docvalue.RoundCurrency(total)

	if len(result.Sources) == 0 {
		result.Notes = append(result.Notes, "no income sources identified; qualifying income is zero")
	}
}

func categoryNetByYear(sources []domain.IncomeSource, types ...domain.IncomeSourceType) map[int]float64 {
	wanted := make(map[domain.IncomeSourceType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}
	byYear := make(map[int]float64)
	for _, src := range sources {
		if wanted[src.Type] {
			byYear[src.Year] = docvalue.RoundCurrency(byYear[src.Year] + src.NetAmount)
		}
	}
	return byYear
}

// latestYearNet is the point-in-time rule: most recent year only, no
// averaging.
func latestYearNet(byYear map[int]float64) float64 {
	years := sortedYears(byYear)
	if len(years) == 0 {
		return 0
	}
	return byYear[years[len(years)-1]]
}

// conservativeAverage implements the self-employment rule: with two or
// more years present, use the two-year average unless the most recent
// year declined, in which case use the lower recent year.
func conservativeAverage(byYear map[int]float64, label string) (float64, string) {
	years := sortedYears(byYear)
	switch len(years) {
	case 0:
		return 0, ""
	case 1:
		return byYear[years[0]], ""
	}

	latest := byYear[years[len(years)-1]]
	prior := byYear[years[len(years)-2]]
	if latest < prior {
		note := fmt.Sprintf(
			"%s income declined year over year; using the most recent year %.2f instead of the %.2f two-year average",
			label, latest, docvalue.RoundCurrency((latest+prior)/2))
		return latest, note
	}
	return docvalue.RoundCurrency((latest + prior) / 2), ""
}
