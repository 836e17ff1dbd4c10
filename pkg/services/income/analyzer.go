// Package income turns tax-form extraction records into per-source
// income items and the qualifying-income figure used by the ratio
// calculators. Averaging policy is asymmetric on purpose: volatile
// self-reported income (Schedule C, K-1) is averaged across two years
// or floored at a declining year, while salaried and passive income is
// taken at the most recent year only.
package income

import (
	"fmt"
	"sort"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/fin-tools/credit-atlas/pkg/services/doctype"
	"github.com/fin-tools/credit-atlas/pkg/services/docvalue"
)

const trendThresholdPct = 5.0

type Analyzer struct {
	refYear int
}

// NewAnalyzer builds an income analyzer. referenceYear replaces the
// wall clock wherever a document is missing its tax year.
func NewAnalyzer(referenceYear int) *Analyzer {
	return &Analyzer{refYear: referenceYear}
}

// Analyze extracts, deduplicates, and aggregates income sources from
// the supplied records. It never fails; degraded input yields a result
// with explanatory notes.
func (a *Analyzer) Analyze(records []domain.ExtractionRecord) domain.IncomeAnalysis {
	var sources []domain.IncomeSource
	for _, rec := range records {
		sources = append(sources, a.extract(rec)...)
	}
	sources = dedupeWages(sources)

	result := domain.IncomeAnalysis{
		Sources: sources,
		ByYear:  aggregateByYear(sources),
	}

	result.LatestYear = latestYear(result.ByYear, a.refYear)
	result.TrendPct, result.Trend = netTrend(result.ByYear)
	a.qualify(&result)
	return result
}

func (a *Analyzer) extract(rec domain.ExtractionRecord) []domain.IncomeSource {
	switch doctype.ResolveForm(rec.DocType) {
	case doctype.FormW2:
		return a.extractW2(rec)
	case doctype.Form1040:
		return a.extract1040(rec)
	case doctype.FormScheduleC:
		return a.extractScheduleC(rec)
	case doctype.FormScheduleE:
		return a.extractScheduleE(rec)
	case doctype.FormK1, doctype.Form1065, doctype.Form1120S:
		return a.extractK1(rec)
	case doctype.FormProfitLoss:
		return a.extractProfitLoss(rec)
	case doctype.Form1120:
		// C-corp income reaches the applicant as W-2 wages or
		// dividends captured elsewhere; the return itself adds none.
		return nil
	default:
		return a.extractGeneric(rec)
	}
}

func (a *Analyzer) year(rec domain.ExtractionRecord) int {
	if rec.Year != 0 {
		return rec.Year
	}
	if y := docvalue.IntOf(rec.Data, "year", "taxYear"); y != 0 {
		return y
	}
	return a.refYear
}

func (a *Analyzer) extractW2(rec domain.ExtractionRecord) []domain.IncomeSource {
	wages := docvalue.AmountOf(rec.Data, "wages", "box1", "wagesTipsOther", "grossPay")
	if wages == 0 {
		return nil
	}
	desc := docvalue.StrOf(rec.Data, "employer", "employerName")
	if desc == "" {
		desc = "Wages"
	}
	return []domain.IncomeSource{{
		Type:        domain.IncomeW2,
		Description: desc,
		GrossAmount: wages,
		NetAmount:   wages,
		Year:        a.year(rec),
		Recurring:   true,
	}}
}

func (a *Analyzer) extract1040(rec domain.ExtractionRecord) []domain.IncomeSource {
	year := a.year(rec)
	var sources []domain.IncomeSource

	add := func(t domain.IncomeSourceType, desc string, amount float64) {
		if amount == 0 {
			return
		}
		sources = append(sources, domain.IncomeSource{
			Type:        t,
			Description: desc,
			GrossAmount: amount,
			NetAmount:   amount,
			Year:        year,
			Recurring:   true,
		})
	}

	// Wage lines share the employer-or-"Wages" description with W-2
	// extraction so the composite dedup key collapses double counts.
	if wages := docvalue.AmountOf(rec.Data, "wages", "wagesSalaries", "line1"); wages != 0 {
		desc := docvalue.StrOf(rec.Data, "employer", "employerName")
		if desc == "" {
			desc = "Wages"
		}
		add(domain.IncomeW2, desc, wages)
	}
	add(domain.IncomeInterest, "Taxable interest", docvalue.AmountOf(rec.Data, "taxableInterest", "interest", "interestIncome"))
	add(domain.IncomeDividends, "Ordinary dividends", docvalue.AmountOf(rec.Data, "ordinaryDividends", "dividends", "dividendIncome"))
	add(domain.IncomeSocialSecurity, "Social Security benefits", docvalue.AmountOf(rec.Data, "socialSecurity", "socialSecurityBenefits"))
	add(domain.IncomePension, "Pensions and annuities", docvalue.AmountOf(rec.Data, "pensionsAnnuities", "pension", "pensionIncome"))
	return sources
}

func (a *Analyzer) extractScheduleC(rec domain.ExtractionRecord) []domain.IncomeSource {
	net := docvalue.AmountOf(rec.Data, "netProfit", "netIncome", "line31")
	gross := docvalue.AmountOf(rec.Data, "grossReceipts", "grossIncome", "revenue")
	if net == 0 && gross == 0 {
		return nil
	}
	if gross == 0 {
		gross = net
	}
	desc := docvalue.StrOf(rec.Data, "businessName", "name")
	if desc == "" {
		desc = "Self-employment"
	}
	return []domain.IncomeSource{{
		Type:        domain.IncomeSelfEmployment,
		Description: desc,
		GrossAmount: gross,
		NetAmount:   net,
		Year:        a.year(rec),
		Recurring:   true,
	}}
}

func (a *Analyzer) extractScheduleE(rec domain.ExtractionRecord) []domain.IncomeSource {
	year := a.year(rec)

	if properties := docvalue.MapsOf(rec.Data, "properties"); len(properties) > 0 {
		var sources []domain.IncomeSource
		for i, prop := range properties {
			gross := docvalue.AmountOf(prop, "rentsReceived", "rentalIncome", "grossRents")
			net := docvalue.AmountOf(prop, "netIncome", "net", "netRentalIncome")
			if gross == 0 && net == 0 {
				continue
			}
			desc := docvalue.StrOf(prop, "address", "description", "property")
			if desc == "" {
				desc = fmt.Sprintf("Rental property %d", i+1)
			}
			sources = append(sources, domain.IncomeSource{
				Type:        domain.IncomeRental,
				Description: desc,
				GrossAmount: gross,
				NetAmount:   net,
				Year:        year,
				Recurring:   true,
			})
		}
		return sources
	}

	gross := docvalue.AmountOf(rec.Data, "totalRentalIncome", "rentsReceived", "rentalIncome")
	net := docvalue.AmountOf(rec.Data, "netRentalIncome", "netIncome")
	if gross == 0 && net == 0 {
		return nil
	}
	return []domain.IncomeSource{{
		Type:        domain.IncomeRental,
		Description: "Rental income (Schedule E)",
		GrossAmount: gross,
		NetAmount:   net,
		Year:        year,
		Recurring:   true,
	}}
}

func (a *Analyzer) extractK1(rec domain.ExtractionRecord) []domain.IncomeSource {
	ordinary := docvalue.AmountOf(rec.Data, "ordinaryIncome", "ordinaryBusinessIncome", "box1")
	guaranteed := docvalue.AmountOf(rec.Data, "guaranteedPayments", "box4")
	netRental := docvalue.AmountOf(rec.Data, "netRentalIncome", "netRentalRealEstate", "box2")
	total := ordinary + guaranteed + netRental
	if total == 0 {
		return nil
	}

	srcType := domain.IncomePartnership
	if isSCorp(rec) {
		srcType = domain.IncomeSCorp
	}
	desc := docvalue.StrOf(rec.Data, "entityName", "partnershipName", "businessName")
	if desc == "" {
		desc = "K-1 income"
	}
	return []domain.IncomeSource{{
		Type:        srcType,
		Description: desc,
		GrossAmount: total,
		NetAmount:   total,
		Year:        a.year(rec),
		Recurring:   true,
	}}
}

func isSCorp(rec domain.ExtractionRecord) bool {
	if doctype.ResolveForm(rec.DocType) == doctype.Form1120S {
		return true
	}
	hint := doctype.Normalize(docvalue.StrOf(rec.Data, "entityType", "formType"))
	return hint == "scorp" || hint == "scorporation" || hint == "1120s"
}

func (a *Analyzer) extractProfitLoss(rec domain.ExtractionRecord) []domain.IncomeSource {
	// A P&L substitutes for a tax return: its net income counts as
	// self-employment income for the covered year.
	net := docvalue.AmountOf(rec.Data, "netIncome", "netProfit")
	gross := docvalue.AmountOf(rec.Data, "revenue", "totalRevenue", "grossReceipts", "totalIncome")
	if net == 0 && gross == 0 {
		return nil
	}
	if gross == 0 {
		gross = net
	}
	desc := docvalue.StrOf(rec.Data, "businessName", "name")
	if desc == "" {
		desc = "Business P&L"
	}
	return []domain.IncomeSource{{
		Type:        domain.IncomeSelfEmployment,
		Description: desc,
		GrossAmount: gross,
		NetAmount:   net,
		Year:        a.year(rec),
		Recurring:   true,
	}}
}

func (a *Analyzer) extractGeneric(rec domain.ExtractionRecord) []domain.IncomeSource {
	// Unclassified documents still flow through so unknown-but-relevant
	// data is not lost; a bare income figure is treated as other income.
	amount := docvalue.AmountOf(rec.Data, "income", "netIncome", "annualIncome", "totalIncome")
	if amount == 0 {
		return nil
	}
	desc := docvalue.StrOf(rec.Data, "description", "source")
	if desc == "" {
		desc = fmt.Sprintf("Unclassified document (%s)", rec.DocType)
	}
	return []domain.IncomeSource{{
		Type:        domain.IncomeOther,
		Description: desc,
		GrossAmount: amount,
		NetAmount:   amount,
		Year:        a.year(rec),
		Recurring:   false,
	}}
}

// dedupeWages collapses wage sources sharing (description, year,
// grossAmount) so a 1040 wage line does not double-count a standalone
// W-2 for the same employer and year.
func dedupeWages(sources []domain.IncomeSource) []domain.IncomeSource {
	seen := make(map[string]bool)
	out := make([]domain.IncomeSource, 0, len(sources))
	for _, src := range sources {
		if src.Type == domain.IncomeW2 {
			key := fmt.Sprintf("%s|%d|%.2f", src.Description, src.Year, src.GrossAmount)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, src)
	}
	return out
}

func aggregateByYear(sources []domain.IncomeSource) map[int]domain.YearIncome {
	byYear := make(map[int]domain.YearIncome)
	for _, src := range sources {
		agg := byYear[src.Year]
		agg.Gross = docvalue.RoundCurrency(agg.Gross + src.GrossAmount)
		agg.Net = docvalue.RoundCurrency(agg.Net + src.NetAmount)
		byYear[src.Year] = agg
	}
	return byYear
}

func latestYear(byYear map[int]domain.YearIncome, refYear int) int {
	latest := 0
	for year := range byYear {
		if year > latest {
			latest = year
		}
	}
	if latest == 0 {
		return refYear
	}
	return latest
}

// netTrend compares the latest year's net against the immediately
// preceding year present. Prior exactly zero with positive latest is
// reported as +100%.
func netTrend(byYear map[int]domain.YearIncome) (float64, domain.Trend) {
	years := sortedYears(byYear)
	if len(years) < 2 {
		return 0, domain.TrendStable
	}
	latest := byYear[years[len(years)-1]].Net
	prior := byYear[years[len(years)-2]].Net
	return classifyTrend(latest, prior, trendThresholdPct)
}

func classifyTrend(latest, prior, thresholdPct float64) (float64, domain.Trend) {
	var pct float64
	switch {
	case prior == 0 && latest > 0:
		pct = 100
	case prior == 0:
		pct = 0
	default:
		pct = docvalue.RoundRatio((latest - prior) / abs(prior) * 100)
	}

	switch {
	case pct > thresholdPct:
		return pct, domain.TrendIncreasing
	case pct < -thresholdPct:
		return pct, domain.TrendDeclining
	default:
		return pct, domain.TrendStable
	}
}

func sortedYears[V any](byYear map[int]V) []int {
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
