// Package business extracts business-entity financials from tax
// returns and profit-and-loss statements, aggregates them by year, and
// estimates cash-generating capacity via add-backs.
package business

import (
	"fmt"
	"sort"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/fin-tools/credit-atlas/pkg/services/doctype"
	"github.com/fin-tools/credit-atlas/pkg/services/docvalue"
)

const (
	trendThresholdPct = 5.0
	highExpenseRatio  = 0.85
)

type Analyzer struct {
	refYear int
}

func NewAnalyzer(referenceYear int) *Analyzer {
	return &Analyzer{refYear: referenceYear}
}

// Analyze extracts business financials from the supplied records.
// A nil result means no business documents were present; that is the
// "not applicable" case, not an error.
func (a *Analyzer) Analyze(records []domain.ExtractionRecord) *domain.BusinessAnalysis {
	var entries []domain.BusinessYearEntry
	for _, rec := range records {
		if entry, ok := a.extract(rec); ok {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return nil
	}

	result := &domain.BusinessAnalysis{
		Entries: entries,
		ByYear:  aggregate(entries),
	}

	years := sortedYears(result.ByYear)
	result.LatestYear = years[len(years)-1]
	latest := result.ByYear[result.LatestYear]

	if len(years) >= 2 {
		prior := result.ByYear[years[len(years)-2]]
		result.RevenueTrendPct, result.RevenueTrend = classifyTrend(latest.Revenue, prior.Revenue)
	} else {
		result.RevenueTrend = domain.TrendStable
	}

	result.AddBacks = docvalue.RoundCurrency(
		latest.Depreciation + latest.Amortization + latest.InterestExpense + latest.OwnerComp + latest.OneTimeItems)
	result.AdjustedNetIncome = docvalue.RoundCurrency(latest.NetIncome + result.AddBacks)

	if latest.Revenue > 0 {
		result.ExpenseRatio = docvalue.RoundRatio(latest.Expenses / latest.Revenue)
		if result.ExpenseRatio > highExpenseRatio {
			result.HighExpenseRatio = true
			result.Notes = append(result.Notes,
				fmt.Sprintf("expense ratio %.1f%% exceeds the %.0f%% threshold", result.ExpenseRatio*100, highExpenseRatio*100))
		}
	}
	if latest.Entities > 1 {
		result.Notes = append(result.Notes,
			fmt.Sprintf("%d business entities reported for %d", latest.Entities, result.LatestYear))
	}
	return result
}

func (a *Analyzer) extract(rec domain.ExtractionRecord) (domain.BusinessYearEntry, bool) {
	switch doctype.ResolveForm(rec.DocType) {
	case doctype.FormScheduleC:
		return a.extractScheduleC(rec), true
	case doctype.Form1065, doctype.Form1120, doctype.Form1120S:
		return a.extractCorporateReturn(rec), true
	case doctype.FormProfitLoss:
		return a.extractProfitLoss(rec), true
	}
	return domain.BusinessYearEntry{}, false
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

func (a *Analyzer) extractScheduleC(rec domain.ExtractionRecord) domain.BusinessYearEntry {
	// Schedule C has no officer compensation line; casualty or theft
	// losses are the one-time item and always add back as a positive.
	casualty := docvalue.AmountOf(rec.Data, "casualtyLoss", "casualtyTheftLoss")
	return domain.BusinessYearEntry{
		Year:            a.year(rec),
		DocType:         rec.DocType,
		Revenue:         docvalue.AmountOf(rec.Data, "grossReceipts", "grossIncome", "revenue"),
		Expenses:        docvalue.AmountOf(rec.Data, "totalExpenses", "expenses", "line28"),
		NetIncome:       docvalue.AmountOf(rec.Data, "netProfit", "netIncome", "line31"),
		Depreciation:    docvalue.AmountOf(rec.Data, "depreciation", "line13"),
		Amortization:    docvalue.AmountOf(rec.Data, "amortization"),
		InterestExpense: docvalue.AmountOf(rec.Data, "interestExpense", "mortgageInterest", "otherInterest"),
		OneTimeItems:    abs(casualty),
	}
}

func (a *Analyzer) extractCorporateReturn(rec domain.ExtractionRecord) domain.BusinessYearEntry {
	ownerComp := docvalue.AmountOf(rec.Data, "officerCompensation", "compensationOfOfficers")
	if doctype.ResolveForm(rec.DocType) == doctype.Form1065 {
		ownerComp += docvalue.AmountOf(rec.Data, "guaranteedPayments")
	}

	// Sign convention: a reported gain reduces adjusted income and a
	// reported loss increases it, so the raw gain/loss is negated.
	gainLoss := docvalue.AmountOf(rec.Data, "netGainLoss", "capitalGainLoss", "gainLoss")

	return domain.BusinessYearEntry{
		Year:            a.year(rec),
		DocType:         rec.DocType,
		Revenue:         docvalue.AmountOf(rec.Data, "grossReceipts", "totalIncome", "revenue"),
		Expenses:        docvalue.AmountOf(rec.Data, "totalDeductions", "totalExpenses"),
		NetIncome:       docvalue.AmountOf(rec.Data, "ordinaryBusinessIncome", "taxableIncome", "netIncome"),
		Depreciation:    docvalue.AmountOf(rec.Data, "depreciation"),
		Amortization:    docvalue.AmountOf(rec.Data, "amortization"),
		InterestExpense: docvalue.AmountOf(rec.Data, "interestExpense"),
		OwnerComp:       ownerComp,
		OneTimeItems:    -gainLoss,
	}
}

func (a *Analyzer) extractProfitLoss(rec domain.ExtractionRecord) domain.BusinessYearEntry {
	// P&L one-time expenses keep their reported sign; the statement
	// already expresses them in the add-back direction.
	return domain.BusinessYearEntry{
		Year:            a.year(rec),
		DocType:         rec.DocType,
		Revenue:         docvalue.AmountOf(rec.Data, "revenue", "totalRevenue", "sales", "totalIncome"),
		Expenses:        docvalue.AmountOf(rec.Data, "totalExpenses", "expenses"),
		NetIncome:       docvalue.AmountOf(rec.Data, "netIncome", "netProfit"),
		Depreciation:    docvalue.AmountOf(rec.Data, "depreciation"),
		Amortization:    docvalue.AmountOf(rec.Data, "amortization"),
		InterestExpense: docvalue.AmountOf(rec.Data, "interestExpense", "interest"),
		OwnerComp:       docvalue.AmountOf(rec.Data, "ownerDraw", "ownerSalary", "ownerCompensation"),
		OneTimeItems:    docvalue.AmountOf(rec.Data, "oneTimeExpenses", "oneTimeItems"),
	}
}

func aggregate(entries []domain.BusinessYearEntry) map[int]domain.BusinessYearTotal {
	byYear := make(map[int]domain.BusinessYearTotal)
	for _, e := range entries {
		total := byYear[e.Year]
		total.Revenue = docvalue.RoundCurrency(total.Revenue + e.Revenue)
		total.Expenses = docvalue.RoundCurrency(total.Expenses + e.Expenses)
		total.NetIncome = docvalue.RoundCurrency(total.NetIncome + e.NetIncome)
		total.Depreciation = docvalue.RoundCurrency(total.Depreciation + e.Depreciation)
		total.Amortization = docvalue.RoundCurrency(total.Amortization + e.Amortization)
		total.InterestExpense = docvalue.RoundCurrency(total.InterestExpense + e.InterestExpense)
		total.OwnerComp = docvalue.RoundCurrency(total.OwnerComp + e.OwnerComp)
		total.OneTimeItems = docvalue.RoundCurrency(total.OneTimeItems + e.OneTimeItems)
		total.Entities++
		byYear[e.Year] = total
	}
	return byYear
}

func classifyTrend(latest, prior float64) (float64, domain.Trend) {
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
	case pct > trendThresholdPct:
		return pct, domain.TrendIncreasing
	case pct < -trendThresholdPct:
		return pct, domain.TrendDeclining
	default:
		return pct, domain.TrendStable
	}
}

func sortedYears(byYear map[int]domain.BusinessYearTotal) []int {
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
