// Package cashflow builds a monthly deposit series from bank
// statements and scores cash-flow behavior: NSF/overdraft events,
// large non-payroll deposits, deposit-to-income fit, and trend.
package cashflow

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/fin-tools/credit-atlas/pkg/services/docvalue"
)

const (
	largeDepositThreshold = 5000.0

	// Deposit-to-income bands outside which a note is raised.
	depositIncomeHigh = 1.5
	depositIncomeLow  = 0.7

	halfTrendThresholdPct  = 5.0
	shortTrendThresholdPct = 10.0
)

type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scans the bank-statement records. annualIncome is the
// reported qualifying income used for the deposit-to-income ratio.
func (a *Analyzer) Analyze(statements []domain.ExtractionRecord, annualIncome float64) domain.CashflowAnalysis {
	result := domain.CashflowAnalysis{
		MonthlyDeposits: make(map[string]float64),
	}

	for _, stmt := range statements {
		transactions := docvalue.MapsOf(stmt.Data, "transactions")
		if len(transactions) > 0 {
			a.scanTransactions(&result, transactions)
			continue
		}
		a.scanSummary(&result, stmt)
	}

	months := sortedMonths(result.MonthlyDeposits)
	result.MonthsObserved = len(months)
	for _, m := range months {
		result.TotalDeposits = docvalue.RoundCurrency(result.TotalDeposits + result.MonthlyDeposits[m])
	}
	if result.MonthsObserved > 0 {
		result.AvgMonthly = docvalue.RoundCurrency(result.TotalDeposits / float64(result.MonthsObserved))
	}

	if annualIncome > 0 && result.AvgMonthly > 0 {
		result.DepositToIncome = docvalue.RoundRatio(result.AvgMonthly * 12 / annualIncome)
		switch {
		case result.DepositToIncome > depositIncomeHigh:
			result.Notes = append(result.Notes,
				fmt.Sprintf("deposits run %.2fx reported income; possible unreported income", result.DepositToIncome))
		case result.DepositToIncome < depositIncomeLow:
			result.Notes = append(result.Notes,
				fmt.Sprintf("deposits run %.2fx reported income; income may be deposited elsewhere", result.DepositToIncome))
		}
	}

	result.DepositVariation = variationPct(result.MonthlyDeposits, months)
	// Synthetic statement buckets have no calendar position; the trend
	// comparison runs over dated months only.
	result.TrendPct, result.Trend = depositTrend(result.MonthlyDeposits, datedMonths(months))

	if result.NSFCount > 0 {
		result.Notes = append(result.Notes, fmt.Sprintf("%d NSF event(s) observed", result.NSFCount))
	}
	return result
}

func (a *Analyzer) scanTransactions(result *domain.CashflowAnalysis, transactions []map[string]any) {
	for _, tx := range transactions {
		desc := docvalue.StrOf(tx, "description", "memo")
		txType := strings.ToLower(docvalue.StrOf(tx, "type"))
		amount := docvalue.AmountOf(tx, "amount")

		switch {
		case isNSF(desc, txType):
			result.NSFCount++
			continue
		case isOverdraft(desc, txType):
			result.OverdraftCount++
			continue
		}

		if amount <= 0 || !isDepositType(txType) {
			continue
		}

		month, ok := docvalue.MonthKey(docvalue.StrOf(tx, "date", "postedDate"))
		if !ok {
			// Unparsable date: the deposit is dropped from the
			// monthly series, never aborts the analysis.
			continue
		}
		result.MonthlyDeposits[month] = docvalue.RoundCurrency(result.MonthlyDeposits[month] + amount)

		if amount >= largeDepositThreshold && !isPayroll(desc) {
			result.LargeDeposits = append(result.LargeDeposits, domain.LargeDeposit{
				Month:       month,
				Description: desc,
				Amount:      amount,
			})
		}
	}
}

// scanSummary falls back to statement-level summary fields when no
// transaction detail was extracted.
func (a *Analyzer) scanSummary(result *domain.CashflowAnalysis, stmt domain.ExtractionRecord) {
	result.NSFCount += docvalue.IntOf(stmt.Data, "nsfCount", "nsfOccurrences")
	result.OverdraftCount += docvalue.IntOf(stmt.Data, "overdraftCount", "overdraftOccurrences")

	deposits := docvalue.AmountOf(stmt.Data, "totalDeposits", "depositTotal")
	if deposits == 0 {
		return
	}
	month, ok := docvalue.MonthKey(docvalue.StrOf(stmt.Data, "period", "statementDate", "month"))
	if !ok {
		month = fmt.Sprintf("statement-%d", len(result.MonthlyDeposits)+1)
	}
	result.MonthlyDeposits[month] = docvalue.RoundCurrency(result.MonthlyDeposits[month] + deposits)
}

var nsfMarkers = []string{"nsf", "non-sufficient", "nonsufficient", "insufficient funds", "returned item"}

func isNSF(desc, txType string) bool {
	if txType == "nsf" {
		return true
	}
	d := strings.ToLower(desc)
	for _, marker := range nsfMarkers {
		if strings.Contains(d, marker) {
			return true
		}
	}
	return false
}

func isOverdraft(desc, txType string) bool {
	if txType == "overdraft" {
		return true
	}
	d := strings.ToLower(desc)
	return strings.Contains(d, "overdraft") || strings.Contains(d, "od fee")
}

func isDepositType(txType string) bool {
	switch txType {
	case "", "deposit", "credit", "ach credit", "wire in":
		return true
	}
	return false
}

var payrollMarkers = []string{"payroll", "direct dep", "dir dep", "salary", "wages", "paycheck"}

func isPayroll(desc string) bool {
	d := strings.ToLower(desc)
	for _, marker := range payrollMarkers {
		if strings.Contains(d, marker) {
			return true
		}
	}
	return false
}

// depositTrend compares first-half and second-half averages with four
// or more months of data; with two or three months it falls back to a
// first-vs-last comparison at a looser threshold.
func depositTrend(deposits map[string]float64, months []string) (float64, domain.Trend) {
	switch {
	case len(months) >= 4:
		half := len(months) / 2
		first := average(deposits, months[:half])
		second := average(deposits, months[len(months)-half:])
		return classify(second, first, halfTrendThresholdPct)
	case len(months) >= 2:
		first := deposits[months[0]]
		last := deposits[months[len(months)-1]]
		return classify(last, first, shortTrendThresholdPct)
	default:
		return 0, domain.TrendStable
	}
}

func classify(latest, prior, thresholdPct float64) (float64, domain.Trend) {
	var pct float64
	switch {
	case prior == 0 && latest > 0:
		pct = 100
	case prior == 0:
		pct = 0
	default:
		pct = docvalue.RoundRatio((latest - prior) / math.Abs(prior) * 100)
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

func average(deposits map[string]float64, months []string) float64 {
	if len(months) == 0 {
		return 0
	}
	var total float64
	for _, m := range months {
		total += deposits[m]
	}
	return total / float64(len(months))
}

// variationPct is the coefficient of variation of the monthly series,
// in percent; it feeds the seasonal-variation risk check.
func variationPct(deposits map[string]float64, months []string) float64 {
	if len(months) < 2 {
		return 0
	}
	mean := average(deposits, months)
	if mean == 0 {
		return 0
	}
	var sumSq float64
	for _, m := range months {
		d := deposits[m] - mean
		sumSq += d * d
	}
	stddev := math.Sqrt(sumSq / float64(len(months)))
	return docvalue.RoundRatio(stddev / mean * 100)
}

func datedMonths(months []string) []string {
	dated := make([]string, 0, len(months))
	for _, m := range months {
		if strings.HasPrefix(m, "statement-") {
			continue
		}
		dated = append(dated, m)
	}
	return dated
}

func sortedMonths(deposits map[string]float64) []string {
	months := make([]string, 0, len(deposits))
	for m := range deposits {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}
