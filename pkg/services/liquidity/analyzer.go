// Package liquidity merges bank-derived and balance-sheet liquidity
// into reserves and solvency ratios. The two signals usually describe
// the same cash, so the merge takes the larger of the two rather than
// their sum.
package liquidity

import (
	"fmt"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/fin-tools/credit-atlas/pkg/services/docvalue"
)

const discrepancyThreshold = 1000.0

type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze computes liquid assets, solvency ratios, and months of
// reserves against the supplied monthly debt service.
func (a *Analyzer) Analyze(statements, balanceSheets []domain.ExtractionRecord, monthlyDebtService float64) domain.LiquidityAnalysis {
	result := domain.LiquidityAnalysis{MonthlyDebtService: monthlyDebtService}

	a.scanStatements(&result, statements)
	a.scanBalanceSheets(&result, balanceSheets)

	result.TotalLiquidAssets = result.BankLiquidAssets
	if result.BalanceSheetCash > result.TotalLiquidAssets {
		result.TotalLiquidAssets = result.BalanceSheetCash
	}
	if gap := abs(result.BankLiquidAssets - result.BalanceSheetCash); result.HasBalanceSheet && gap > discrepancyThreshold {
		result.Notes = append(result.Notes, fmt.Sprintf(
			"bank balances (%.2f) and balance-sheet cash (%.2f) disagree by %.2f; using the larger figure",
			result.BankLiquidAssets, result.BalanceSheetCash, gap))
	}

	a.reserves(&result)
	return result
}

// scanStatements takes the most recent ending balance per account so
// overlapping statements for one account are not double counted, and
// tracks average daily and minimum balances across all statements.
func (a *Analyzer) scanStatements(result *domain.LiquidityAnalysis, statements []domain.ExtractionRecord) {
	type accountBalance struct {
		month   string
		balance float64
	}
	latestPerAccount := make(map[string]accountBalance)

	var avgSum float64
	var avgCount int
	minSeen := false

	for i, stmt := range statements {
		account := docvalue.StrOf(stmt.Data, "accountNumber", "accountId", "account")
		if account == "" {
			account = fmt.Sprintf("statement-%d", i+1)
		}
		month, _ := docvalue.MonthKey(docvalue.StrOf(stmt.Data, "period", "statementDate", "month"))

		ending := docvalue.AmountOf(stmt.Data, "endingBalance", "closingBalance")
		current, seen := latestPerAccount[account]
		// YYYY-MM keys sort lexically; a missing month loses to any
		// dated statement.
		if !seen || month >= current.month {
			latestPerAccount[account] = accountBalance{month: month, balance: ending}
		}

		if avg := docvalue.AmountOf(stmt.Data, "averageBalance", "avgDailyBalance", "averageDailyBalance"); avg != 0 {
			avgSum += avg
			avgCount++
		}
		if raw, ok := firstPresent(stmt.Data, "minimumBalance", "lowestBalance", "minBalance"); ok {
			low := docvalue.Amount(raw)
			if !minSeen || low < result.MinimumBalance {
				result.MinimumBalance = low
				minSeen = true
			}
		}
	}

	for _, ab := range latestPerAccount {
		result.BankLiquidAssets = docvalue.RoundCurrency(result.BankLiquidAssets + ab.balance)
	}
	if avgCount > 0 {
		result.AvgDailyBalance = docvalue.RoundCurrency(avgSum / float64(avgCount))
	}
}

func (a *Analyzer) scanBalanceSheets(result *domain.LiquidityAnalysis, balanceSheets []domain.ExtractionRecord) {
	if len(balanceSheets) == 0 {
		return
	}
	result.HasBalanceSheet = true

	var cash, currentAssets, currentLiabilities, inventory, totalLiabilities, totalEquity float64
	for _, bs := range balanceSheets {
		cash += docvalue.AmountOf(bs.Data, "cash", "cashAndEquivalents", "cashEquivalents")
		currentAssets += docvalue.AmountOf(bs.Data, "currentAssets", "totalCurrentAssets")
		currentLiabilities += docvalue.AmountOf(bs.Data, "currentLiabilities", "totalCurrentLiabilities")
		inventory += docvalue.AmountOf(bs.Data, "inventory")
		totalLiabilities += docvalue.AmountOf(bs.Data, "totalLiabilities", "liabilities")
		totalEquity += docvalue.AmountOf(bs.Data, "totalEquity", "equity", "ownersEquity")
	}
	result.BalanceSheetCash = docvalue.RoundCurrency(cash)

	if currentLiabilities > 0 {
		result.CurrentRatio = docvalue.RoundRatio(currentAssets / currentLiabilities)
		result.QuickRatio = docvalue.RoundRatio((currentAssets - inventory) / currentLiabilities)
	}
	// Debt-to-equity stays computed for negative equity; insolvency is
	// a signal to surface, not suppress.
	if totalEquity != 0 {
		result.DebtToEquity = docvalue.RoundRatio(totalLiabilities / totalEquity)
	}
	if totalEquity < 0 {
		result.NegativeEquity = true
		result.Notes = append(result.Notes, fmt.Sprintf("negative equity of %.2f on the balance sheet", totalEquity))
	}
}

func (a *Analyzer) reserves(result *domain.LiquidityAnalysis) {
	switch {
	case result.MonthlyDebtService > 0:
		result.Reserves = domain.Reserves{
			Months: docvalue.RoundRatio(result.TotalLiquidAssets / result.MonthlyDebtService),
		}
	case result.TotalLiquidAssets > 0:
		result.Reserves = domain.Reserves{Unbounded: true}
		result.Notes = append(result.Notes, "no monthly debt service; reserves are effectively unlimited")
	}

	switch {
	case result.Reserves.Unbounded || result.Reserves.Months >= 12:
		result.Rating = domain.LiquidityStrong
	case result.Reserves.Months >= 6:
		result.Rating = domain.LiquidityAdequate
	case result.Reserves.Months >= 3:
		result.Rating = domain.LiquidityWeak
	default:
		result.Rating = domain.LiquidityInsufficient
	}
}

func firstPresent(data map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := data[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
