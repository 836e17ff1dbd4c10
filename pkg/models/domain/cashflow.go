package domain

// LargeDeposit is a non-payroll deposit at or above the large-deposit
// threshold, kept for underwriter review.
type LargeDeposit struct {
	Month       string
	Description string
	Amount      float64
}

// CashflowAnalysis is the bank-statement cash-flow result.
type CashflowAnalysis struct {
	// MonthlyDeposits keys are YYYY-MM.
	MonthlyDeposits map[string]float64
	MonthsObserved  int
	TotalDeposits   float64
	AvgMonthly      float64

	// DepositToIncome is annualized average deposits over reported
	// income, rounded to 4 decimal places. Zero when income is zero.
	DepositToIncome float64

	NSFCount       int
	OverdraftCount int
	LargeDeposits  []LargeDeposit

	// DepositVariation is the coefficient of variation of the monthly
	// deposit series, in percent.
	DepositVariation float64

	TrendPct float64
	Trend    Trend

	Notes []string
}
