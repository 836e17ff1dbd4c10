package domain

// Reserves expresses months of reserves. Unbounded marks the case of
// positive liquid assets with zero monthly debt service, where the
// division is undefined rather than infinite.
type Reserves struct {
	Months    float64
	Unbounded bool
}

type LiquidityRating string

const (
	LiquidityStrong       LiquidityRating = "strong"
	LiquidityAdequate     LiquidityRating = "adequate"
	LiquidityWeak         LiquidityRating = "weak"
	LiquidityInsufficient LiquidityRating = "insufficient"
)

// LiquidityAnalysis merges bank-derived and balance-sheet liquidity.
type LiquidityAnalysis struct {
	BankLiquidAssets float64
	BalanceSheetCash float64

	// TotalLiquidAssets is the maximum of the two signals above, not
	// their sum; the same cash usually backs both.
	TotalLiquidAssets float64

	AvgDailyBalance float64
	MinimumBalance  float64

	HasBalanceSheet bool
	CurrentRatio    float64
	QuickRatio      float64
	DebtToEquity    float64
	NegativeEquity  bool

	MonthlyDebtService float64
	Reserves           Reserves
	Rating             LiquidityRating

	Notes []string
}
