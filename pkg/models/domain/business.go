package domain

// BusinessYearEntry holds one document's business financials for a
// single tax year. Multiple entries may share a year (multiple
// entities) and are summed during aggregation.
type BusinessYearEntry struct {
	Year            int
	DocType         string
	Revenue         float64
	Expenses        float64
	NetIncome       float64
	Depreciation    float64
	Amortization    float64
	InterestExpense float64
	OwnerComp       float64
	OneTimeItems    float64
}

// BusinessYearTotal is the per-year sum across entities.
type BusinessYearTotal struct {
	Revenue         float64
	Expenses        float64
	NetIncome       float64
	Depreciation    float64
	Amortization    float64
	InterestExpense float64
	OwnerComp       float64
	OneTimeItems    float64
	Entities        int
}

// BusinessAnalysis is the business analyzer result. The orchestrator
// carries a nil pointer when no business documents were supplied.
type BusinessAnalysis struct {
	Entries    []BusinessYearEntry
	ByYear     map[int]BusinessYearTotal
	LatestYear int

	RevenueTrendPct float64
	RevenueTrend    Trend

	// ExpenseRatio is latest-year expenses over revenue, rounded to
	// 4 decimal places.
	ExpenseRatio     float64
	HighExpenseRatio bool

	// Add-backs and adjusted net income are reported for the latest
	// year only.
	AddBacks          float64
	AdjustedNetIncome float64

	Notes []string
}
