package domain

type IncomeSourceType string

const (
	IncomeW2             IncomeSourceType = "w2"
	IncomeSelfEmployment IncomeSourceType = "self_employment"
	IncomeRental         IncomeSourceType = "rental"
	IncomePartnership    IncomeSourceType = "partnership"
	IncomeSCorp          IncomeSourceType = "scorp"
	IncomeInterest       IncomeSourceType = "interest"
	IncomeDividends      IncomeSourceType = "dividends"
	IncomeSocialSecurity IncomeSourceType = "social_security"
	IncomePension        IncomeSourceType = "pension"
	IncomeOther          IncomeSourceType = "other"
)

// IncomeSource is a single document-derived income item. One document
// may yield zero, one, or many sources.
type IncomeSource struct {
	Type        IncomeSourceType
	Description string
	GrossAmount float64
	NetAmount   float64
	Year        int
	Recurring   bool
}

// YearIncome holds per-year aggregated income.
type YearIncome struct {
	Gross float64
	Net   float64
}

// IncomeAnalysis is the income analyzer result.
type IncomeAnalysis struct {
	Sources    []IncomeSource
	ByYear     map[int]YearIncome
	LatestYear int

	// TrendPct is the latest-vs-prior net change in percent, rounded
	// to 4 decimal places.
	TrendPct float64
	Trend    Trend

	// QualifyingIncome is the annual underwriting figure, assembled
	// from per-category averaging rules rather than a raw aggregate.
	QualifyingIncome     float64
	QualifyingByCategory map[string]float64

	SelfEmploymentYears int

	Notes []string
}
