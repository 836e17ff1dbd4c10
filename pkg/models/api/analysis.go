package api

import "time"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Document is one extracted document in an analysis request. DocType is
// free-form; the pipeline normalizes it.
type Document struct {
	DocType string         `json:"doc_type" validate:"required"`
	Year    int            `json:"year,omitempty"`
	Data    map[string]any `json:"data" validate:"required"`
}

type LoanTerms struct {
	Purpose        string  `json:"purpose"`
	Amount         float64 `json:"amount" validate:"gte=0"`
	Rate           float64 `json:"rate" validate:"gte=0,lte=100"`
	TermMonths     int     `json:"term_months" validate:"gte=0"`
	MonthlyPayment float64 `json:"monthly_payment" validate:"gte=0"`
}

type AnalysisRequest struct {
	Documents []Document `json:"documents" validate:"required,min=1,dive"`
	Loan      LoanTerms  `json:"loan"`
}

type RiskFlag struct {
	Severity       Severity `json:"severity"`
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

type Reserves struct {
	Months    float64 `json:"months"`
	Unbounded bool    `json:"unbounded"`
}

type IncomeSource struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	GrossAmount float64 `json:"gross_amount"`
	NetAmount   float64 `json:"net_amount"`
	Year        int     `json:"year"`
	Recurring   bool    `json:"recurring"`
}

type YearIncome struct {
	Gross float64 `json:"gross"`
	Net   float64 `json:"net"`
}

type IncomeAnalysis struct {
	Sources              []IncomeSource     `json:"sources"`
	ByYear               map[int]YearIncome `json:"by_year"`
	LatestYear           int                `json:"latest_year"`
	TrendPct             float64            `json:"trend_pct"`
	Trend                string             `json:"trend"`
	QualifyingIncome     float64            `json:"qualifying_income"`
	QualifyingByCategory map[string]float64 `json:"qualifying_by_category"`
	SelfEmploymentYears  int                `json:"self_employment_years"`
	Notes                []string           `json:"notes,omitempty"`
}

type BusinessAnalysis struct {
	LatestYear        int      `json:"latest_year"`
	RevenueTrendPct   float64  `json:"revenue_trend_pct"`
	RevenueTrend      string   `json:"revenue_trend"`
	ExpenseRatio      float64  `json:"expense_ratio"`
	AddBacks          float64  `json:"add_backs"`
	AdjustedNetIncome float64  `json:"adjusted_net_income"`
	Notes             []string `json:"notes,omitempty"`
}

type LargeDeposit struct {
	Month       string  `json:"month"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type CashflowAnalysis struct {
	MonthsObserved   int            `json:"months_observed"`
	TotalDeposits    float64        `json:"total_deposits"`
	AvgMonthly       float64        `json:"avg_monthly"`
	DepositToIncome  float64        `json:"deposit_to_income"`
	NSFCount         int            `json:"nsf_count"`
	OverdraftCount   int            `json:"overdraft_count"`
	LargeDeposits    []LargeDeposit `json:"large_deposits,omitempty"`
	DepositVariation float64        `json:"deposit_variation"`
	TrendPct         float64        `json:"trend_pct"`
	Trend            string         `json:"trend"`
	Notes            []string       `json:"notes,omitempty"`
}

type LiquidityAnalysis struct {
	BankLiquidAssets  float64  `json:"bank_liquid_assets"`
	BalanceSheetCash  float64  `json:"balance_sheet_cash"`
	TotalLiquidAssets float64  `json:"total_liquid_assets"`
	CurrentRatio      float64  `json:"current_ratio"`
	QuickRatio        float64  `json:"quick_ratio"`
	DebtToEquity      float64  `json:"debt_to_equity"`
	Reserves          Reserves `json:"reserves"`
	Rating            string   `json:"rating"`
	Notes             []string `json:"notes,omitempty"`
}

type DscrAnalysis struct {
	AnnualQualifyingIncome float64  `json:"annual_qualifying_income"`
	ProposedMonthlyPayment float64  `json:"proposed_monthly_payment"`
	AnnualDebtService      float64  `json:"annual_debt_service"`
	DSCR                   float64  `json:"dscr"`
	Rating                 string   `json:"rating"`
	Notes                  []string `json:"notes,omitempty"`
}

type DtiAnalysis struct {
	GrossMonthlyIncome float64  `json:"gross_monthly_income"`
	HousingExpense     float64  `json:"housing_expense"`
	TotalMonthlyDebt   float64  `json:"total_monthly_debt"`
	FrontEndRatio      float64  `json:"front_end_ratio"`
	BackEndRatio       float64  `json:"back_end_ratio"`
	Rating             string   `json:"rating"`
	Notes              []string `json:"notes,omitempty"`
}

type ReportSummary struct {
	QualifyingIncome float64  `json:"qualifying_income"`
	GlobalDSCR       float64  `json:"global_dscr"`
	BackEndDTI       float64  `json:"back_end_dti"`
	Reserves         Reserves `json:"reserves"`
	RiskScore        int      `json:"risk_score"`
	RiskRating       string   `json:"risk_rating"`
}

type AnalysisReport struct {
	Id          string            `json:"id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Summary     ReportSummary     `json:"summary"`
	Income      IncomeAnalysis    `json:"income"`
	Business    *BusinessAnalysis `json:"business,omitempty"`
	Cashflow    CashflowAnalysis  `json:"cashflow"`
	Liquidity   LiquidityAnalysis `json:"liquidity"`
	Dscr        DscrAnalysis      `json:"dscr"`
	Dti         DtiAnalysis       `json:"dti"`
	Flags       []RiskFlag        `json:"flags"`
	RiskScore   int               `json:"risk_score"`
	RiskRating  string            `json:"risk_rating"`
}
