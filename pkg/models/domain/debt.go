package domain

type PaymentFrequency string

const (
	FrequencyWeekly     PaymentFrequency = "weekly"
	FrequencyBiweekly   PaymentFrequency = "biweekly"
	FrequencySemimonth  PaymentFrequency = "semimonthly"
	FrequencyMonthly    PaymentFrequency = "monthly"
	FrequencyQuarterly  PaymentFrequency = "quarterly"
	FrequencySemiannual PaymentFrequency = "semiannual"
	FrequencyAnnual     PaymentFrequency = "annual"
)

// RecurringPayment is a bank-detected recurring obligation normalized
// to a monthly cash amount.
type RecurringPayment struct {
	Description string
	Category    string
	Amount      float64
	Frequency   PaymentFrequency
	Monthly     float64
	Housing     bool
	Debt        bool
}

// LoanTerms describes the proposed loan. Rate is the annual rate in
// percent (6.5 means 6.5%/yr). MonthlyPayment, when zero, is derived
// from the other terms via the standard amortization formula.
type LoanTerms struct {
	Purpose        string
	Amount         float64
	Rate           float64
	TermMonths     int
	MonthlyPayment float64
}

type DscrRating string

const (
	DscrStrong       DscrRating = "strong"
	DscrGood         DscrRating = "good"
	DscrAdequate     DscrRating = "adequate"
	DscrInsufficient DscrRating = "insufficient"
)

// DscrAnalysis is the global debt-service-coverage result.
type DscrAnalysis struct {
	AnnualQualifyingIncome float64
	ProposedMonthlyPayment float64
	AnnualDebtService      float64
	DSCR                   float64
	Rating                 DscrRating
	Notes                  []string
}

type DtiRating string

const (
	DtiExcellent  DtiRating = "excellent"
	DtiGood       DtiRating = "good"
	DtiAcceptable DtiRating = "acceptable"
	DtiHigh       DtiRating = "high"
	DtiExcessive  DtiRating = "excessive"
)

// DtiAnalysis is the debt-to-income result. Ratios are fractions
// rounded to 4 decimal places (0.28 == 28%).
type DtiAnalysis struct {
	GrossMonthlyIncome float64
	HousingExpense     float64
	TotalMonthlyDebt   float64
	FrontEndRatio      float64
	BackEndRatio       float64
	HousingDetected    bool
	Rating             DtiRating
	Payments           []RecurringPayment
	Notes              []string
}
