package risk

import (
	"testing"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func cleanInput() Input {
	return Input{
		Income: domain.IncomeAnalysis{
			Sources: []domain.IncomeSource{
				{Type: domain.IncomeW2, Year: 2024, NetAmount: 90000},
			},
			QualifyingIncome: 90000,
		},
		Liquidity: domain.LiquidityAnalysis{
			Reserves: domain.Reserves{Months: 14},
		},
		Dscr: domain.DscrAnalysis{AnnualQualifyingIncome: 90000, AnnualDebtService: 30000, DSCR: 3.0},
		Dti:  domain.DtiAnalysis{TotalMonthlyDebt: 2500, BackEndRatio: 0.25},
	}
}

func titles(flags []domain.RiskFlag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, f.Title)
	}
	return out
}

func TestDetect_CleanFileRaisesNothing(t *testing.T) {
	d := NewDetector(DefaultSettings())
	assert.Empty(t, d.Detect(cleanInput()))
}

func TestDetect_DscrTiers(t *testing.T) {
	d := NewDetector(DefaultSettings())

	in := cleanInput()
	in.Dscr = domain.DscrAnalysis{AnnualQualifyingIncome: 27000, AnnualDebtService: 30000, DSCR: 0.9}
	flags := d.Detect(in)
	assert.Contains(t, titles(flags), "Debt service coverage below 1.0")

	in.Dscr = domain.DscrAnalysis{AnnualQualifyingIncome: 33000, AnnualDebtService: 30000, DSCR: 1.1}
	flags = d.Detect(in)
	assert.Contains(t, titles(flags), "Thin debt service coverage")
}

func TestDetect_DscrBoundaryUsesUnroundedRatio(t *testing.T) {
	d := NewDetector(DefaultSettings())

	// 74999.4 / 60000 is 1.24999; the reported DSCR field rounds to
	// 1.25 but the flag must still fire.
	in := cleanInput()
	in.Dscr = domain.DscrAnalysis{
		AnnualQualifyingIncome: 74999.4,
		AnnualDebtService:      60000,
		DSCR:                   1.25,
	}
	assert.Contains(t, titles(d.Detect(in)), "Thin debt service coverage")
}

func TestDetect_DscrSkippedWithoutDebtService(t *testing.T) {
	d := NewDetector(DefaultSettings())

	// DSCR stays zero when no debt service exists; that must not read
	// as coverage below 1.0.
	in := cleanInput()
	in.Dscr = domain.DscrAnalysis{AnnualDebtService: 0, DSCR: 0}
	in.Dti.TotalMonthlyDebt = 0
	assert.Empty(t, d.Detect(in))
}

func TestDetect_DtiTiers(t *testing.T) {
	d := NewDetector(DefaultSettings())

	in := cleanInput()
	in.Dti.BackEndRatio = 0.55
	assert.Contains(t, titles(d.Detect(in)), "Back-end DTI above 50%")

	in.Dti.BackEndRatio = 0.46
	assert.Contains(t, titles(d.Detect(in)), "Elevated back-end DTI")
}

func TestDetect_IncomeChecks(t *testing.T) {
	d := NewDetector(DefaultSettings())

	in := cleanInput()
	in.Income.TrendPct = -25
	flags := d.Detect(in)
	assert.Contains(t, titles(flags), "Sharp income decline")

	in.Income.TrendPct = -10
	flags = d.Detect(in)
	assert.Contains(t, titles(flags), "Declining income trend")

	in = cleanInput()
	in.Income.Sources = nil
	flags = d.Detect(in)
	assert.Contains(t, titles(flags), "No income sources identified")
	assert.Equal(t, domain.SeverityHigh, flags[0].Severity)
}

func TestDetect_ShortSelfEmploymentAndFirstYearRental(t *testing.T) {
	d := NewDetector(DefaultSettings())

	in := cleanInput()
	in.Income.SelfEmploymentYears = 1
	in.Income.Sources = append(in.Income.Sources,
		domain.IncomeSource{Type: domain.IncomeRental, Year: 2024, NetAmount: 12000})
	flags := d.Detect(in)
	assert.Contains(t, titles(flags), "Short self-employment history")
	assert.Contains(t, titles(flags), "First-year rental income")

	// Two rental years clears the first-year check.
	in.Income.Sources = append(in.Income.Sources,
		domain.IncomeSource{Type: domain.IncomeRental, Year: 2023, NetAmount: 11000})
	assert.NotContains(t, titles(d.Detect(in)), "First-year rental income")
}

func TestDetect_CashflowChecks(t *testing.T) {
	d := NewDetector(DefaultSettings())

	in := cleanInput()
	in.Cashflow.NSFCount = 5
	assert.Contains(t, titles(d.Detect(in)), "Repeated NSF activity")

	in.Cashflow.NSFCount = 2
	assert.Contains(t, titles(d.Detect(in)), "NSF activity observed")

	in = cleanInput()
	in.Cashflow.LargeDeposits = []domain.LargeDeposit{{Month: "2024-01", Amount: 7500}}
	assert.Contains(t, titles(d.Detect(in)), "Large unexplained deposits")

	in = cleanInput()
	in.Cashflow.DepositToIncome = 1.8
	assert.Contains(t, titles(d.Detect(in)), "Deposits exceed reported income")

	in.Cashflow.DepositToIncome = 0.5
	assert.Contains(t, titles(d.Detect(in)), "Deposits lag reported income")

	in = cleanInput()
	in.Cashflow.DepositVariation = 40
	assert.Contains(t, titles(d.Detect(in)), "Seasonal deposit variation")

	in = cleanInput()
	in.Cashflow.OverdraftCount = 2
	flags := d.Detect(in)
	assert.Contains(t, titles(flags), "Overdraft activity")
	assert.Equal(t, domain.SeverityLow, flags[0].Severity)

	in.Cashflow.OverdraftCount = 5
	flags = d.Detect(in)
	assert.Equal(t, domain.SeverityMedium, flags[0].Severity)
}

func TestDetect_ReservesChecks(t *testing.T) {
	d := NewDetector(DefaultSettings())

	in := cleanInput()
	in.Liquidity.Reserves = domain.Reserves{Months: 2}
	assert.Contains(t, titles(d.Detect(in)), "Insufficient reserves")

	in.Liquidity.Reserves = domain.Reserves{Months: 4}
	assert.Contains(t, titles(d.Detect(in)), "Thin reserves")

	in.Liquidity.Reserves = domain.Reserves{Unbounded: true}
	assert.Empty(t, d.Detect(in))
}

func TestDetect_BalanceSheetIntegrity(t *testing.T) {
	d := NewDetector(DefaultSettings())

	in := cleanInput()
	in.Records = []domain.ExtractionRecord{
		{
			DocType: "balance sheet",
			Data: map[string]any{
				"totalAssets":      100000.0,
				"totalLiabilities": 60000.0,
				"totalEquity":      30000.0,
			},
		},
	}
	flags := d.Detect(in)
	assert.Contains(t, titles(flags), "Balance sheet does not balance")
	assert.Equal(t, "data_integrity", flags[0].Category)

	// Within tolerance passes.
	in.Records[0].Data["totalEquity"] = 40000.0
	assert.Empty(t, d.Detect(in))
}

func TestDetect_BusinessAndLiquidityChecks(t *testing.T) {
	d := NewDetector(DefaultSettings())

	in := cleanInput()
	in.Business = &domain.BusinessAnalysis{
		LatestYear:      2024,
		RevenueTrend:    domain.TrendDeclining,
		RevenueTrendPct: -15,
		ExpenseRatio:    0.9,
		ByYear: map[int]domain.BusinessYearTotal{
			2024: {Entities: 2},
		},
	}
	in.Liquidity.NegativeEquity = true
	in.Liquidity.HasBalanceSheet = true
	in.Liquidity.CurrentRatio = 0.8
	in.Liquidity.MinimumBalance = -50

	got := titles(d.Detect(in))
	assert.Contains(t, got, "Declining business revenue")
	assert.Contains(t, got, "High expense ratio")
	assert.Contains(t, got, "Multiple business entities")
	assert.Contains(t, got, "Negative equity")
	assert.Contains(t, got, "Current ratio below 1.0")
	assert.Contains(t, got, "Negative minimum balance")
}

func TestDetect_SortedBySeverityThenTitle(t *testing.T) {
	d := NewDetector(DefaultSettings())

	in := cleanInput()
	in.Dscr = domain.DscrAnalysis{AnnualQualifyingIncome: 27000, AnnualDebtService: 30000, DSCR: 0.9}
	in.Cashflow.NSFCount = 2
	in.Cashflow.OverdraftCount = 1
	in.Income.TrendPct = -10

	flags := d.Detect(in)
	for i := 1; i < len(flags); i++ {
		prev, cur := flags[i-1], flags[i]
		if prev.Severity.Rank() == cur.Severity.Rank() {
			assert.LessOrEqual(t, prev.Title, cur.Title)
		} else {
			assert.Greater(t, prev.Severity.Rank(), cur.Severity.Rank())
		}
	}
	assert.Equal(t, domain.SeverityHigh, flags[0].Severity)
}

func TestScore_WeightsAndCap(t *testing.T) {
	assert.Equal(t, 0, Score(nil))
	assert.Equal(t, 33, Score([]domain.RiskFlag{
		{Severity: domain.SeverityHigh},
		{Severity: domain.SeverityMedium},
		{Severity: domain.SeverityLow},
	}))

	var many []domain.RiskFlag
	for i := 0; i < 6; i++ {
		many = append(many, domain.RiskFlag{Severity: domain.SeverityHigh})
	}
	assert.Equal(t, 100, Score(many))
}

func TestScore_Monotonic(t *testing.T) {
	flags := []domain.RiskFlag{{Severity: domain.SeverityMedium}}
	withExtra := append([]domain.RiskFlag{{Severity: domain.SeverityLow}}, flags...)
	assert.GreaterOrEqual(t, Score(withExtra), Score(flags))
}

func TestRatingForScore_Bands(t *testing.T) {
	assert.Equal(t, domain.RiskLow, RatingForScore(0))
	assert.Equal(t, domain.RiskLow, RatingForScore(25))
	assert.Equal(t, domain.RiskModerate, RatingForScore(26))
	assert.Equal(t, domain.RiskModerate, RatingForScore(45))
	assert.Equal(t, domain.RiskElevated, RatingForScore(46))
	assert.Equal(t, domain.RiskElevated, RatingForScore(70))
	assert.Equal(t, domain.RiskHigh, RatingForScore(71))
	assert.Equal(t, domain.RiskHigh, RatingForScore(100))
}
