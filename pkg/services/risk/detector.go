// Package risk runs the fixed battery of underwriting threshold checks
// and reduces the triggered flags to a single capped score. Each check
// is stateless and order-independent; the output list is sorted by
// severity then title so callers get reproducible ordering.
package risk

import (
	"fmt"
	"sort"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/fin-tools/credit-atlas/pkg/services/docvalue"
)

// Settings carries every detection threshold. Defaults encode the
// standard policy; a settings file may tighten or loosen them.
type Settings struct {
	DscrFloor           float64 `mapstructure:"dscr_floor"`
	DscrCaution         float64 `mapstructure:"dscr_caution"`
	BackEndDtiHigh      float64 `mapstructure:"back_end_dti_high"`
	BackEndDtiCaution   float64 `mapstructure:"back_end_dti_caution"`
	NsfHighCount        int     `mapstructure:"nsf_high_count"`
	IncomeDeclineHigh   float64 `mapstructure:"income_decline_high"`
	IncomeDeclineLow    float64 `mapstructure:"income_decline_low"`
	ReservesHighMonths  float64 `mapstructure:"reserves_high_months"`
	ReservesMedMonths   float64 `mapstructure:"reserves_med_months"`
	BalanceTolerancePct float64 `mapstructure:"balance_tolerance_pct"`
	ExpenseRatioHigh    float64 `mapstructure:"expense_ratio_high"`
	DepositIncomeHigh   float64 `mapstructure:"deposit_income_high"`
	DepositIncomeLow    float64 `mapstructure:"deposit_income_low"`
	DepositVariationPct float64 `mapstructure:"deposit_variation_pct"`
	OverdraftHighCount  int     `mapstructure:"overdraft_high_count"`
	CurrentRatioFloor   float64 `mapstructure:"current_ratio_floor"`
}

func DefaultSettings() Settings {
	return Settings{
		DscrFloor:           1.0,
		DscrCaution:         1.25,
		BackEndDtiHigh:      0.50,
		BackEndDtiCaution:   0.43,
		NsfHighCount:        3,
		IncomeDeclineHigh:   -20,
		IncomeDeclineLow:    -5,
		ReservesHighMonths:  3,
		ReservesMedMonths:   6,
		BalanceTolerancePct: 0.1,
		ExpenseRatioHigh:    0.85,
		DepositIncomeHigh:   1.5,
		DepositIncomeLow:    0.7,
		DepositVariationPct: 35,
		OverdraftHighCount:  3,
		CurrentRatioFloor:   1.0,
	}
}

// Input bundles every analyzer output the battery inspects, plus the
// raw extraction records for data-integrity checks.
type Input struct {
	Income    domain.IncomeAnalysis
	Business  *domain.BusinessAnalysis
	Cashflow  domain.CashflowAnalysis
	Liquidity domain.LiquidityAnalysis
	Dscr      domain.DscrAnalysis
	Dti       domain.DtiAnalysis
	Records   []domain.ExtractionRecord
}

type Detector struct {
	settings Settings
}

func NewDetector(settings Settings) *Detector {
	return &Detector{settings: settings}
}

// Detect runs the battery and returns the sorted flag list.
func (d *Detector) Detect(in Input) []domain.RiskFlag {
	var flags []domain.RiskFlag
	add := func(f domain.RiskFlag) { flags = append(flags, f) }

	d.checkDscr(in, add)
	d.checkDti(in, add)
	d.checkCashflow(in, add)
	d.checkIncome(in, add)
	d.checkReserves(in, add)
	d.checkBalanceSheets(in, add)
	d.checkBusiness(in, add)
	d.checkLiquidity(in, add)

	sort.Slice(flags, func(i, j int) bool {
		if flags[i].Severity.Rank() != flags[j].Severity.Rank() {
			return flags[i].Severity.Rank() > flags[j].Severity.Rank()
		}
		return flags[i].Title < flags[j].Title
	})
	return flags
}

func (d *Detector) checkDscr(in Input, add func(domain.RiskFlag)) {
	if in.Dscr.AnnualDebtService == 0 {
		return
	}
	// Recomputed unrounded: the reported DSCR field is rounded to four
	// decimals and a value just under a threshold must not escape here.
	ratio := in.Dscr.AnnualQualifyingIncome / in.Dscr.AnnualDebtService
	switch {
	case ratio < d.settings.DscrFloor:
		add(domain.RiskFlag{
			Severity:       domain.SeverityHigh,
			Category:       "debt_service",
			Title:          "Debt service coverage below 1.0",
			Description:    fmt.Sprintf("DSCR of %.4f means qualifying income does not cover total debt service", in.Dscr.DSCR),
			Recommendation: "Decline or restructure; income does not support the proposed obligation",
		})
	case ratio < d.settings.DscrCaution:
		add(domain.RiskFlag{
			Severity:       domain.SeverityMedium,
			Category:       "debt_service",
			Title:          "Thin debt service coverage",
			Description:    fmt.Sprintf("DSCR of %.4f leaves little cushion above break-even", in.Dscr.DSCR),
			Recommendation: "Verify income stability and consider additional reserves",
		})
	}
}

func (d *Detector) checkDti(in Input, add func(domain.RiskFlag)) {
	if in.Dti.TotalMonthlyDebt == 0 {
		return
	}
	switch {
	case in.Dti.BackEndRatio > d.settings.BackEndDtiHigh:
		add(domain.RiskFlag{
			Severity:       domain.SeverityHigh,
			Category:       "debt_to_income",
			Title:          "Back-end DTI above 50%",
			Description:    fmt.Sprintf("back-end DTI of %.1f%% exceeds the maximum band", in.Dti.BackEndRatio*100),
			Recommendation: "Require debt paydown or a larger down payment",
		})
	case in.Dti.BackEndRatio > d.settings.BackEndDtiCaution:
		add(domain.RiskFlag{
			Severity:       domain.SeverityMedium,
			Category:       "debt_to_income",
			Title:          "Elevated back-end DTI",
			Description:    fmt.Sprintf("back-end DTI of %.1f%% is above the conforming guideline", in.Dti.BackEndRatio*100),
			Recommendation: "Document compensating factors",
		})
	}
}

func (d *Detector) checkCashflow(in Input, add func(domain.RiskFlag)) {
	cf := in.Cashflow
	switch {
	case cf.NSFCount > d.settings.NsfHighCount:
		add(domain.RiskFlag{
			Severity:       domain.SeverityHigh,
			Category:       "cash_flow",
			Title:          "Repeated NSF activity",
			Description:    fmt.Sprintf("%d NSF events across the statement period", cf.NSFCount),
			Recommendation: "Obtain a written explanation and recent clean statements",
		})
	case cf.NSFCount >= 1:
		add(domain.RiskFlag{
			Severity:       domain.SeverityMedium,
			Category:       "cash_flow",
			Title:          "NSF activity observed",
			Description:    fmt.Sprintf("%d NSF event(s) across the statement period", cf.NSFCount),
			Recommendation: "Review the circumstances with the applicant",
		})
	}

	if count := len(cf.LargeDeposits); count > 0 {
		add(domain.RiskFlag{
			Severity:       domain.SeverityMedium,
			Category:       "cash_flow",
			Title:          "Large unexplained deposits",
			Description:    fmt.Sprintf("%d non-payroll deposit(s) of $5,000 or more", count),
			Recommendation: "Source and season each large deposit",
		})
	}

	if cf.DepositToIncome > d.settings.DepositIncomeHigh {
		add(domain.RiskFlag{
			Severity:       domain.SeverityMedium,
			Category:       "cash_flow",
			Title:          "Deposits exceed reported income",
			Description:    fmt.Sprintf("deposits annualize to %.2fx reported income", cf.DepositToIncome),
			Recommendation: "Reconcile deposits against declared income sources",
		})
	} else if cf.DepositToIncome > 0 && cf.DepositToIncome < d.settings.DepositIncomeLow {
		add(domain.RiskFlag{
			Severity:       domain.SeverityMedium,
			Category:       "cash_flow",
			Title:          "Deposits lag reported income",
			Description:    fmt.Sprintf("deposits annualize to %.2fx reported income; income may be deposited elsewhere", cf.DepositToIncome),
			Recommendation: "Request statements for all deposit accounts",
		})
	}

	if cf.DepositVariation > d.settings.DepositVariationPct {
		add(domain.RiskFlag{
			Severity:       domain.SeverityLow,
			Category:       "cash_flow",
			Title:          "Seasonal deposit variation",
			Description:    fmt.Sprintf("monthly deposit variation of %.1f%% suggests seasonal or irregular income", cf.DepositVariation),
			Recommendation: "Average over a longer statement history",
		})
	}

	if cf.OverdraftCount > 0 {
		severity := domain.SeverityLow
		if cf.OverdraftCount > d.settings.OverdraftHighCount {
			severity = domain.SeverityMedium
		}
		add(domain.RiskFlag{
			Severity:       severity,
			Category:       "cash_flow",
			Title:          "Overdraft activity",
			Description:    fmt.Sprintf("%d overdraft event(s) across the statement period", cf.OverdraftCount),
			Recommendation: "Review account management practices",
		})
	}
}

func (d *Detector) checkIncome(in Input, add func(domain.RiskFlag)) {
	inc := in.Income

	if len(inc.Sources) == 0 {
		add(domain.RiskFlag{
			Severity:       domain.SeverityHigh,
			Category:       "income",
			Title:          "No income sources identified",
			Description:    "no document yielded a usable income figure",
			Recommendation: "Obtain tax returns or pay statements before proceeding",
		})
		return
	}

	switch {
	case inc.TrendPct < d.settings.IncomeDeclineHigh:
		add(domain.RiskFlag{
			Severity:       domain.SeverityHigh,
			Category:       "income",
			Title:          "Sharp income decline",
			Description:    fmt.Sprintf("net income fell %.1f%% year over year", inc.TrendPct),
			Recommendation: "Underwrite to the declining figure and document the cause",
		})
	case inc.TrendPct < d.settings.IncomeDeclineLow:
		add(domain.RiskFlag{
			Severity:       domain.SeverityLow,
			Category:       "income",
			Title:          "Declining income trend",
			Description:    fmt.Sprintf("net income fell %.1f%% year over year", inc.TrendPct),
			Recommendation: "Confirm the decline is not accelerating",
		})
	}

	if inc.SelfEmploymentYears > 0 && inc.SelfEmploymentYears < 2 {
		add(domain.RiskFlag{
			Severity:       domain.SeverityLow,
			Category:       "income",
			Title:          "Short self-employment history",
			Description:    fmt.Sprintf("only %d year(s) of self-employment income documented", inc.SelfEmploymentYears),
			Recommendation: "Request prior-year returns or business licenses",
		})
	}

	if firstYearRental(inc.Sources) {
		add(domain.RiskFlag{
			Severity:       domain.SeverityLow,
			Category:       "income",
			Title:          "First-year rental income",
			Description:    "rental income appears in a single year only",
			Recommendation: "Discount rental income or require a lease history",
		})
	}
}

func (d *Detector) checkReserves(in Input, add func(domain.RiskFlag)) {
	res := in.Liquidity.Reserves
	if res.Unbounded {
		return
	}
	switch {
	case res.Months < d.settings.ReservesHighMonths:
		add(domain.RiskFlag{
			Severity:       domain.SeverityHigh,
			Category:       "liquidity",
			Title:          "Insufficient reserves",
			Description:    fmt.Sprintf("%.1f months of reserves against the proposed debt service", res.Months),
			Recommendation: "Require additional liquid assets at closing",
		})
	case res.Months < d.settings.ReservesMedMonths:
		add(domain.RiskFlag{
			Severity:       domain.SeverityMedium,
			Category:       "liquidity",
			Title:          "Thin reserves",
			Description:    fmt.Sprintf("%.1f months of reserves against the proposed debt service", res.Months),
			Recommendation: "Verify no undisclosed obligations draw on the same funds",
		})
	}
}

// checkBalanceSheets verifies assets = liabilities + equity on each
// supplied balance sheet within a tolerance proportional to assets.
func (d *Detector) checkBalanceSheets(in Input, add func(domain.RiskFlag)) {
	for _, rec := range in.Records {
		assets := docvalue.AmountOf(rec.Data, "totalAssets", "assets")
		liabilities := docvalue.AmountOf(rec.Data, "totalLiabilities", "liabilities")
		equity := docvalue.AmountOf(rec.Data, "totalEquity", "equity", "ownersEquity")
		if assets == 0 {
			continue
		}
		gap := abs(assets - (liabilities + equity))
		if gap > assets*d.settings.BalanceTolerancePct/100 {
			add(domain.RiskFlag{
				Severity:       domain.SeverityHigh,
				Category:       "data_integrity",
				Title:          "Balance sheet does not balance",
				Description:    fmt.Sprintf("assets %.2f vs liabilities+equity %.2f (gap %.2f)", assets, liabilities+equity, gap),
				Recommendation: "Re-extract or request a corrected statement",
			})
		}
	}
}

func (d *Detector) checkBusiness(in Input, add func(domain.RiskFlag)) {
	biz := in.Business
	if biz == nil {
		return
	}

	if biz.RevenueTrend == domain.TrendDeclining {
		add(domain.RiskFlag{
			Severity:       domain.SeverityMedium,
			Category:       "business",
			Title:          "Declining business revenue",
			Description:    fmt.Sprintf("revenue fell %.1f%% year over year", biz.RevenueTrendPct),
			Recommendation: "Review pipeline and year-to-date interim statements",
		})
	}

	if biz.ExpenseRatio > d.settings.ExpenseRatioHigh {
		add(domain.RiskFlag{
			Severity:       domain.SeverityMedium,
			Category:       "business",
			Title:          "High expense ratio",
			Description:    fmt.Sprintf("expenses consume %.1f%% of revenue", biz.ExpenseRatio*100),
			Recommendation: "Confirm the margin structure is sustainable",
		})
	}

	if total, ok := biz.ByYear[biz.LatestYear]; ok && total.Entities > 1 {
		add(domain.RiskFlag{
			Severity:       domain.SeverityLow,
			Category:       "business",
			Title:          "Multiple business entities",
			Description:    fmt.Sprintf("%d entities reported for %d", total.Entities, biz.LatestYear),
			Recommendation: "Verify inter-entity transactions are not double counted",
		})
	}
}

func (d *Detector) checkLiquidity(in Input, add func(domain.RiskFlag)) {
	liq := in.Liquidity

	if liq.NegativeEquity {
		add(domain.RiskFlag{
			Severity:       domain.SeverityHigh,
			Category:       "liquidity",
			Title:          "Negative equity",
			Description:    "balance-sheet liabilities exceed total assets",
			Recommendation: "Treat the business as insolvent for credit purposes",
		})
	}

	if liq.HasBalanceSheet && liq.CurrentRatio > 0 && liq.CurrentRatio < d.settings.CurrentRatioFloor {
		add(domain.RiskFlag{
			Severity:       domain.SeverityMedium,
			Category:       "liquidity",
			Title:          "Current ratio below 1.0",
			Description:    fmt.Sprintf("current ratio of %.4f; short-term obligations exceed short-term assets", liq.CurrentRatio),
			Recommendation: "Assess working-capital needs before funding",
		})
	}

	if liq.MinimumBalance < 0 {
		add(domain.RiskFlag{
			Severity:       domain.SeverityLow,
			Category:       "liquidity",
			Title:          "Negative minimum balance",
			Description:    fmt.Sprintf("lowest observed balance was %.2f", liq.MinimumBalance),
			Recommendation: "Check for recurring end-of-cycle shortfalls",
		})
	}
}

func firstYearRental(sources []domain.IncomeSource) bool {
	years := make(map[int]bool)
	for _, src := range sources {
		if src.Type == domain.IncomeRental {
			years[src.Year] = true
		}
	}
	return len(years) == 1
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
