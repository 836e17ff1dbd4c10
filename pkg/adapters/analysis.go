package adapters

import (
	"github.com/fin-tools/credit-atlas/pkg/models/api"
	"github.com/fin-tools/credit-atlas/pkg/models/domain"
)

// MapRequestToRecords converts an API analysis request into the domain
// extraction records the pipeline consumes.
func MapRequestToRecords(req api.AnalysisRequest) []domain.ExtractionRecord {
	records := make([]domain.ExtractionRecord, 0, len(req.Documents))
	for _, doc := range req.Documents {
		records = append(records, domain.ExtractionRecord{
			DocType: doc.DocType,
			Data:    doc.Data,
			Year:    doc.Year,
		})
	}
	return records
}

func MapLoanTermsToDomain(loan api.LoanTerms) domain.LoanTerms {
	return domain.LoanTerms{
		Purpose:        loan.Purpose,
		Amount:         loan.Amount,
		Rate:           loan.Rate,
		TermMonths:     loan.TermMonths,
		MonthlyPayment: loan.MonthlyPayment,
	}
}

// MapReportToApi converts a domain analysis report to its API shape.
func MapReportToApi(report *domain.FullAnalysisReport) *api.AnalysisReport {
	if report == nil {
		return nil
	}
	return &api.AnalysisReport{
		Id:          report.ID,
		GeneratedAt: report.GeneratedAt,
		Summary:     mapSummary(report.Summary),
		Income:      mapIncome(report.Income),
		Business:    mapBusiness(report.Business),
		Cashflow:    mapCashflow(report.Cashflow),
		Liquidity:   mapLiquidity(report.Liquidity),
		Dscr:        mapDscr(report.Dscr),
		Dti:         mapDti(report.Dti),
		Flags:       mapFlags(report.Flags),
		RiskScore:   report.RiskScore,
		RiskRating:  string(report.RiskRating),
	}
}

func mapSummary(s domain.ReportSummary) api.ReportSummary {
	return api.ReportSummary{
		QualifyingIncome: s.QualifyingIncome,
		GlobalDSCR:       s.GlobalDSCR,
		BackEndDTI:       s.BackEndDTI,
		Reserves:         api.Reserves{Months: s.Reserves.Months, Unbounded: s.Reserves.Unbounded},
		RiskScore:        s.RiskScore,
		RiskRating:       string(s.RiskRating),
	}
}

func mapIncome(in domain.IncomeAnalysis) api.IncomeAnalysis {
	sources := make([]api.IncomeSource, 0, len(in.Sources))
	for _, src := range in.Sources {
		sources = append(sources, api.IncomeSource{
			Type:        string(src.Type),
			Description: src.Description,
			GrossAmount: src.GrossAmount,
			NetAmount:   src.NetAmount,
			Year:        src.Year,
			Recurring:   src.Recurring,
		})
	}
	byYear := make(map[int]api.YearIncome, len(in.ByYear))
	for year, yi := range in.ByYear {
		byYear[year] = api.YearIncome{Gross: yi.Gross, Net: yi.Net}
	}
	return api.IncomeAnalysis{
		Sources:              sources,
		ByYear:               byYear,
		LatestYear:           in.LatestYear,
		TrendPct:             in.TrendPct,
		Trend:                string(in.Trend),
		QualifyingIncome:     in.QualifyingIncome,
		QualifyingByCategory: in.QualifyingByCategory,
		SelfEmploymentYears:  in.SelfEmploymentYears,
		Notes:                in.Notes,
	}
}

func mapBusiness(in *domain.BusinessAnalysis) *api.BusinessAnalysis {
	if in == nil {
		return nil
	}
	return &api.BusinessAnalysis{
		LatestYear:        in.LatestYear,
		RevenueTrendPct:   in.RevenueTrendPct,
		RevenueTrend:      string(in.RevenueTrend),
		ExpenseRatio:      in.ExpenseRatio,
		AddBacks:          in.AddBacks,
		AdjustedNetIncome: in.AdjustedNetIncome,
		Notes:             in.Notes,
	}
}

func mapCashflow(in domain.CashflowAnalysis) api.CashflowAnalysis {
	deposits := make([]api.LargeDeposit, 0, len(in.LargeDeposits))
	for _, d := range in.LargeDeposits {
		deposits = append(deposits, api.LargeDeposit{Month: d.Month, Description: d.Description, Amount: d.Amount})
	}
	return api.CashflowAnalysis{
		MonthsObserved:   in.MonthsObserved,
		TotalDeposits:    in.TotalDeposits,
		AvgMonthly:       in.AvgMonthly,
		DepositToIncome:  in.DepositToIncome,
		NSFCount:         in.NSFCount,
		OverdraftCount:   in.OverdraftCount,
		LargeDeposits:    deposits,
		DepositVariation: in.DepositVariation,
		TrendPct:         in.TrendPct,
		Trend:            string(in.Trend),
		Notes:            in.Notes,
	}
}

func mapLiquidity(in domain.LiquidityAnalysis) api.LiquidityAnalysis {
	return api.LiquidityAnalysis{
		BankLiquidAssets:  in.BankLiquidAssets,
		BalanceSheetCash:  in.BalanceSheetCash,
		TotalLiquidAssets: in.TotalLiquidAssets,
		CurrentRatio:      in.CurrentRatio,
		QuickRatio:        in.QuickRatio,
		DebtToEquity:      in.DebtToEquity,
		Reserves:          api.Reserves{Months: in.Reserves.Months, Unbounded: in.Reserves.Unbounded},
		Rating:            string(in.Rating),
		Notes:             in.Notes,
	}
}

func mapDscr(in domain.DscrAnalysis) api.DscrAnalysis {
	return api.DscrAnalysis{
		AnnualQualifyingIncome: in.AnnualQualifyingIncome,
		ProposedMonthlyPayment: in.ProposedMonthlyPayment,
		AnnualDebtService:      in.AnnualDebtService,
		DSCR:                   in.DSCR,
		Rating:                 string(in.Rating),
		Notes:                  in.Notes,
	}
}

func mapDti(in domain.DtiAnalysis) api.DtiAnalysis {
	return api.DtiAnalysis{
		GrossMonthlyIncome: in.GrossMonthlyIncome,
		HousingExpense:     in.HousingExpense,
		TotalMonthlyDebt:   in.TotalMonthlyDebt,
		FrontEndRatio:      in.FrontEndRatio,
		BackEndRatio:       in.BackEndRatio,
		Rating:             string(in.Rating),
		Notes:              in.Notes,
	}
}

func mapFlags(flags []domain.RiskFlag) []api.RiskFlag {
	out := make([]api.RiskFlag, 0, len(flags))
	for _, f := range flags {
		out = append(out, api.RiskFlag{
			Severity:       api.Severity(f.Severity),
			Category:       f.Category,
			Title:          f.Title,
			Description:    f.Description,
			Recommendation: f.Recommendation,
		})
	}
	return out
}
