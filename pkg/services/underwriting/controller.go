// Package underwriting runs the full analysis sequence over a set of
// extracted documents and assembles the report. Each analyzer is pure,
// so the output depends only on the documents, the loan terms, and the
// settings.
package underwriting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/fin-tools/credit-atlas/pkg/services/business"
	"github.com/fin-tools/credit-atlas/pkg/services/cashflow"
	"github.com/fin-tools/credit-atlas/pkg/services/debt"
	"github.com/fin-tools/credit-atlas/pkg/services/doctype"
	"github.com/fin-tools/credit-atlas/pkg/services/income"
	"github.com/fin-tools/credit-atlas/pkg/services/liquidity"
	"github.com/fin-tools/credit-atlas/pkg/services/risk"
)

var ErrNoDocuments = errors.New("no documents supplied")

type Controller interface {
	Analyze(ctx context.Context, records []domain.ExtractionRecord, loan domain.LoanTerms) (*domain.FullAnalysisReport, error)
}

type DefaultController struct {
	settings Settings

	income    *income.Analyzer
	business  *business.Analyzer
	cashflow  *cashflow.Analyzer
	liquidity *liquidity.Analyzer
	detector  *risk.Detector
}

func NewController(settings Settings) *DefaultController {
	return &DefaultController{
		settings:  settings,
		income:    income.NewAnalyzer(settings.ReferenceYear),
		business:  business.NewAnalyzer(settings.ReferenceYear),
		cashflow:  cashflow.NewAnalyzer(),
		liquidity: liquidity.NewAnalyzer(),
		detector:  risk.NewDetector(settings.Risk),
	}
}

func (ctrl *DefaultController) Analyze(ctx context.Context, records []domain.ExtractionRecord, loan domain.LoanTerms) (*domain.FullAnalysisReport, error) {
	logger := zerolog.Ctx(ctx)
	if len(records) == 0 {
		return nil, ErrNoDocuments
	}

	docs := doctype.Classify(records)
	logger.Debug().
		Int("tax_forms", len(docs.TaxForms)).
		Int("bank_statements", len(docs.BankStatements)).
		Int("balance_sheets", len(docs.BalanceSheets)).
		Int("other", len(docs.Other)).
		Msg("documents classified")

	// Unclassified documents still get an income pass; a generic record
	// with an income field should not vanish from the analysis.
	incomeRecords := append(append([]domain.ExtractionRecord{}, docs.TaxForms...), docs.Other...)
	incomeResult := ctrl.income.Analyze(incomeRecords)

	// The classifier files profit and loss statements under tax forms
	// as well, so a single pass over tax forms covers both.
	businessResult := ctrl.business.Analyze(docs.TaxForms)

	payments := debt.MergePayments(docs.BankStatements)
	proposedMonthly := debt.MonthlyPayment(loan)

	cashflowResult := ctrl.cashflow.Analyze(docs.BankStatements, incomeResult.QualifyingIncome)
	dscrResult := debt.CalculateDSCR(incomeResult.QualifyingIncome, payments, proposedMonthly)
	dtiResult := debt.CalculateDTI(incomeResult.QualifyingIncome, payments, loan, proposedMonthly)

	monthlyDebtService := dtiResult.TotalMonthlyDebt
	if monthlyDebtService == 0 {
		monthlyDebtService = proposedMonthly
	}
	liquidityResult := ctrl.liquidity.Analyze(docs.BankStatements, docs.BalanceSheets, monthlyDebtService)

	flags := ctrl.detector.Detect(risk.Input{
		Income:    incomeResult,
		Business:  businessResult,
		Cashflow:  cashflowResult,
		Liquidity: liquidityResult,
		Dscr:      dscrResult,
		Dti:       dtiResult,
		// The full record list, not just classified balance sheets: a
		// mislabeled balance sheet must not escape the integrity check.
		Records: records,
	})
	score := risk.Score(flags)
	rating := risk.RatingForScore(score)

	report := &domain.FullAnalysisReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Income:      incomeResult,
		Business:    businessResult,
		Cashflow:    cashflowResult,
		Liquidity:   liquidityResult,
		Dscr:        dscrResult,
		Dti:         dtiResult,
		Flags:       flags,
		RiskScore:   score,
		RiskRating:  rating,
		Summary: domain.ReportSummary{
			QualifyingIncome: incomeResult.QualifyingIncome,
			GlobalDSCR:       dscrResult.DSCR,
			BackEndDTI:       dtiResult.BackEndRatio,
			Reserves:         liquidityResult.Reserves,
			RiskScore:        score,
			RiskRating:       rating,
		},
	}

	logger.Info().
		Str("report_id", report.ID).
		Float64("qualifying_income", report.Summary.QualifyingIncome).
		Int("risk_score", score).
		Str("risk_rating", string(rating)).
		Msg("analysis complete")

	return report, nil
}
