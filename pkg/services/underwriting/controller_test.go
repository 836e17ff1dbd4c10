package underwriting

import (
	"context"
	"testing"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_NoDocuments(t *testing.T) {
	ctrl := NewController(DefaultSettings())
	_, err := ctrl.Analyze(context.Background(), nil, domain.LoanTerms{})
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestAnalyze_CleanW2File(t *testing.T) {
	settings := DefaultSettings()
	settings.ReferenceYear = 2025
	ctrl := NewController(settings)

	records := []domain.ExtractionRecord{
		{
			DocType: "W-2",
			Year:    2024,
			Data:    map[string]any{"wages": 90000.0, "employer": "Acme LLC"},
		},
		{
			DocType: "bank statement",
			Data: map[string]any{
				"accountNumber": "1111",
				"period":        "2024-03",
				"endingBalance": 60000.0,
				"transactions": []any{
					map[string]any{"date": "2024-03-05", "amount": 7500.0, "description": "ACME PAYROLL", "type": "deposit"},
				},
			},
		},
	}
	loan := domain.LoanTerms{Purpose: "purchase", Amount: 300000, Rate: 6.0, TermMonths: 360}

	report, err := ctrl.Analyze(context.Background(), records, loan)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, 90000.0, report.Summary.QualifyingIncome)
	assert.Nil(t, report.Business)
	assert.InDelta(t, 1798.65, report.Dscr.ProposedMonthlyPayment, 0.01)
	assert.Greater(t, report.Dscr.DSCR, 1.0)
	assert.Equal(t, domain.RiskLow, report.RiskRating)
	assert.Equal(t, report.RiskScore, report.Summary.RiskScore)
}

func TestAnalyze_TroubledFileRaisesFlags(t *testing.T) {
	settings := DefaultSettings()
	settings.ReferenceYear = 2025
	ctrl := NewController(settings)

	records := []domain.ExtractionRecord{
		{
			DocType: "Schedule C",
			Year:    2023,
			Data:    map[string]any{"grossReceipts": 120000.0, "netProfit": 80000.0},
		},
		{
			DocType: "Schedule C",
			Year:    2024,
			Data:    map[string]any{"grossReceipts": 90000.0, "netProfit": 40000.0},
		},
		{
			DocType: "bank statement",
			Data: map[string]any{
				"accountNumber": "1111",
				"period":        "2024-03",
				"endingBalance": 1500.0,
				"transactions": []any{
					map[string]any{"date": "2024-03-03", "amount": -35.0, "description": "NSF FEE"},
					map[string]any{"date": "2024-03-07", "amount": -35.0, "description": "NSF returned item"},
					map[string]any{"date": "2024-03-10", "amount": 6000.0, "description": "wire transfer", "type": "deposit"},
				},
				"recurringPayments": []any{
					map[string]any{"description": "Wells Mortgage", "amount": 2200.0, "frequency": "monthly"},
					map[string]any{"description": "Honda Auto Loan", "amount": 600.0, "frequency": "monthly"},
				},
			},
		},
	}
	loan := domain.LoanTerms{Purpose: "purchase", Amount: 400000, Rate: 7.0, TermMonths: 360}

	report, err := ctrl.Analyze(context.Background(), records, loan)
	require.NoError(t, err)

	// Declining self-employment income floors at the latest year.
	assert.Equal(t, 40000.0, report.Summary.QualifyingIncome)
	assert.NotNil(t, report.Business)
	assert.NotEmpty(t, report.Flags)
	assert.Greater(t, report.RiskScore, 45)

	// Flag ordering is severity descending.
	for i := 1; i < len(report.Flags); i++ {
		assert.GreaterOrEqual(t, report.Flags[i-1].Severity.Rank(), report.Flags[i].Severity.Rank())
	}
}

func TestAnalyze_MislabeledBalanceSheetStillChecked(t *testing.T) {
	settings := DefaultSettings()
	settings.ReferenceYear = 2025
	ctrl := NewController(settings)

	records := []domain.ExtractionRecord{
		{DocType: "W-2", Year: 2024, Data: map[string]any{"wages": 90000.0, "employer": "Acme LLC"}},
		{
			// Unrecognized label lands in the Other bucket but the
			// imbalanced totals must still raise the integrity flag.
			DocType: "financial statement",
			Data: map[string]any{
				"totalAssets":      100000.0,
				"totalLiabilities": 60000.0,
				"totalEquity":      30000.0,
			},
		},
	}

	report, err := ctrl.Analyze(context.Background(), records, domain.LoanTerms{})
	require.NoError(t, err)

	found := false
	for _, f := range report.Flags {
		if f.Title == "Balance sheet does not balance" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyze_Deterministic(t *testing.T) {
	settings := DefaultSettings()
	settings.ReferenceYear = 2025
	ctrl := NewController(settings)

	records := []domain.ExtractionRecord{
		{DocType: "W-2", Year: 2024, Data: map[string]any{"wages": 85000.0, "employer": "Acme LLC"}},
		{DocType: "Schedule C", Year: 2024, Data: map[string]any{"grossReceipts": 50000.0, "netProfit": 20000.0}},
	}
	loan := domain.LoanTerms{Purpose: "purchase", Amount: 250000, Rate: 6.5, TermMonths: 360}

	first, err := ctrl.Analyze(context.Background(), records, loan)
	require.NoError(t, err)
	second, err := ctrl.Analyze(context.Background(), records, loan)
	require.NoError(t, err)

	assert.Equal(t, first.Summary.QualifyingIncome, second.Summary.QualifyingIncome)
	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, first.Flags, second.Flags)
	assert.Equal(t, first.Dti, second.Dti)
}
