package business

import (
	"testing"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func scheduleC(year int, data map[string]any) domain.ExtractionRecord {
	return domain.ExtractionRecord{DocType: "Schedule C", Year: year, Data: data}
}

func TestAnalyze_NoBusinessDocuments(t *testing.T) {
	a := NewAnalyzer(2025)
	assert.Nil(t, a.Analyze(nil))
	assert.Nil(t, a.Analyze([]domain.ExtractionRecord{
		{DocType: "W-2", Year: 2024, Data: map[string]any{"wages": 90000.0}},
	}))
}

func TestAnalyze_ScheduleCAddBacks(t *testing.T) {
	a := NewAnalyzer(2025)
	result := a.Analyze([]domain.ExtractionRecord{
		scheduleC(2024, map[string]any{
			"grossReceipts": 200000.0,
			"totalExpenses": 140000.0,
			"netProfit":     60000.0,
			"depreciation":  10000.0,
			"amortization":  2000.0,
			"casualtyLoss":  -3000.0,
		}),
	})

	assert.NotNil(t, result)
	assert.Equal(t, 2024, result.LatestYear)
	// Casualty losses add back as a positive regardless of reported sign.
	assert.Equal(t, 15000.0, result.AddBacks)
	assert.Equal(t, 75000.0, result.AdjustedNetIncome)
	assert.Equal(t, 0.7, result.ExpenseRatio)
	assert.False(t, result.HighExpenseRatio)
}

func TestAnalyze_CorporateReturnGainReducesAddBacks(t *testing.T) {
	a := NewAnalyzer(2025)
	result := a.Analyze([]domain.ExtractionRecord{
		{
			DocType: "1065",
			Year:    2024,
			Data: map[string]any{
				"grossReceipts":          500000.0,
				"totalDeductions":        430000.0,
				"ordinaryBusinessIncome": 70000.0,
				"officerCompensation":    40000.0,
				"guaranteedPayments":     20000.0,
				"netGainLoss":            5000.0,
			},
		},
	})

	assert.NotNil(t, result)
	// 40000 officer comp + 20000 guaranteed payments - 5000 gain.
	assert.Equal(t, 55000.0, result.AddBacks)
	assert.Equal(t, 125000.0, result.AdjustedNetIncome)
}

func TestAnalyze_RevenueTrend(t *testing.T) {
	a := NewAnalyzer(2025)
	result := a.Analyze([]domain.ExtractionRecord{
		scheduleC(2023, map[string]any{"grossReceipts": 200000.0, "netProfit": 50000.0}),
		scheduleC(2024, map[string]any{"grossReceipts": 150000.0, "netProfit": 40000.0}),
	})

	assert.NotNil(t, result)
	assert.Equal(t, domain.TrendDeclining, result.RevenueTrend)
	assert.Equal(t, -25.0, result.RevenueTrendPct)
}

func TestAnalyze_HighExpenseRatioNote(t *testing.T) {
	a := NewAnalyzer(2025)
	result := a.Analyze([]domain.ExtractionRecord{
		scheduleC(2024, map[string]any{
			"grossReceipts": 100000.0,
			"totalExpenses": 92000.0,
			"netProfit":     8000.0,
		}),
	})

	assert.NotNil(t, result)
	assert.True(t, result.HighExpenseRatio)
	assert.NotEmpty(t, result.Notes)
}

func TestAnalyze_MultipleEntitiesAggregated(t *testing.T) {
	a := NewAnalyzer(2025)
	result := a.Analyze([]domain.ExtractionRecord{
		scheduleC(2024, map[string]any{"grossReceipts": 100000.0, "netProfit": 30000.0}),
		{
			DocType: "P&L",
			Year:    2024,
			Data:    map[string]any{"revenue": 80000.0, "netIncome": 20000.0, "ownerDraw": 10000.0},
		},
	})

	assert.NotNil(t, result)
	total := result.ByYear[2024]
	assert.Equal(t, 2, total.Entities)
	assert.Equal(t, 180000.0, total.Revenue)
	assert.Equal(t, 50000.0, total.NetIncome)
	assert.Len(t, result.Notes, 1)
}

func TestAnalyze_MissingYearFallsBackToReference(t *testing.T) {
	a := NewAnalyzer(2025)
	result := a.Analyze([]domain.ExtractionRecord{
		scheduleC(0, map[string]any{"grossReceipts": 100000.0, "netProfit": 30000.0}),
	})

	assert.NotNil(t, result)
	assert.Equal(t, 2025, result.LatestYear)
}
