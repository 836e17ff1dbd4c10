package domain

import "time"

// ReportSummary is the top-level verdict an underwriter reads first.
type ReportSummary struct {
	QualifyingIncome float64
	GlobalDSCR       float64
	BackEndDTI       float64
	Reserves         Reserves
	RiskScore        int
	RiskRating       RiskRating
}

// FullAnalysisReport aggregates every analyzer result for one
// applicant. It is constructed once per run and never mutated.
type FullAnalysisReport struct {
	ID          string
	GeneratedAt time.Time

	Income    IncomeAnalysis
	Business  *BusinessAnalysis // nil when no business documents were supplied
	Cashflow  CashflowAnalysis
	Liquidity LiquidityAnalysis
	Dscr      DscrAnalysis
	Dti       DtiAnalysis

	// Flags are sorted by severity (high first) then title; callers
	// may rely on this ordering.
	Flags      []RiskFlag
	RiskScore  int
	RiskRating RiskRating

	Summary ReportSummary
}
