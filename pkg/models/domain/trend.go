package domain

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDeclining  Trend = "declining"
	TrendStable     Trend = "stable"
)
