package docvalue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount_NumericTypes(t *testing.T) {
	assert.Equal(t, 1234.56, Amount(1234.56))
	assert.Equal(t, 1234.0, Amount(1234))
	assert.Equal(t, 1234.0, Amount(int64(1234)))
	assert.Equal(t, 1234.5, Amount(json.Number("1234.5")))
}

func TestAmount_CurrencyStrings(t *testing.T) {
	assert.Equal(t, 1234.56, Amount("$1,234.56"))
	assert.Equal(t, 1234.56, Amount(" 1,234.56 "))
	assert.Equal(t, -500.0, Amount("(500)"))
	assert.Equal(t, -500.0, Amount("($500.00)"))
	assert.Equal(t, -500.0, Amount("-500"))
	assert.Equal(t, 85.0, Amount("85%"))
}

func TestAmount_Unparsable(t *testing.T) {
	assert.Equal(t, 0.0, Amount("N/A"))
	assert.Equal(t, 0.0, Amount(""))
	assert.Equal(t, 0.0, Amount(nil))
	assert.Equal(t, 0.0, Amount([]string{"x"}))
}

func TestAmountOf_KeyPreference(t *testing.T) {
	data := map[string]any{"netProfit": "$80,000", "netIncome": 75000}
	assert.Equal(t, 80000.0, AmountOf(data, "netProfit", "netIncome"))
	assert.Equal(t, 75000.0, AmountOf(data, "missing", "netIncome"))
	assert.Equal(t, 0.0, AmountOf(data, "missing"))
}

func TestInt(t *testing.T) {
	assert.Equal(t, 2024, Int("2024"))
	assert.Equal(t, 2024, Int(2024.0))
	assert.Equal(t, 0, Int("n/a"))
}

func TestStrOf(t *testing.T) {
	data := map[string]any{"employer": "Acme LLC", "count": 3}
	assert.Equal(t, "Acme LLC", StrOf(data, "employer"))
	assert.Equal(t, "", StrOf(data, "count", "missing"))
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 0.3, RoundCurrency(0.1+0.2))
	assert.Equal(t, 1234.57, RoundCurrency(1234.565))
	assert.Equal(t, -1234.57, RoundCurrency(-1234.565))
}

func TestRoundRatio(t *testing.T) {
	assert.Equal(t, 1.2346, RoundRatio(1.23456))
	assert.Equal(t, 0.3333, RoundRatio(1.0/3.0))
}

func TestMapsOf(t *testing.T) {
	data := map[string]any{
		"transactions": []any{
			map[string]any{"amount": 100},
			"not a map",
			map[string]any{"amount": 200},
		},
	}
	maps := MapsOf(data, "transactions")
	assert.Len(t, maps, 2)
	assert.Equal(t, 100, maps[0]["amount"])

	assert.Empty(t, MapsOf(data, "missing"))
	assert.Empty(t, MapsOf(map[string]any{"transactions": "nope"}, "transactions"))
}
