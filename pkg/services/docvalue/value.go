// Package docvalue coerces raw extraction payload values into usable
// numbers. OCR output arrives as numbers, currency strings
// ("$1,234.56"), or parenthesized negatives ("(500)"); anything
// unparsable coerces to zero rather than failing, which is part of the
// external contract.
package docvalue

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount coerces v into a currency amount rounded to 2 decimal places.
func Amount(v any) float64 {
	d, ok := toDecimal(v)
	if !ok {
		return 0
	}
	f, _ := d.Round(2).Float64()
	return f
}

// AmountOf returns the first present key's value from data as an
// amount. Missing keys coerce to zero.
func AmountOf(data map[string]any, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := data[k]; ok {
			return Amount(v)
		}
	}
	return 0
}

// Int coerces v into an integer, truncating fractions.
func Int(v any) int {
	d, ok := toDecimal(v)
	if !ok {
		return 0
	}
	return int(d.IntPart())
}

// IntOf returns the first present key's value from data as an integer.
func IntOf(data map[string]any, keys ...string) int {
	for _, k := range keys {
		if v, ok := data[k]; ok {
			return Int(v)
		}
	}
	return 0
}

// Str returns v as a trimmed string, or "" for non-strings.
func Str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// StrOf returns the first present non-empty string under keys.
func StrOf(data map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := Str(data[k]); s != "" {
			return s
		}
	}
	return ""
}

// MapsOf returns the list of objects under key, tolerating both
// []map[string]any and []any payload shapes.
func MapsOf(data map[string]any, key string) []map[string]any {
	switch list := data[key].(type) {
	case []map[string]any:
		return list
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// RoundCurrency rounds to 2 decimal places.
func RoundCurrency(f float64) float64 {
	out, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return out
}

// RoundRatio rounds ratios and percentages to 4 decimal places.
func RoundRatio(f float64) float64 {
	out, _ := decimal.NewFromFloat(f).Round(4).Float64()
	return out
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		return parseAmountString(n)
	}
	return decimal.Zero, false
}

func parseAmountString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	cleaner := strings.NewReplacer("$", "", ",", "", " ", "", "%", "")
	s = cleaner.Replace(s)
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = s[1:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}
