package docvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthKey(t *testing.T) {
	cases := map[string]string{
		"2024-03-15":     "2024-03",
		"03/15/2024":     "2024-03",
		"3/5/2024":       "2024-03",
		"January 2024":   "2024-01",
		"Jan 2024":       "2024-01",
		"March 15, 2024": "2024-03",
		"2024-03":        "2024-03",
	}
	for raw, want := range cases {
		got, ok := MonthKey(raw)
		assert.True(t, ok, "expected %q to parse", raw)
		assert.Equal(t, want, got)
	}
}

func TestMonthKey_Unparsable(t *testing.T) {
	for _, raw := range []string{"", "not a date", "13/45/2024"} {
		_, ok := MonthKey(raw)
		assert.False(t, ok, "expected %q to fail", raw)
	}
}
