package docvalue

import (
	"fmt"
	"time"
)

// Transaction dates arrive in whatever shape the statement OCR
// produced. ISO, US, and "Month YYYY" layouts are all accepted.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"January 2006",
	"Jan 2006",
	"January 2, 2006",
	"2006-01",
}

// MonthKey derives a YYYY-MM bucket key from a raw date string. The
// second return is false when no supported layout matches; callers
// skip such rows instead of aborting.
func MonthKey(raw string) (string, bool) {
	t, ok := ParseDate(raw)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())), true
}

// ParseDate parses raw against the supported statement date layouts.
func ParseDate(raw string) (time.Time, bool) {
	raw = Str(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
