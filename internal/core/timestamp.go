package core

import (
	"strings"
	"time"
)

// TimestampLayout is the canonical format used wherever a record timestamp
// is persisted or exported.
const TimestampLayout = "2006-01-02 15:04:05"

// Accepted input layouts, tried in order; the first successful parse wins.
var timestampLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a sale timestamp. The literal "now" (any case) and
// the empty string mean the current time; a bare date defaults the time to
// midnight. Timestamps are timezone-naive local wall-clock values.
func ParseTimestamp(s string, now func() time.Time) (time.Time, error) {
	if now == nil {
		now = time.Now
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "now") {
		return now().Truncate(time.Second), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}

// FormatTimestamp renders a timestamp in the canonical layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
