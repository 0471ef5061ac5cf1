package core

import (
	"strconv"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// ParseDay parses a day specifier for a daily summary. The empty string
// means "today".
func ParseDay(s string, now func() time.Time) (time.Time, error) {
	if now == nil {
		now = time.Now
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return now(), nil
	}
	d, err := time.ParseInLocation(dayLayout, trimmed, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidWindow
	}
	return d, nil
}

// ParseWeek parses a weekly summary specifier: either "YYYY-WW" or a plain
// date, in which case the date's own ISO week is used.
func ParseWeek(s string) (isoYear, isoWeek int, err error) {
	trimmed := strings.TrimSpace(s)

	if parts := strings.Split(trimmed, "-"); len(parts) == 2 && len(parts[1]) == 2 {
		y, yerr := strconv.Atoi(parts[0])
		w, werr := strconv.Atoi(parts[1])
		if yerr != nil || werr != nil || w < 1 || w > 53 {
			return 0, 0, ErrInvalidWindow
		}
		return y, w, nil
	}

	d, derr := time.ParseInLocation(dayLayout, trimmed, time.Local)
	if derr != nil {
		return 0, 0, ErrInvalidWindow
	}
	isoYear, isoWeek = d.ISOWeek()
	return isoYear, isoWeek, nil
}
