package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	fixed := func() time.Time {
		return time.Date(2025, 12, 30, 14, 0, 42, 999, time.Local)
	}

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-12-29", time.Date(2025, 12, 29, 0, 0, 0, 0, time.Local)},
		{"2025-12-29 10:15", time.Date(2025, 12, 29, 10, 15, 0, 0, time.Local)},
		{"2025-12-29 10:15:30", time.Date(2025, 12, 29, 10, 15, 30, 0, time.Local)},
		{"now", time.Date(2025, 12, 30, 14, 0, 42, 0, time.Local)},
		{"NOW", time.Date(2025, 12, 30, 14, 0, 42, 0, time.Local)},
		{"", time.Date(2025, 12, 30, 14, 0, 42, 0, time.Local)},
	}
	for i, tc := range cases {
		got, err := ParseTimestamp(tc.in, fixed)
		if err != nil {
			t.Fatalf("case %d (%q): %v", i, tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("case %d (%q): got %v, want %v", i, tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"bad-input", "29-12-2025", "2025-12-29T10:15:00Z", "2025-13-01"} {
		if _, err := ParseTimestamp(in, fixed); !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("%q: err = %v, want ErrInvalidDateFormat", in, err)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 12, 29, 10, 15, 0, 0, time.Local)
	if got := FormatTimestamp(ts); got != "2025-12-29 10:15:00" {
		t.Fatalf("got %q", got)
	}
}
