package core

import (
	"testing"
	"time"
)

// demoLedger mirrors the sample data used by the demo seed: one kids sale on
// 2025-12-28 and a men's plus a women's sale on 2025-12-29.
func demoLedger(t *testing.T) *Ledger {
	t.Helper()
	ledger := NewLedger(DefaultCostTable())
	add := func(ts time.Time, c Category, color string, qty int, price string) {
		t.Helper()
		if _, err := ledger.AddSale(ts, c, color, qty, dec(price)); err != nil {
			t.Fatalf("seed %s: %v", c, err)
		}
	}
	add(time.Date(2025, 12, 28, 9, 0, 0, 0, time.Local), CategoryNino, "azul", 4, "25")
	add(time.Date(2025, 12, 29, 10, 15, 0, 0, time.Local), CategoryHombre, "negro", 3, "40")
	add(time.Date(2025, 12, 29, 12, 30, 0, 0, time.Local), CategoryMujer, "rojo", 2, "28")
	return ledger
}

func TestSummarizeByDay(t *testing.T) {
	ledger := demoLedger(t)
	day := time.Date(2025, 12, 29, 0, 0, 0, 0, time.Local)

	s := SummarizeByDay(ledger.Records(), day)
	if !s.TotalRevenue.Equal(dec("176")) {
		t.Fatalf("revenue = %s, want 176", s.TotalRevenue)
	}
	// hombre 15 profit, mujer 56-60 = -4.
	if !s.AccumulatedProfit.Equal(dec("11")) {
		t.Fatalf("profit = %s, want 11", s.AccumulatedProfit)
	}
	if s.MostProfitable != CategoryHombre {
		t.Fatalf("most profitable = %q, want hombre", s.MostProfitable)
	}
	if len(s.ProfitByCategory) != 2 {
		t.Fatalf("profit by category has %d entries, want 2", len(s.ProfitByCategory))
	}
	if !s.ProfitByCategory[CategoryMujer].Equal(dec("-4")) {
		t.Fatalf("mujer profit = %s, want -4", s.ProfitByCategory[CategoryMujer])
	}

	// Revenue over the filtered subset must equal the sum of per-record totals.
	sum := dec("0")
	for _, r := range ledger.Records() {
		if sameDate(r.Timestamp, day) {
			sum = sum.Add(r.Total)
		}
	}
	if !sum.Round(2).Equal(s.TotalRevenue) {
		t.Fatalf("revenue %s != per-record sum %s", s.TotalRevenue, sum)
	}
}

func TestSummarizeEmptyWindow(t *testing.T) {
	for _, s := range []Summary{
		SummarizeByDay(nil, time.Now()),
		SummarizeByWeek(nil, 2025, 10),
		SummarizeByDay(demoLedger(t).Records(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)),
	} {
		if !s.TotalRevenue.IsZero() || !s.AccumulatedProfit.IsZero() {
			t.Fatalf("empty window must be zero valued: %+v", s)
		}
		if s.MostProfitable != "" {
			t.Fatalf("empty window must have no most profitable category")
		}
		if len(s.ProfitByCategory) != 0 {
			t.Fatalf("empty window must have empty category map")
		}
	}
}

func TestSummarizeByWeekISOBoundary(t *testing.T) {
	// 2025-12-29 is a Monday and belongs to ISO week 1 of ISO year 2026.
	ledger := demoLedger(t)

	in := SummarizeByWeek(ledger.Records(), 2026, 1)
	if !in.TotalRevenue.Equal(dec("176")) {
		t.Fatalf("week (2026,1) revenue = %s, want 176", in.TotalRevenue)
	}

	out := SummarizeByWeek(ledger.Records(), 2025, 52)
	// Only the 2025-12-28 (Sunday, week 52) kids sale remains.
	if !out.TotalRevenue.Equal(dec("100")) {
		t.Fatalf("week (2025,52) revenue = %s, want 100", out.TotalRevenue)
	}
	if out.MostProfitable != CategoryNino {
		t.Fatalf("week (2025,52) most profitable = %q, want niño", out.MostProfitable)
	}
}

func TestMostProfitableTieBreak(t *testing.T) {
	ledger := NewLedger(DefaultCostTable())
	ts := time.Date(2025, 6, 2, 12, 0, 0, 0, time.Local)
	// Both categories end the day with profit 10: mujer 2*(35-30), hombre 45-35.
	if _, err := ledger.AddSale(ts, CategoryMujer, "rojo", 2, dec("35")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := ledger.AddSale(ts, CategoryHombre, "gris", 1, dec("45")); err != nil {
		t.Fatalf("add: %v", err)
	}

	s := SummarizeByDay(ledger.Records(), ts)
	if s.MostProfitable != CategoryHombre {
		t.Fatalf("tie must resolve to lexically first category, got %q", s.MostProfitable)
	}
}
