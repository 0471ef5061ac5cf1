package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Summary is a derived, non-persisted aggregate over a filtered subset of
// the ledger. It is recomputed on demand and never cached here.
type Summary struct {
	TotalRevenue      decimal.Decimal
	AccumulatedProfit decimal.Decimal
	// MostProfitable is empty when no record matched the window.
	MostProfitable   Category
	ProfitByCategory map[Category]decimal.Decimal
}

// SummarizeByDay aggregates the records whose calendar date equals day.
// The comparison is on local wall-clock dates, without timezone conversion.
func SummarizeByDay(records []SaleRecord, day time.Time) Summary {
	return summarize(records, func(ts time.Time) bool {
		return sameDate(ts, day)
	})
}

// SummarizeByWeek aggregates the records belonging to the given ISO-8601
// week-numbering (year, week) pair. The ISO year can differ from the
// calendar year at year boundaries, so the filter never looks at ts.Year().
func SummarizeByWeek(records []SaleRecord, isoYear, isoWeek int) Summary {
	return summarize(records, func(ts time.Time) bool {
		y, w := ts.ISOWeek()
		return y == isoYear && w == isoWeek
	})
}

func summarize(records []SaleRecord, match func(time.Time) bool) Summary {
	revenue := decimal.Zero
	profit := decimal.Zero
	byCategory := make(map[Category]decimal.Decimal)

	for _, r := range records {
		if !match(r.Timestamp) {
			continue
		}
		revenue = revenue.Add(r.Total)
		profit = profit.Add(r.Profit)
		byCategory[r.Category] = byCategory[r.Category].Add(r.Profit)
	}

	return Summary{
		TotalRevenue:      revenue.Round(2),
		AccumulatedProfit: profit.Round(2),
		MostProfitable:    mostProfitable(byCategory),
		ProfitByCategory:  byCategory,
	}
}

// mostProfitable picks the category with the highest accumulated profit.
// Ties are broken by lexical category order so the result is deterministic
// regardless of map iteration order.
func mostProfitable(byCategory map[Category]decimal.Decimal) Category {
	if len(byCategory) == 0 {
		return ""
	}
	cats := make([]Category, 0, len(byCategory))
	for c := range byCategory {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	best := cats[0]
	for _, c := range cats[1:] {
		if byCategory[c].GreaterThan(byCategory[best]) {
			best = c
		}
	}
	return best
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
