package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDeriveFields(t *testing.T) {
	costs := DefaultCostTable()

	d, err := DeriveFields(costs, CategoryHombre, 3, dec("40"))
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !d.UnitCost.Equal(dec("35")) {
		t.Fatalf("unit cost = %s, want 35", d.UnitCost)
	}
	if !d.Total.Equal(dec("120")) {
		t.Fatalf("total = %s, want 120", d.Total)
	}
	if !d.InvestmentRecovered.Equal(dec("105")) {
		t.Fatalf("investment = %s, want 105", d.InvestmentRecovered)
	}
	if !d.Profit.Equal(dec("15")) {
		t.Fatalf("profit = %s, want 15", d.Profit)
	}
	if d.PriceAlert {
		t.Fatalf("price alert should be off for price above cost")
	}

	// Pure: identical inputs, identical outputs.
	d2, err := DeriveFields(costs, CategoryHombre, 3, dec("40"))
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !d2.Total.Equal(d.Total) || !d2.Profit.Equal(d.Profit) || d2.PriceAlert != d.PriceAlert {
		t.Fatalf("derive is not deterministic: %+v vs %+v", d, d2)
	}
}

func TestDeriveFieldsRoundingOrder(t *testing.T) {
	// Total and investment are rounded independently before the profit
	// subtraction, so profit can differ from rounding the exact difference.
	costs := NewCostTable(map[Category]decimal.Decimal{"x": dec("0.336")})
	d, err := DeriveFields(costs, "x", 1, dec("0.114"))
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !d.Total.Equal(dec("0.11")) || !d.InvestmentRecovered.Equal(dec("0.34")) {
		t.Fatalf("got total=%s investment=%s", d.Total, d.InvestmentRecovered)
	}
	// The exact difference 0.114-0.336 = -0.222 would round to -0.22; the
	// contract subtracts the already-rounded operands instead.
	if !d.Profit.Equal(dec("-0.23")) {
		t.Fatalf("profit = %s, want -0.23", d.Profit)
	}
}

func TestPriceAlertStrictInequality(t *testing.T) {
	costs := DefaultCostTable()
	cases := []struct {
		price string
		alert bool
	}{
		{"34.99", true},
		{"35", false}, // equal price is not flagged
		{"35.01", false},
	}
	for i, tc := range cases {
		d, err := DeriveFields(costs, CategoryHombre, 1, dec(tc.price))
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if d.PriceAlert != tc.alert {
			t.Fatalf("case %d: price %s alert = %v, want %v", i, tc.price, d.PriceAlert, tc.alert)
		}
	}
}

func TestAddSaleValidation(t *testing.T) {
	ts := time.Date(2025, 12, 29, 10, 15, 0, 0, time.Local)
	cases := []struct {
		name     string
		category Category
		quantity int
		price    string
		wantErr  error
	}{
		{"unknown category", "gorro", 1, "10", ErrInvalidCategory},
		{"zero quantity", CategoryMujer, 0, "10", ErrInvalidQuantity},
		{"negative quantity", CategoryMujer, -2, "10", ErrInvalidQuantity},
		{"negative price", CategoryMujer, 1, "-0.01", ErrInvalidPrice},
	}
	for _, tc := range cases {
		ledger := NewLedger(DefaultCostTable())
		_, err := ledger.AddSale(ts, tc.category, "negro", tc.quantity, dec(tc.price))
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.wantErr)
		}
		if ledger.Len() != 0 {
			t.Fatalf("%s: failed add must not grow the ledger", tc.name)
		}
	}
}

func TestAddSaleAppendsInOrder(t *testing.T) {
	ledger := NewLedger(DefaultCostTable())
	ts := time.Date(2025, 12, 29, 10, 15, 0, 0, time.Local)

	first, err := ledger.AddSale(ts, CategoryHombre, "negro", 3, dec("40"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := ledger.AddSale(ts.Add(time.Hour), CategoryNino, "azul", 4, dec("25"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	recs := ledger.Records()
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].Category != first.Category || recs[1].Category != second.Category {
		t.Fatalf("insertion order not preserved: %v %v", recs[0].Category, recs[1].Category)
	}
	if !recs[0].Profit.Equal(dec("15")) {
		t.Fatalf("first profit = %s, want 15", recs[0].Profit)
	}
	if !recs[1].Profit.Equal(dec("12")) {
		t.Fatalf("second profit = %s, want 12", recs[1].Profit)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"40", "40", true},
		{"28,50", "28.5", true},
		{" 0 ", "0", true},
		{"-1", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, err := ParsePrice(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d: expected ok, got %v", i, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("case %d: expected error", i)
			}
			continue
		}
		if !got.Equal(dec(tc.want)) {
			t.Fatalf("case %d: got %s, want %s", i, got, tc.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	if _, err := ParseQuantity("3"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, in := range []string{"0", "-4", "2.5", "x", ""} {
		if _, err := ParseQuantity(in); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("%q: err = %v, want ErrInvalidQuantity", in, err)
		}
	}
}
