package core

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryHombre Category = "hombre"
	CategoryMujer  Category = "mujer"
	CategoryNino   Category = "niño"
)

type (
	// Category is one of the fixed product classes of the garment line.
	Category string

	// CostTable binds each category to its fixed unit cost. It is built once
	// at startup and passed by reference; it is never mutated afterwards.
	CostTable struct {
		costs map[Category]decimal.Decimal
	}

	// SaleRecord is a single sale. Derived fields (UnitCost through
	// PriceAlert) are computed from the raw inputs at construction and are
	// never supplied or mutated independently.
	SaleRecord struct {
		Timestamp           time.Time
		Category            Category
		Color               string
		Quantity            int
		UnitPrice           decimal.Decimal
		UnitCost            decimal.Decimal
		Total               decimal.Decimal
		InvestmentRecovered decimal.Decimal
		Profit              decimal.Decimal
		PriceAlert          bool
	}

	// Derived holds the computed fields of a sale.
	Derived struct {
		UnitCost            decimal.Decimal
		Total               decimal.Decimal
		InvestmentRecovered decimal.Decimal
		Profit              decimal.Decimal
		PriceAlert          bool
	}
)

var (
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidWindow     = errors.New("invalid summary window")
)

// DefaultCostTable returns the cost table of the current product line:
// hombre 35.00, mujer 30.00, niño 22.00.
func DefaultCostTable() *CostTable {
	return NewCostTable(map[Category]decimal.Decimal{
		CategoryHombre: decimal.NewFromInt(35),
		CategoryMujer:  decimal.NewFromInt(30),
		CategoryNino:   decimal.NewFromInt(22),
	})
}

// NewCostTable copies the given mapping so later changes to the argument
// cannot leak into the table.
func NewCostTable(costs map[Category]decimal.Decimal) *CostTable {
	cp := make(map[Category]decimal.Decimal, len(costs))
	for c, v := range costs {
		cp[c] = v
	}
	return &CostTable{costs: cp}
}

// Cost returns the fixed unit cost for a category.
func (t *CostTable) Cost(c Category) (decimal.Decimal, bool) {
	v, ok := t.costs[c]
	return v, ok
}

// Categories returns the known categories in lexical order.
func (t *CostTable) Categories() []Category {
	out := make([]Category, 0, len(t.costs))
	for c := range t.costs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DeriveFields computes the derived fields of a sale. Total and
// InvestmentRecovered are rounded to two decimals independently before the
// profit subtraction; that order is part of the output contract and must not
// be "fixed" by rounding only once.
func DeriveFields(costs *CostTable, category Category, quantity int, unitPrice decimal.Decimal) (Derived, error) {
	unitCost, ok := costs.Cost(category)
	if !ok {
		return Derived{}, ErrInvalidCategory
	}
	if quantity <= 0 {
		return Derived{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return Derived{}, ErrInvalidPrice
	}

	qty := decimal.NewFromInt(int64(quantity))
	total := qty.Mul(unitPrice).Round(2)
	investment := qty.Mul(unitCost).Round(2)

	return Derived{
		UnitCost:            unitCost,
		Total:               total,
		InvestmentRecovered: investment,
		Profit:              total.Sub(investment).Round(2),
		PriceAlert:          unitPrice.LessThan(unitCost),
	}, nil
}

// NewSaleRecord validates the raw inputs and builds an immutable record with
// all derived fields populated.
func NewSaleRecord(costs *CostTable, ts time.Time, category Category, color string, quantity int, unitPrice decimal.Decimal) (SaleRecord, error) {
	d, err := DeriveFields(costs, category, quantity, unitPrice)
	if err != nil {
		return SaleRecord{}, err
	}
	return SaleRecord{
		Timestamp:           ts.Truncate(time.Second),
		Category:            category,
		Color:               color,
		Quantity:            quantity,
		UnitPrice:           unitPrice.Round(2),
		UnitCost:            d.UnitCost,
		Total:               d.Total,
		InvestmentRecovered: d.InvestmentRecovered,
		Profit:              d.Profit,
		PriceAlert:          d.PriceAlert,
	}, nil
}
