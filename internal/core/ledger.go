package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is the append-only, insertion-ordered sequence of sale records for
// the process lifetime. Records are never edited or deleted; persistence of
// the full sequence after each append is the caller's responsibility.
type Ledger struct {
	costs   *CostTable
	records []SaleRecord
}

func NewLedger(costs *CostTable) *Ledger {
	return &Ledger{costs: costs}
}

// NewLedgerFrom starts a ledger from records loaded out of external storage.
func NewLedgerFrom(costs *CostTable, records []SaleRecord) *Ledger {
	l := NewLedger(costs)
	l.records = append(l.records, records...)
	return l
}

// AddSale validates the raw transaction fields, derives the computed fields
// and appends the resulting record. A failed validation leaves the ledger
// untouched.
func (l *Ledger) AddSale(ts time.Time, category Category, color string, quantity int, unitPrice decimal.Decimal) (SaleRecord, error) {
	rec, err := NewSaleRecord(l.costs, ts, category, color, quantity, unitPrice)
	if err != nil {
		return SaleRecord{}, err
	}
	l.records = append(l.records, rec)
	return rec, nil
}

// Append adds an already-built record, preserving insertion order. Use
// AddSale when starting from raw transaction fields.
func (l *Ledger) Append(rec SaleRecord) {
	l.records = append(l.records, rec)
}

// Records returns a snapshot copy in insertion order.
func (l *Ledger) Records() []SaleRecord {
	out := make([]SaleRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Ledger) Len() int {
	return len(l.records)
}

// Costs exposes the table the ledger was built with.
func (l *Ledger) Costs() *CostTable {
	return l.costs
}
