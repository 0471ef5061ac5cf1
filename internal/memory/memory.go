package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"ventas/internal/core"
)

// Store keeps the ledger in memory only. Used for development and tests.
type Store struct {
	mu     sync.Mutex
	ledger *core.Ledger
}

func New() *Store {
	return &Store{ledger: core.NewLedger(core.DefaultCostTable())}
}

// Append stores the record and returns a synthetic reference.
func (s *Store) Append(_ context.Context, rec core.SaleRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Append(rec)
	return fmt.Sprintf("mem:%d", s.ledger.Len()), nil
}

// ListAll returns a copy of the ledger in insertion order.
func (s *Store) ListAll(_ context.Context) ([]core.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Records(), nil
}

// SeedDemo loads the historical sample sales so summaries have something to
// show on a fresh instance.
func (s *Store) SeedDemo(costs *core.CostTable) error {
	demo := []struct {
		ts       string
		category core.Category
		color    string
		quantity int
		price    string
	}{
		{"2025-12-29 10:15:00", core.CategoryHombre, "negro", 3, "40"},
		{"2025-12-29 12:30:00", core.CategoryMujer, "rojo", 2, "28"},
		{"2025-12-28 09:00:00", core.CategoryNino, "azul", 4, "25"},
		{"2025-12-30 14:00:00", core.CategoryHombre, "gris", 1, "30"},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range demo {
		ts, err := core.ParseTimestamp(d.ts, time.Now)
		if err != nil {
			return fmt.Errorf("seed timestamp %q: %w", d.ts, err)
		}
		price, err := decimal.NewFromString(d.price)
		if err != nil {
			return fmt.Errorf("seed price %q: %w", d.price, err)
		}
		rec, err := core.NewSaleRecord(costs, ts, d.category, d.color, d.quantity, price)
		if err != nil {
			return fmt.Errorf("seed record: %w", err)
		}
		s.ledger.Append(rec)
	}
	return nil
}
