// Package jsonstore persists the ledger as a single JSON document on disk.
// The whole sequence is rewritten after every append (write-through); the
// file is never treated as an append-only log.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"ventas/internal/core"
	"ventas/internal/sales"
)

type Store struct {
	mu    sync.Mutex
	path  string
	costs *core.CostTable
	items []core.SaleRecord
}

// Open loads the ledger from path, or starts empty when the file does not
// exist yet. Derived fields are recomputed from the raw fields of each
// stored row.
func Open(path string, costs *core.CostTable) (*Store, error) {
	s := &Store{path: path, costs: costs}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	var rows []sales.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode ledger file %s: %w", path, err)
	}
	for i, row := range rows {
		rec, err := sales.FromRow(costs, row)
		if err != nil {
			return nil, fmt.Errorf("ledger file %s row %d: %w", path, i, err)
		}
		s.items = append(s.items, rec)
	}
	return s, nil
}

// Append adds the record and rewrites the full ledger file.
func (s *Store) Append(_ context.Context, rec core.SaleRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, rec)
	if err := s.saveAll(); err != nil {
		// Keep storage and memory consistent on failure.
		s.items = s.items[:len(s.items)-1]
		return "", err
	}
	return fmt.Sprintf("json:%d", len(s.items)), nil
}

// ListAll returns a copy of the ledger in insertion order.
func (s *Store) ListAll(_ context.Context) ([]core.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.SaleRecord, len(s.items))
	copy(out, s.items)
	return out, nil
}

// saveAll serializes the whole sequence, replacing the previous contents.
// Callers must hold s.mu.
func (s *Store) saveAll() error {
	rows := make([]sales.Row, len(s.items))
	for i, rec := range s.items {
		rows[i] = sales.ToRow(rec)
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}
