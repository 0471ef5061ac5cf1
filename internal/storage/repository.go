// Package storage keeps the ledger in a local SQLite database. Monetary
// values travel as exact decimal strings; derived fields are recomputed
// from the raw columns whenever rows are read back.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"ventas/internal/core"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	costs   *core.CostTable
}

func NewSQLiteRepository(dbPath string, costs *core.CostTable) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		costs:   costs,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements sales.SaleWriter. The returned reference is the row id.
func (r *SQLiteRepository) Append(ctx context.Context, rec core.SaleRecord) (string, error) {
	sale, err := r.queries.CreateSale(ctx, CreateSaleParams{
		SoldAt:              core.FormatTimestamp(rec.Timestamp),
		Category:            string(rec.Category),
		Color:               rec.Color,
		Quantity:            int64(rec.Quantity),
		UnitPrice:           rec.UnitPrice.String(),
		UnitCost:            rec.UnitCost.String(),
		Total:               rec.Total.String(),
		InvestmentRecovered: rec.InvestmentRecovered.String(),
		Profit:              rec.Profit.String(),
		PriceAlert:          rec.PriceAlert,
	})
	if err != nil {
		return "", fmt.Errorf("create sale: %w", err)
	}

	slog.InfoContext(ctx, "Sale saved to SQLite",
		"id", sale.ID,
		"category", sale.Category,
		"quantity", sale.Quantity,
		"total", sale.Total)

	return strconv.FormatInt(sale.ID, 10), nil
}

// ListAll implements sales.SaleLister, returning records in insertion order.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.SaleRecord, error) {
	rows, err := r.queries.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	records := make([]core.SaleRecord, len(rows))
	for i, row := range rows {
		rec, err := r.toRecord(row)
		if err != nil {
			return nil, fmt.Errorf("sale id %d: %w", row.ID, err)
		}
		records[i] = rec
	}
	return records, nil
}

// GetSaleRecord retrieves a single sale by its row id.
func (r *SQLiteRepository) GetSaleRecord(ctx context.Context, id int64) (core.SaleRecord, error) {
	row, err := r.queries.GetSale(ctx, id)
	if err != nil {
		return core.SaleRecord{}, fmt.Errorf("get sale by id: %w", err)
	}
	return r.toRecord(row)
}

// PendingSale carries the minimal data needed for sync queue messages.
type PendingSale struct {
	ID        int64
	CreatedAt string
}

// GetPendingSyncSales returns sales that still need to be mirrored to the
// remote spreadsheet.
func (r *SQLiteRepository) GetPendingSyncSales(ctx context.Context, limit int) ([]PendingSale, error) {
	rows, err := r.queries.GetPendingSyncSales(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending sync sales: %w", err)
	}

	pending := make([]PendingSale, len(rows))
	for i, row := range rows {
		pending[i] = PendingSale{ID: row.ID, CreatedAt: row.CreatedAt}
	}
	return pending, nil
}

// MarkSynced marks a sale as successfully mirrored.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if err := r.queries.MarkSaleSynced(ctx, id); err != nil {
		return fmt.Errorf("mark sale synced: %w", err)
	}
	slog.InfoContext(ctx, "Sale marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a sale as having failed to sync.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if err := r.queries.MarkSaleSyncError(ctx, id); err != nil {
		return fmt.Errorf("mark sale sync error: %w", err)
	}
	slog.WarnContext(ctx, "Sale marked with sync error", "id", id)
	return nil
}

// toRecord rebuilds a domain record from a stored row. Only the raw inputs
// are trusted; derived columns are recomputed against the cost table.
func (r *SQLiteRepository) toRecord(row Sale) (core.SaleRecord, error) {
	ts, err := core.ParseTimestamp(row.SoldAt, time.Now)
	if err != nil {
		return core.SaleRecord{}, err
	}
	price, err := decimal.NewFromString(row.UnitPrice)
	if err != nil {
		return core.SaleRecord{}, fmt.Errorf("parse unit price %q: %w", row.UnitPrice, err)
	}
	return core.NewSaleRecord(r.costs, ts, core.Category(row.Category), row.Color, int(row.Quantity), price)
}
