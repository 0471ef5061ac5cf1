package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Sale is the sales table row. Monetary columns are stored as exact decimal
// strings, never as floats.
type Sale struct {
	ID                  int64
	SoldAt              string
	Category            string
	Color               string
	Quantity            int64
	UnitPrice           string
	UnitCost            string
	Total               string
	InvestmentRecovered string
	Profit              string
	PriceAlert          bool
	Synced              bool
	SyncError           bool
	CreatedAt           string
}

const saleColumns = `id, sold_at, category, color, quantity, unit_price,
	unit_cost, total, investment_recovered, profit, price_alert, synced,
	sync_error, created_at`

func scanSale(row interface{ Scan(dest ...any) error }) (Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.SoldAt, &s.Category, &s.Color, &s.Quantity,
		&s.UnitPrice, &s.UnitCost, &s.Total, &s.InvestmentRecovered,
		&s.Profit, &s.PriceAlert, &s.Synced, &s.SyncError, &s.CreatedAt)
	return s, err
}

type CreateSaleParams struct {
	SoldAt              string
	Category            string
	Color               string
	Quantity            int64
	UnitPrice           string
	UnitCost            string
	Total               string
	InvestmentRecovered string
	Profit              string
	PriceAlert          bool
}

const createSale = `
INSERT INTO sales (sold_at, category, color, quantity, unit_price, unit_cost,
	total, investment_recovered, profit, price_alert)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + saleColumns

func (q *Queries) CreateSale(ctx context.Context, arg CreateSaleParams) (Sale, error) {
	row := q.db.QueryRowContext(ctx, createSale,
		arg.SoldAt, arg.Category, arg.Color, arg.Quantity, arg.UnitPrice,
		arg.UnitCost, arg.Total, arg.InvestmentRecovered, arg.Profit,
		arg.PriceAlert)
	return scanSale(row)
}

const getSale = `SELECT ` + saleColumns + ` FROM sales WHERE id = ?`

func (q *Queries) GetSale(ctx context.Context, id int64) (Sale, error) {
	return scanSale(q.db.QueryRowContext(ctx, getSale, id))
}

const listSales = `SELECT ` + saleColumns + ` FROM sales ORDER BY id`

func (q *Queries) ListSales(ctx context.Context) ([]Sale, error) {
	rows, err := q.db.QueryContext(ctx, listSales)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

const getPendingSyncSales = `
SELECT ` + saleColumns + ` FROM sales
WHERE synced = 0 AND sync_error = 0
ORDER BY id
LIMIT ?`

func (q *Queries) GetPendingSyncSales(ctx context.Context, limit int64) ([]Sale, error) {
	rows, err := q.db.QueryContext(ctx, getPendingSyncSales, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

const markSaleSynced = `UPDATE sales SET synced = 1, sync_error = 0 WHERE id = ?`

func (q *Queries) MarkSaleSynced(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markSaleSynced, id)
	return err
}

const markSaleSyncError = `UPDATE sales SET sync_error = 1 WHERE id = ?`

func (q *Queries) MarkSaleSyncError(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markSaleSyncError, id)
	return err
}
