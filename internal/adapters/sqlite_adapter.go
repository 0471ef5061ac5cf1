package adapters

import (
	"context"

	"ventas/internal/core"
	"ventas/internal/services"
	"ventas/internal/storage"
)

// SQLiteAdapter adapts SQLiteRepository and SaleService to the sales.*
// interfaces so the HTTP handlers work unchanged on the SQLite backend.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.SaleService
}

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.SaleService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// Append implements sales.SaleWriter. Writes go through the service so
// every saved sale also gets a sync message.
func (a *SQLiteAdapter) Append(ctx context.Context, rec core.SaleRecord) (string, error) {
	return a.service.CreateSale(ctx, rec)
}

// ListAll implements sales.SaleLister.
func (a *SQLiteAdapter) ListAll(ctx context.Context) ([]core.SaleRecord, error) {
	return a.storage.ListAll(ctx)
}
