package sales

import (
	"context"

	"ventas/internal/core"
)

// Ports for outbound adapters.
type (
	// SaleWriter persists a single already-validated record.
	SaleWriter interface {
		Append(ctx context.Context, rec core.SaleRecord) (ref string, err error)
	}

	// SaleLister returns the full ledger snapshot in insertion order.
	SaleLister interface {
		ListAll(ctx context.Context) ([]core.SaleRecord, error)
	}
)
