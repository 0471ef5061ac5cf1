// Package worker mirrors locally saved sales to the remote spreadsheet. It
// reacts to AMQP messages and periodically scans for rows the messages
// missed.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"ventas/internal/amqp"
	"ventas/internal/core"
	"ventas/internal/sales"
	"ventas/internal/storage"
)

// SyncWorker pushes sales from SQLite to a remote SaleWriter.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	remote    sales.SaleWriter
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, remote sales.SaleWriter, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		remote:    remote,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single sale sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SaleSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	rec, err := w.storage.GetSaleRecord(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get sale from storage: %w", err)
	}

	if err := w.syncSale(ctx, msg.ID, rec); err != nil {
		return fmt.Errorf("sync sale: %w", err)
	}

	return nil
}

// ProcessPendingSales mirrors any sales that haven't been synced yet.
// This is the backup mechanism for lost AMQP messages.
func (w *SyncWorker) ProcessPendingSales(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncSales(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending sales: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending sales", "count", len(pending))

	for _, p := range pending {
		rec, err := w.storage.GetSaleRecord(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get sale", "id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.syncSale(ctx, p.ID, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to sync sale", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains the pending backlog once at worker startup. It
// uses a larger batch to recover from missed messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncSales(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending sales for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending sales found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending sales on startup, processing",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		rec, err := w.storage.GetSaleRecord(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get sale for startup sync",
				"id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			errorCount++
			continue
		}

		if err := w.syncSale(ctx, p.ID, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to sync sale during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}

		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) syncSale(ctx context.Context, id int64, rec core.SaleRecord) error {
	ref, err := w.remote.Append(ctx, rec)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to remote: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		// The sync itself worked, so don't fail the message.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Successfully synced sale",
		"id", id,
		"remote_ref", ref,
		"category", rec.Category,
		"total", rec.Total)

	return nil
}
