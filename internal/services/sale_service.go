package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"ventas/internal/amqp"
	"ventas/internal/core"
	"ventas/internal/storage"
)

// SaleService orchestrates sale writes across SQLite and AMQP. The local
// write is authoritative; the sync message is best effort.
type SaleService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewSaleService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *SaleService {
	return &SaleService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// CreateSale saves the record locally and publishes a sync message.
func (s *SaleService) CreateSale(ctx context.Context, rec core.SaleRecord) (string, error) {
	ref, err := s.storage.Append(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("save sale: %w", err)
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to parse sale ID", "ref", ref, "error", err)
		return ref, nil // the local save succeeded
	}

	if err := s.publishSyncMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
		// Don't fail the request, the sale is saved locally and the
		// pending scan will pick it up.
	}

	return ref, nil
}

func (s *SaleService) publishSyncMessage(ctx context.Context, id int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishSaleSync(ctx, id)
}

// Close closes both storage and AMQP connections.
func (s *SaleService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close sale service: %v", errs)
	}

	return nil
}
