package backend

import (
	"context"
	"fmt"
	"log/slog"

	"ventas/internal/adapters"
	"ventas/internal/amqp"
	"ventas/internal/core"
	"ventas/internal/jsonstore"
	"ventas/internal/memory"
	"ventas/internal/services"
	"ventas/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
	costs  *core.CostTable
}

// NewFactory creates a backend factory. All backends share one cost table.
func NewFactory(logger *slog.Logger, costs *core.CostTable) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	if costs == nil {
		costs = core.DefaultCostTable()
	}
	return &DefaultFactory{
		logger: logger,
		costs:  costs,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case MemoryBackend:
		return f.createMemoryBackend(config)
	case JSONFileBackend:
		return f.createJSONFileBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	store := memory.New()
	if config.SeedDemo {
		if err := store.SeedDemo(f.costs); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	f.logger.Info("Initialized memory backend", "seed_demo", config.SeedDemo)

	return &BackendResult{
		Backend: store,
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createJSONFileBackend(config Config) (*BackendResult, error) {
	store, err := jsonstore.Open(config.JSONFilePath, f.costs)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON ledger: %w", err)
	}

	f.logger.Info("Initialized JSON file backend", "path", config.JSONFilePath)

	return &BackendResult{
		Backend: store,
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	sqliteRepo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.costs)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	// AMQP is optional: without it the worker's pending scan still syncs.
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without sync", "error", err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	saleService := services.NewSaleService(sqliteRepo, amqpClient)
	adapter := adapters.NewSQLiteAdapter(sqliteRepo, saleService)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &BackendResult{
		Backend: adapter,
		Cleanup: saleService.Close,
	}, nil
}
