package main

import (
	"context"
	"os"

	"ventas/internal/backend"
	"ventas/internal/cli"
	"ventas/internal/core"
	"ventas/internal/export"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger("export")
	cfg := cli.LoadAndValidateConfig(logger)

	path := cfg.ExportFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	factory := backend.NewFactory(logger.Logger, core.DefaultCostTable())
	result, err := factory.CreateBackend(context.Background(), backend.Config{
		Type:         backend.BackendType(cfg.DataBackend),
		JSONFilePath: cfg.JSONFilePath,
		SQLiteDBPath: cfg.SQLiteDBPath,
		SeedDemo:     cfg.SeedDemo,
	})
	if err != nil {
		logger.Error("Failed to create backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	records, err := result.Backend.ListAll(context.Background())
	if err != nil {
		logger.Error("Failed to read ledger", "error", err)
		os.Exit(1)
	}

	f, err := os.Create(path)
	if err != nil {
		logger.Error("Failed to create export file", "error", err, "path", path)
		os.Exit(1)
	}
	defer f.Close()

	if err := export.WriteCSV(f, records); err != nil {
		logger.Error("Failed to write CSV", "error", err, "path", path)
		os.Exit(1)
	}

	logger.Info("Ledger exported", "path", path, "records", len(records))
}
