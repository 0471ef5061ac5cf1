package backend

import (
	"context"

	"ventas/internal/sales"
)

// Backend is the unified interface every storage backend provides.
type Backend interface {
	sales.SaleWriter
	sales.SaleLister
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function.
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// JSON file specific
	JSONFilePath string

	// SQLite specific
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Memory backend specific
	SeedDemo bool
}

// BackendType selects where the ledger lives.
type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	JSONFileBackend BackendType = "jsonfile"
	SQLiteBackend   BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, JSONFileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
