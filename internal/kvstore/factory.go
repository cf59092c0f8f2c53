package kvstore

import (
	"context"
	"fmt"
)

// BackendType selects the autosave medium.
type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	SQLiteBackend   BackendType = "sqlite"
	PostgresBackend BackendType = "postgres"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, PostgresBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for store creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Postgres specific
	PostgresURL string
}

// Open creates the Store described by the config.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case MemoryBackend:
		return NewMemory(), nil
	case SQLiteBackend:
		return NewSQLite(cfg.SQLiteDBPath)
	case PostgresBackend:
		return NewPostgres(ctx, cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("unknown backend type: %s", cfg.Type)
	}
}
