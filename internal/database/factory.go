package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/config"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"
)

// NewStoreFromConfig creates a store based on the database configuration.
func NewStoreFromConfig(cfg config.DatabaseConfig, clock tracker.Clock, idgen tracker.IDGenerator) (*SQLiteStore, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("sqlite database requires data_dir")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return NewSQLiteStore(filepath.Join(cfg.DataDir, "caloriemgl.db"), clock, idgen)
	case "memory":
		return NewSQLiteStore(":memory:", clock, idgen)
	default:
		return nil, fmt.Errorf("unknown database type: %q", cfg.Type)
	}
}
