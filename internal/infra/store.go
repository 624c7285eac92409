package infra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"studio/internal/kvstore"
)

// OpenStore opens the key-value backend named by cfg.StoreBackend.
func OpenStore(ctx context.Context, cfg *Config) (kvstore.Store, error) {
	switch cfg.StoreBackend {
	case BackendMemory:
		return kvstore.NewMemory(), nil
	case BackendFile:
		return kvstore.NewFile(cfg.LibraryPath)
	case BackendSQLite:
		if err := os.MkdirAll(cfg.LibraryPath, 0o755); err != nil {
			return nil, fmt.Errorf("ensure library path: %w", err)
		}
		return kvstore.OpenSQLite(filepath.Join(cfg.LibraryPath, "library.db"))
	case BackendRedis:
		return kvstore.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	case BackendPostgres:
		return kvstore.OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
