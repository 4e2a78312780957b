package db

import (
	"context"
	"fmt"

	"github.com/udisondev/balatrogo/internal/config"
)

// Backend is an open snapshot repository together with its release func.
type Backend struct {
	Repository SnapshotRepository
	close      func()
}

// Close releases the backend connection.
func (b *Backend) Close() {
	if b != nil && b.close != nil {
		b.close()
	}
}

// OpenBackend opens the snapshot backend selected by cfg. PostgreSQL
// migrations run before the pool is returned. It returns nil for
// config.BackendNone.
func OpenBackend(ctx context.Context, cfg config.Engine) (*Backend, error) {
	switch cfg.SnapshotBackend {
	case config.BackendNone, "":
		return nil, nil
	case config.BackendSQLite:
		repo, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{Repository: repo, close: func() { _ = repo.Close() }}, nil
	case config.BackendPostgres:
		dsn := cfg.Database.DSN()
		if err := RunMigrations(ctx, dsn); err != nil {
			return nil, err
		}
		conn, err := New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &Backend{Repository: NewStateRepository(conn.Pool()), close: conn.Close}, nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}
