package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/udisondev/balatrogo/internal/db/migrations"
)

// RunMigrations runs the PostgreSQL goose migrations on the given DSN.
func RunMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	return migrate(ctx, sqlDB, database.DialectPostgres, "postgres")
}

// migrate applies the embedded migrations found under dir for dialect.
// It never closes sqlDB.
func migrate(ctx context.Context, sqlDB *sql.DB, dialect database.Dialect, dir string) error {
	fsys, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("opening %s migrations: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("creating goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	for _, r := range results {
		slog.Debug("migration applied",
			"dialect", dialect,
			"version", r.Source.Version,
			"duration", r.Duration)
	}
	return nil
}
