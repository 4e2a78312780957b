package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3/database"
	_ "modernc.org/sqlite"

	"github.com/udisondev/balatrogo/internal/state"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// SQLiteStateRepository is the SQLite SnapshotRepository, used for local
// simulation runs.
type SQLiteStateRepository struct {
	sqlDB *sql.DB
}

var _ SnapshotRepository = (*SQLiteStateRepository)(nil)

// OpenSQLite opens the database at path and applies embedded migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStateRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}

	dsn := path
	if path != MemoryPath {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A second connection to :memory: would see an empty database.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, sqlDB, database.DialectSQLite3, "sqlite"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStateRepository{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (r *SQLiteStateRepository) Close() error {
	if r == nil || r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}

// SaveSnapshot replaces every stored entry of the session with snap.
func (r *SQLiteStateRepository) SaveSnapshot(ctx context.Context, sessionID uuid.UUID, snap state.Snapshot) (err error) {
	rows, err := encodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("saving snapshot %s: %w", sessionID, err)
	}

	tx, err := r.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction for session %s: %w", sessionID, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM modifier_states WHERE session_id = ?`, sessionID.String()); err != nil {
		return fmt.Errorf("deleting old states for session %s: %w", sessionID, err)
	}

	if len(rows) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO modifier_states
			   (session_id, state_key, accumulated_value, triggers_remaining, custom, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("preparing insert for session %s: %w", sessionID, err)
		}
		defer stmt.Close()

		now := time.Now().UTC().UnixMilli()
		for _, row := range rows {
			var triggers sql.NullInt64
			if row.TriggersRemaining != nil {
				triggers = sql.NullInt64{Int64: int64(*row.TriggersRemaining), Valid: true}
			}
			if _, err := stmt.ExecContext(ctx,
				sessionID.String(), string(row.Key), row.AccumulatedValue, triggers, string(row.Custom), now,
			); err != nil {
				return fmt.Errorf("inserting state %s for session %s: %w", row.Key, sessionID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction for session %s: %w", sessionID, err)
	}

	slog.Debug("snapshot saved", "session", sessionID, "entries", len(rows), "backend", "sqlite")
	return nil
}

// LoadSnapshot returns every stored entry of the session.
func (r *SQLiteStateRepository) LoadSnapshot(ctx context.Context, sessionID uuid.UUID) (state.Snapshot, error) {
	rows, err := r.sqlDB.QueryContext(ctx,
		`SELECT state_key, accumulated_value, triggers_remaining, custom
		 FROM modifier_states WHERE session_id = ?`, sessionID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying states for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	snap := make(state.Snapshot)
	for rows.Next() {
		var (
			key      string
			row      stateRow
			triggers sql.NullInt64
			custom   string
		)
		if err := rows.Scan(&key, &row.AccumulatedValue, &triggers, &custom); err != nil {
			return nil, fmt.Errorf("scanning state row for session %s: %w", sessionID, err)
		}
		row.Key = state.Key(key)
		row.Custom = []byte(custom)
		if triggers.Valid {
			n := int(triggers.Int64)
			row.TriggersRemaining = &n
		}

		st, err := row.decode()
		if err != nil {
			return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
		}
		snap[row.Key] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating state rows for session %s: %w", sessionID, err)
	}
	return snap, nil
}

// DeleteSnapshot removes every stored entry of the session.
func (r *SQLiteStateRepository) DeleteSnapshot(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := r.sqlDB.ExecContext(ctx, `DELETE FROM modifier_states WHERE session_id = ?`, sessionID.String()); err != nil {
		return fmt.Errorf("deleting session %s: %w", sessionID, err)
	}
	return nil
}

// ListSessions returns the stored session ids, most recently saved first.
func (r *SQLiteStateRepository) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.sqlDB.QueryContext(ctx,
		`SELECT session_id FROM modifier_states
		 GROUP BY session_id ORDER BY max(updated_at) DESC, session_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning session id: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing session id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return ids, nil
}
