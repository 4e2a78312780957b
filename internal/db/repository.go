package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/balatrogo/internal/state"
)

// SnapshotRepository stores modifier state snapshots keyed by session.
// Loading an unknown session returns an empty snapshot.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, sessionID uuid.UUID, snap state.Snapshot) error
	LoadSnapshot(ctx context.Context, sessionID uuid.UUID) (state.Snapshot, error)
	DeleteSnapshot(ctx context.Context, sessionID uuid.UUID) error
	ListSessions(ctx context.Context) ([]uuid.UUID, error)
}

// stateRow is one modifier_states row.
type stateRow struct {
	Key               state.Key
	AccumulatedValue  float64
	TriggersRemaining *int
	Custom            []byte
}

func encodeRow(key state.Key, st state.State) (stateRow, error) {
	custom := []byte("{}")
	if len(st.Custom) > 0 {
		var err error
		if custom, err = json.Marshal(st.Custom); err != nil {
			return stateRow{}, fmt.Errorf("encoding custom data of %s: %w", key, err)
		}
	}
	return stateRow{
		Key:               key,
		AccumulatedValue:  st.AccumulatedValue,
		TriggersRemaining: st.TriggersRemaining,
		Custom:            custom,
	}, nil
}

func (r stateRow) decode() (state.State, error) {
	st := state.State{
		AccumulatedValue:  r.AccumulatedValue,
		TriggersRemaining: r.TriggersRemaining,
	}
	var custom map[string]json.RawMessage
	if err := json.Unmarshal(r.Custom, &custom); err != nil {
		return state.State{}, fmt.Errorf("decoding custom data of %s: %w", r.Key, err)
	}
	if len(custom) > 0 {
		st.Custom = custom
	}
	return st, nil
}

func encodeSnapshot(snap state.Snapshot) ([]stateRow, error) {
	rows := make([]stateRow, 0, len(snap))
	for key, st := range snap {
		row, err := encodeRow(key, st)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// StateRepository is the PostgreSQL SnapshotRepository.
type StateRepository struct {
	pool *pgxpool.Pool
}

// NewStateRepository creates a PostgreSQL snapshot repository.
func NewStateRepository(pool *pgxpool.Pool) *StateRepository {
	return &StateRepository{pool: pool}
}

var _ SnapshotRepository = (*StateRepository)(nil)

// SaveSnapshot replaces every stored entry of the session with snap.
func (r *StateRepository) SaveSnapshot(ctx context.Context, sessionID uuid.UUID, snap state.Snapshot) error {
	rows, err := encodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("saving snapshot %s: %w", sessionID, err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for session %s: %w", sessionID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "session", sessionID, "error", err)
		}
	}()

	if err := r.saveTx(ctx, tx, sessionID, rows); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for session %s: %w", sessionID, err)
	}

	slog.Debug("snapshot saved", "session", sessionID, "entries", len(rows))
	return nil
}

func (r *StateRepository) saveTx(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, rows []stateRow) error {
	if _, err := tx.Exec(ctx, `DELETE FROM modifier_states WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("deleting old states for session %s: %w", sessionID, err)
	}

	if len(rows) == 0 {
		return nil
	}

	copyRows := make([][]any, 0, len(rows))
	for _, row := range rows {
		copyRows = append(copyRows, []any{
			sessionID, string(row.Key), row.AccumulatedValue, row.TriggersRemaining, row.Custom,
		})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"modifier_states"},
		[]string{"session_id", "state_key", "accumulated_value", "triggers_remaining", "custom"},
		pgx.CopyFromRows(copyRows),
	)
	if err != nil {
		return fmt.Errorf("inserting states for session %s: %w", sessionID, err)
	}
	return nil
}

// LoadSnapshot returns every stored entry of the session.
func (r *StateRepository) LoadSnapshot(ctx context.Context, sessionID uuid.UUID) (state.Snapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT state_key, accumulated_value, triggers_remaining, custom
		 FROM modifier_states WHERE session_id = $1`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying states for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	snap := make(state.Snapshot)
	for rows.Next() {
		var row stateRow
		if err := rows.Scan(&row.Key, &row.AccumulatedValue, &row.TriggersRemaining, &row.Custom); err != nil {
			return nil, fmt.Errorf("scanning state row for session %s: %w", sessionID, err)
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
func (r *StateRepository) DeleteSnapshot(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM modifier_states WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("deleting session %s: %w", sessionID, err)
	}
	return nil
}

// ListSessions returns the stored session ids, most recently saved first.
func (r *StateRepository) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT session_id FROM modifier_states
		 GROUP BY session_id ORDER BY max(updated_at) DESC, session_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return ids, nil
}
