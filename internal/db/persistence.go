package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/balatrogo/internal/state"
)

// DefaultSaveWorkers bounds SaveSessions when no limit is configured.
const DefaultSaveWorkers = 4

// StatePersistence saves and restores modifier state stores by session.
type StatePersistence struct {
	repo    SnapshotRepository
	workers int
}

// NewStatePersistence creates a persistence service over repo. A workers
// value below one falls back to DefaultSaveWorkers.
func NewStatePersistence(repo SnapshotRepository, workers int) *StatePersistence {
	if workers < 1 {
		workers = DefaultSaveWorkers
	}
	return &StatePersistence{repo: repo, workers: workers}
}

// SaveStore snapshots store and persists it under sessionID.
// A poisoned store is not saved.
func (p *StatePersistence) SaveStore(ctx context.Context, sessionID uuid.UUID, store *state.Store) error {
	if store == nil {
		return errors.New("saving nil state store")
	}
	snap, err := store.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshotting session %s: %w", sessionID, err)
	}
	if err := p.repo.SaveSnapshot(ctx, sessionID, snap); err != nil {
		return err
	}
	return nil
}

// LoadStore returns a new store filled with the session's saved state.
// An unknown session yields an empty store.
func (p *StatePersistence) LoadStore(ctx context.Context, sessionID uuid.UUID) (*state.Store, error) {
	snap, err := p.repo.LoadSnapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	store := state.NewStore()
	if err := store.Restore(snap); err != nil {
		return nil, fmt.Errorf("restoring session %s: %w", sessionID, err)
	}

	slog.Debug("session restored", "session", sessionID, "entries", len(snap))
	return store, nil
}

// RestoreInto replaces store content with the session's saved state.
func (p *StatePersistence) RestoreInto(ctx context.Context, sessionID uuid.UUID, store *state.Store) error {
	snap, err := p.repo.LoadSnapshot(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := store.Restore(snap); err != nil {
		return fmt.Errorf("restoring session %s: %w", sessionID, err)
	}
	return nil
}

// SaveSessions persists every store concurrently, at most workers at a
// time. The first failure cancels the remaining saves.
func (p *StatePersistence) SaveSessions(ctx context.Context, stores map[uuid.UUID]*state.Store) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for id, store := range stores {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return p.SaveStore(gctx, id, store)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("saving sessions: %w", err)
	}

	slog.Info("sessions saved", "count", len(stores))
	return nil
}

// Forget deletes the session's saved state.
func (p *StatePersistence) Forget(ctx context.Context, sessionID uuid.UUID) error {
	return p.repo.DeleteSnapshot(ctx, sessionID)
}

// Sessions lists the saved session ids.
func (p *StatePersistence) Sessions(ctx context.Context) ([]uuid.UUID, error) {
	return p.repo.ListSessions(ctx)
}
