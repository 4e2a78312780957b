package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// ErrPoisoned is returned by every Store call once a mutator has panicked.
// A poisoned store holds process-local state that can no longer be trusted;
// callers should abandon the session.
var ErrPoisoned = errors.New("modifier state store poisoned")

// InvariantError reports the mutator panic that poisoned the store.
// It unwraps to ErrPoisoned.
type InvariantError struct {
	Key   Key
	Cause any
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("modifier state store: mutator for %q panicked: %v", e.Key, e.Cause)
}

func (e *InvariantError) Unwrap() error {
	return ErrPoisoned
}

// Store keeps per-modifier mutable state for one game session.
//
// Thread-safe: reads share a sync.RWMutex read lock, every write holds the
// write lock for exactly one read-modify-write. Entries are created lazily on
// first write; reads of unknown keys return defaults without allocating.
type Store struct {
	mu       sync.RWMutex
	states   map[Key]*State
	poisoned atomic.Bool
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		states: make(map[Key]*State, 16),
	}
}

// Err returns ErrPoisoned if the store is poisoned, nil otherwise.
func (s *Store) Err() error {
	if s.poisoned.Load() {
		return ErrPoisoned
	}
	return nil
}

// AccumulatedValue returns the accumulated value for key, 0 if none.
func (s *Store) AccumulatedValue(key Key) (float64, error) {
	if err := s.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.states[key]; ok {
		return st.AccumulatedValue, nil
	}
	return 0, nil
}

// Lookup returns a copy of the state for key and whether it exists.
func (s *Store) Lookup(key Key) (State, bool, error) {
	if err := s.Err(); err != nil {
		return State{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[key]
	if !ok {
		return State{}, false, nil
	}
	return st.Clone(), true, nil
}

// UpdateState applies fn to the state of key under the write lock, creating
// the entry if needed. fn works on a copy that is committed only when fn
// returns normally. A panic inside fn poisons the store.
func (s *Store) UpdateState(key Key, fn func(*State)) error {
	return s.update(key, State{}, fn)
}

// UpdateStateWithDefault is UpdateState with def as the starting state when
// key has no entry yet.
func (s *Store) UpdateStateWithDefault(key Key, def State, fn func(*State)) error {
	return s.update(key, def, fn)
}

func (s *Store) update(key Key, def State, fn func(*State)) (err error) {
	if err := s.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the lock: another writer may have poisoned the store.
	if s.poisoned.Load() {
		return ErrPoisoned
	}

	work := def.Clone()
	if st, ok := s.states[key]; ok {
		work = st.Clone()
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned.Store(true)
			slog.Error("modifier state store poisoned", "key", key, "panic", r)
			err = &InvariantError{Key: key, Cause: r}
		}
	}()

	fn(&work)
	s.states[key] = &work
	return nil
}

// SetAccumulatedValue overwrites the accumulated value for key.
func (s *Store) SetAccumulatedValue(key Key, v float64) error {
	return s.UpdateState(key, func(st *State) {
		st.AccumulatedValue = v
	})
}

// SetCustom stores value under name in key's custom data.
func (s *Store) SetCustom(key Key, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding custom %q for %q: %w", name, key, err)
	}
	return s.UpdateState(key, func(st *State) {
		if st.Custom == nil {
			st.Custom = make(map[string]json.RawMessage, 4)
		}
		st.Custom[name] = raw
	})
}

// GetCustom decodes the custom value name of key into T.
// Returns false if the key or name is absent.
func GetCustom[T any](s *Store, key Key, name string) (T, bool, error) {
	var zero T

	if err := s.Err(); err != nil {
		return zero, false, err
	}

	s.mu.RLock()
	var raw json.RawMessage
	if st, ok := s.states[key]; ok {
		raw = st.Custom[name]
	}
	s.mu.RUnlock()

	if raw == nil {
		return zero, false, nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, fmt.Errorf("decoding custom %q for %q: %w", name, key, err)
	}
	return v, true, nil
}

// SetTriggers sets the remaining trigger budget for key.
func (s *Store) SetTriggers(key Key, n int) error {
	return s.UpdateState(key, func(st *State) {
		st.TriggersRemaining = &n
	})
}

// ConsumeTrigger decrements the trigger budget of key.
// Returns false when no budget is set or it is exhausted.
func (s *Store) ConsumeTrigger(key Key) (remaining int, ok bool, err error) {
	err = s.UpdateState(key, func(st *State) {
		if st.TriggersRemaining == nil || *st.TriggersRemaining <= 0 {
			return
		}
		*st.TriggersRemaining--
		remaining = *st.TriggersRemaining
		ok = true
	})
	return remaining, ok, err
}

// Reset drops the state of key, returning it to defaults.
func (s *Store) Reset(key Key) error {
	if err := s.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, key)
	return nil
}

// ResetAll drops every entry.
func (s *Store) ResetAll() error {
	if err := s.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.states)
	return nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []Key {
	s.mu.RLock()
	keys := make([]Key, 0, len(s.states))
	for k := range s.states {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	slices.Sort(keys)
	return keys
}

// Snapshot returns a deep copy of every entry.
func (s *Store) Snapshot() (Snapshot, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(Snapshot, len(s.states))
	for k, st := range s.states {
		snap[k] = st.Clone()
	}
	return snap, nil
}

// Restore replaces the whole store content with snap.
func (s *Store) Restore(snap Snapshot) error {
	if err := s.Err(); err != nil {
		return err
	}

	states := make(map[Key]*State, len(snap))
	for k, st := range snap {
		c := st.Clone()
		states[k] = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states = states
	return nil
}
