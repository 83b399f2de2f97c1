// Package store holds the single authoritative state document and persists
// it through a Backend after every accepted change.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

// MutateFunc transforms a private copy of the state. Returning an error
// discards the copy.
type MutateFunc func(state *models.AppState) error

// Store is the state container. All changes go through Mutate or Replace,
// which run one at a time and persist before returning.
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  logging.Logger
	state   models.AppState
}

// New creates a Store over backend. Call Load before use.
func New(backend Backend, logger logging.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logging.OrDefault(logger),
		state:   models.DefaultState(),
	}
}

// Load reads the last persisted document and makes it current. A missing
// document yields the defaults. A corrupt one yields the defaults merged
// with whatever members could be read. A backend failure is returned as an
// error and leaves the current document in place, so a later Mutate never
// writes defaults over data that could not be read.
func (s *Store) Load(ctx context.Context) (models.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to read persisted document, keeping current state")
		return s.state.Clone(), err
	}
	s.state = state
	return state.Clone(), nil
}

// Peek reads the persisted document without making it current. On a
// backend failure it returns the current document and the error.
func (s *Store) Peek(ctx context.Context) (models.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read(ctx)
	if err != nil {
		return s.state.Clone(), err
	}
	return state, nil
}

func (s *Store) read(ctx context.Context) (models.AppState, error) {
	data, err := s.backend.Read(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		s.logger.Debug("No persisted document, starting from defaults")
		return models.DefaultState(), nil
	case err != nil:
		return models.AppState{}, fmt.Errorf("failed to read persisted document: %w", err)
	}

	state, dropped := DecodeLenient(data, s.logger)
	if len(dropped) > 0 {
		s.logger.WithField(logging.FieldCount, len(dropped)).Warn("Recovered persisted document with defaults")
	}
	s.logger.WithFields(
		logging.Field{Key: "profiles", Value: len(state.Profiles)},
		logging.Field{Key: "transactions", Value: len(state.Transactions)},
		logging.Field{Key: logging.FieldBytes, Value: len(data)},
	).Debug("Loaded persisted document")
	return state, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Mutate applies fn to a copy of the current state and persists the result.
// If fn or the write fails the current state is left untouched. The write
// happens even when fn changes nothing.
func (s *Store) Mutate(ctx context.Context, fn MutateFunc) (models.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.state.Clone()
	if err := fn(&draft); err != nil {
		return s.state.Clone(), err
	}
	draft.NormalizeActive()
	if err := s.persist(ctx, draft); err != nil {
		return s.state.Clone(), err
	}
	s.state = draft
	return draft.Clone(), nil
}

// Replace swaps the whole document for next and persists it.
func (s *Store) Replace(ctx context.Context, next models.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := next.Clone()
	fillEmpty(&draft)
	draft.NormalizeActive()
	if err := s.persist(ctx, draft); err != nil {
		return err
	}
	s.state = draft
	s.logger.WithField(logging.FieldCount, len(draft.Profiles)).Info("State document replaced")
	return nil
}

func (s *Store) persist(ctx context.Context, state models.AppState) error {
	start := time.Now()
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, data); err != nil {
		s.logger.WithError(err).Error("Failed to persist state")
		return fmt.Errorf("failed to persist state: %w", err)
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldBytes, Value: len(data)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()},
	).Debug("State persisted")
	return nil
}

// Close releases the backend if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
