// Package ledger is the single mutation entry point over the state store.
// Every exported method validates its input, applies one change to a copy
// of the document and persists it before returning.
package ledger

import (
	"context"
	"errors"

	"fjacquet/khoroch-khata/internal/identity"
	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
	"fjacquet/khoroch-khata/internal/store"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrReminderNotFound     = errors.New("reminder not found")
	ErrCategoryExists       = errors.New("category already exists")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrInvalidCategoryName  = errors.New("category name cannot be empty")
	ErrInvalidProfileName   = errors.New("profile name cannot be empty")
	ErrNoActiveProfile      = errors.New("no active profile")
	ErrInvalidAmount        = errors.New("amount must not be negative")
	ErrEmailTaken           = errors.New("email already belongs to another profile")
	ErrInvalidRemindTime    = errors.New("remind time must be HH:mm")
	ErrInvalidTheme         = errors.New("theme must be dark or light")
	ErrInvalidCurrencyPlace = errors.New("currency position must be prefix or suffix")
)

// Service exposes the mutations of the state document.
type Service struct {
	store  *store.Store
	ids    identity.Generator
	logger logging.Logger
}

// NewService creates a Service writing through st.
func NewService(st *store.Store, ids identity.Generator, logger logging.Logger) *Service {
	if ids == nil {
		ids = identity.UUIDGenerator{}
	}
	return &Service{
		store:  st,
		ids:    ids,
		logger: logging.OrDefault(logger),
	}
}

// State returns a copy of the current document.
func (s *Service) State() models.AppState {
	return s.store.Snapshot()
}

func (s *Service) mutate(ctx context.Context, op string, fn store.MutateFunc) (models.AppState, error) {
	state, err := s.store.Mutate(ctx, fn)
	log := s.logger.WithField(logging.FieldOperation, op)
	if err != nil {
		log.WithError(err).Debug("Mutation rejected")
		return state, err
	}
	log.Debug("Mutation applied")
	return state, nil
}

func activeProfile(st *models.AppState) (*models.Profile, error) {
	i := st.ProfileIndex(st.ActiveProfileID)
	if i < 0 {
		return nil, ErrNoActiveProfile
	}
	return &st.Profiles[i], nil
}
