package portability

import (
	"context"

	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
	"fjacquet/khoroch-khata/internal/store"
)

// Service applies backups and sync codes to a store. A rejected payload
// never reaches the store.
type Service struct {
	store  *store.Store
	logger logging.Logger
}

// NewService creates a Service over st.
func NewService(st *store.Store, logger logging.Logger) *Service {
	return &Service{store: st, logger: logging.OrDefault(logger)}
}

// Backup returns the current state as a backup document.
func (s *Service) Backup() ([]byte, error) {
	return Export(s.store.Snapshot())
}

// SyncCode returns the current state as a sync code.
func (s *Service) SyncCode() (string, error) {
	return GenerateSyncCode(s.store.Snapshot())
}

// RestoreBackup replaces the whole state with the backup in data.
func (s *Service) RestoreBackup(ctx context.Context, data []byte) (models.AppState, error) {
	state, err := Restore(data, s.logger)
	if err != nil {
		s.logger.WithError(err).Warn("Backup rejected")
		return models.AppState{}, err
	}
	return s.replace(ctx, "restore_backup", state)
}

// ImportSyncCode replaces the whole state with the one carried by code.
func (s *Service) ImportSyncCode(ctx context.Context, code string) (models.AppState, error) {
	state, err := DecodeSyncCode(code, s.logger)
	if err != nil {
		s.logger.WithError(err).Warn("Sync code rejected")
		return models.AppState{}, err
	}
	return s.replace(ctx, "import_sync_code", state)
}

func (s *Service) replace(ctx context.Context, op string, state models.AppState) (models.AppState, error) {
	if err := s.store.Replace(ctx, state); err != nil {
		return models.AppState{}, err
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: op},
		logging.Field{Key: logging.FieldCount, Value: len(state.Transactions)},
	).Info("State replaced from import")
	return s.store.Snapshot(), nil
}
