package ledger

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

// validate runs a draft through the builder so every entry point shares the
// same rules.
func validate(draft models.Transaction) (models.Transaction, error) {
	if draft.Amount.IsNegative() {
		return models.Transaction{}, ErrInvalidAmount
	}
	if draft.PaymentMethod == "" {
		draft.PaymentMethod = models.PaymentCash
	}
	tx, err := models.NewTransactionBuilder().
		WithType(draft.Type).
		WithAmount(draft.Amount).
		WithCalendarDate(draft.Date).
		WithCategory(draft.Category).
		WithNote(draft.Note).
		WithPaymentMethod(draft.PaymentMethod).
		Build()
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}
	return tx, nil
}

// AddTransaction records draft for the active profile with a fresh id.
// New entries go first in stored order.
func (s *Service) AddTransaction(ctx context.Context, draft models.Transaction) (models.Transaction, error) {
	tx, err := validate(draft)
	if err != nil {
		return models.Transaction{}, err
	}
	_, err = s.mutate(ctx, "add_transaction", func(st *models.AppState) error {
		p, err := activeProfile(st)
		if err != nil {
			return err
		}
		tx.ID = s.ids.NewID()
		tx.ProfileID = p.ID
		st.Transactions = append([]models.Transaction{tx}, st.Transactions...)
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: logging.FieldCategory, Value: tx.Category},
		logging.Field{Key: logging.FieldType, Value: string(tx.Type)},
	).Debug("Transaction added")
	return tx, nil
}

// UpdateTransaction replaces every field of transaction id except its id
// and owning profile.
func (s *Service) UpdateTransaction(ctx context.Context, id string, draft models.Transaction) (models.Transaction, error) {
	tx, err := validate(draft)
	if err != nil {
		return models.Transaction{}, err
	}
	_, err = s.mutate(ctx, "update_transaction", func(st *models.AppState) error {
		for i := range st.Transactions {
			if st.Transactions[i].ID == id {
				tx.ID = id
				tx.ProfileID = st.Transactions[i].ProfileID
				st.Transactions[i] = tx
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// DeleteTransaction removes transaction id.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "delete_transaction", func(st *models.AppState) error {
		for i := range st.Transactions {
			if st.Transactions[i].ID == id {
				st.Transactions = append(st.Transactions[:i], st.Transactions[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	})
	return err
}

// IsNotFound reports whether err means the referenced record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrReminderNotFound) ||
		errors.Is(err, ErrCategoryNotFound)
}
