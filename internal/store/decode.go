package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
)

// DecodeLenient turns a persisted document into a state. It never fails:
// anything unreadable falls back to the default document, and every
// top-level member that does decode is merged over those defaults. The
// returned slice names the members that were discarded.
func DecodeLenient(data []byte, logger logging.Logger) (models.AppState, []string) {
	logger = logging.OrDefault(logger)
	state := models.DefaultState()

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		logger.WithError(err).Warn("Persisted document is unreadable, using defaults")
		return state, []string{"$"}
	}

	targets := map[string]func(json.RawMessage) error{
		"profiles":             func(r json.RawMessage) error { return decodeFresh(r, &state.Profiles) },
		"activeProfileId":      func(r json.RawMessage) error { return decodeFresh(r, &state.ActiveProfileID) },
		"transactions":         func(r json.RawMessage) error { return decodeFresh(r, &state.Transactions) },
		"reminders":            func(r json.RawMessage) error { return decodeFresh(r, &state.Reminders) },
		"notificationSettings": func(r json.RawMessage) error { return mergeInto(r, &state.NotificationSettings) },
		"categories":           func(r json.RawMessage) error { return mergeCategories(r, &state.Categories) },
		"theme":                func(r json.RawMessage) error { return decodeFresh(r, &state.Theme) },
		"accentColor":          func(r json.RawMessage) error { return decodeFresh(r, &state.AccentColor) },
		"currency":             func(r json.RawMessage) error { return mergeInto(r, &state.Currency) },
	}

	var dropped []string
	for _, key := range memberOrder {
		raw, ok := members[key]
		if !ok || isNull(raw) {
			continue
		}
		if err := targets[key](raw); err != nil {
			logger.WithFields(
				logging.Field{Key: logging.FieldKey, Value: key},
				logging.Field{Key: logging.FieldError, Value: err.Error()},
			).Warn("Discarding unreadable member of persisted document")
			dropped = append(dropped, key)
		}
	}
	for key := range members {
		if _, known := targets[key]; !known {
			logger.WithField(logging.FieldKey, key).Debug("Ignoring unknown member of persisted document")
		}
	}

	fillEmpty(&state)
	if state.NormalizeActive() {
		logger.WithField(logging.FieldProfileID, state.ActiveProfileID).
			Info("Active profile did not exist, switched to first profile")
	}
	return state, dropped
}

var memberOrder = []string{
	"profiles", "activeProfileId", "transactions", "reminders",
	"notificationSettings", "categories", "theme", "accentColor", "currency",
}

// decodeFresh decodes raw into a zero T and only then replaces *dst.
func decodeFresh[T any](raw json.RawMessage, dst *T) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}

// mergeInto decodes raw over a copy of *dst so members missing from raw keep
// their defaults. T must not hold slices or maps.
func mergeInto[T any](raw json.RawMessage, dst *T) error {
	v := *dst
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}

// mergeCategories keeps the default list for whichever of income/expense is
// absent.
func mergeCategories(raw json.RawMessage, dst *models.Categories) error {
	var v models.Categories
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	if v.Income != nil {
		dst.Income = v.Income
	}
	if v.Expense != nil {
		dst.Expense = v.Expense
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// fillEmpty replaces nil lists so the encoded document always carries [].
func fillEmpty(s *models.AppState) {
	if s.Profiles == nil {
		s.Profiles = []models.Profile{}
	}
	if s.Transactions == nil {
		s.Transactions = []models.Transaction{}
	}
	if s.Reminders == nil {
		s.Reminders = []models.Reminder{}
	}
	if s.Categories.Income == nil {
		s.Categories.Income = []models.Category{}
	}
	if s.Categories.Expense == nil {
		s.Categories.Expense = []models.Category{}
	}
}

// Encode serializes the state in its compact persisted form.
func Encode(state models.AppState) ([]byte, error) {
	fillEmpty(&state)
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}
