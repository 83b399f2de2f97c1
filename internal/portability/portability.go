// Package portability moves the whole state document in and out of the
// application: pretty-printed backup files and pasteable sync codes.
package portability

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
	"fjacquet/khoroch-khata/internal/parsererror"
	"fjacquet/khoroch-khata/internal/store"
	"fjacquet/khoroch-khata/internal/validation"
)

// DefaultBackupPrefix starts every backup file name.
const DefaultBackupPrefix = "khoroch-khata-backup"

// Export renders the full state as indented UTF-8 JSON.
func Export(state models.AppState) ([]byte, error) {
	compact, err := store.Encode(state)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to format backup: %w", err)
	}
	return out.Bytes(), nil
}

// BackupFileName returns "<prefix>-<YYYY-MM-DD>.json" for now.
func BackupFileName(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultBackupPrefix
	}
	return fmt.Sprintf("%s-%s.json", prefix, dateutils.FromTime(now))
}

// Restore decodes a backup document. It fails without side effects when
// the document has no profiles list or has malformed members.
func Restore(data []byte, logger logging.Logger) (models.AppState, error) {
	state, err := decodeDocument("backup", data, logger)
	if err != nil {
		return models.AppState{}, fmt.Errorf("%w: %w", parsererror.ErrInvalidBackup, err)
	}
	return state, nil
}

// GenerateSyncCode encodes the state as standard base64 over its UTF-8 JSON
// form, so non-Latin text survives the trip.
func GenerateSyncCode(state models.AppState) (string, error) {
	data, err := store.Encode(state)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeSyncCode reverses GenerateSyncCode. Whitespace picked up while
// pasting is ignored.
func DecodeSyncCode(code string, logger logging.Logger) (models.AppState, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, code)
	if cleaned == "" {
		return models.AppState{}, fmt.Errorf("%w: empty code", parsererror.ErrInvalidSyncCode)
	}

	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		perr := &parsererror.ParseError{Source: "sync code", Err: err}
		return models.AppState{}, fmt.Errorf("%w: %w", parsererror.ErrInvalidSyncCode, perr)
	}
	state, err := decodeDocument("sync code", data, logger)
	if err != nil {
		return models.AppState{}, fmt.Errorf("%w: %w", parsererror.ErrInvalidSyncCode, err)
	}
	return state, nil
}

func decodeDocument(source string, data []byte, logger logging.Logger) (models.AppState, error) {
	if !json.Valid(data) {
		return models.AppState{}, &parsererror.ParseError{Source: source, Err: fmt.Errorf("not valid JSON")}
	}
	if !validation.HasProfilesList(data) {
		return models.AppState{}, &parsererror.InvalidFormatError{
			Source:   source,
			Expected: `an object with a "profiles" list`,
			Msg:      "missing profiles list",
		}
	}
	if fields := validation.ValidateDocument(data); len(fields) > 0 {
		return models.AppState{}, &parsererror.ValidationError{Source: source, Fields: fields}
	}
	state, _ := store.DecodeLenient(data, logger)
	return state, nil
}
