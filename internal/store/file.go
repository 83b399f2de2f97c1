package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"fjacquet/khoroch-khata/internal/logging"
	"fjacquet/khoroch-khata/internal/models"
	"fjacquet/khoroch-khata/internal/validation"
)

// FileBackend persists the document as a single JSON file. Writes go to a
// temporary sibling first and are renamed into place.
type FileBackend struct {
	fs     afero.Fs
	path   string
	logger logging.Logger
}

// NewFileBackend returns a FileBackend storing at path on fs. A nil fs
// means the real OS filesystem.
func NewFileBackend(fs afero.Fs, path string, logger logging.Logger) *FileBackend {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileBackend{fs: fs, path: path, logger: logging.OrDefault(logger)}
}

// Path returns the file location.
func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := b.fs.Stat(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error checking data file: %w", err)
	}
	if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
		b.logger.WithField(logging.FieldFile, b.path).Warn(err.Error())
	}

	data, err := afero.ReadFile(b.fs, b.path)
	if err != nil {
		return nil, fmt.Errorf("error reading data file: %w", err)
	}
	return data, nil
}

func (b *FileBackend) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(b.path)
	if err := b.fs.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	tmp := b.path + ".tmp"
	if err := afero.WriteFile(b.fs, tmp, data, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing data file: %w", err)
	}
	if err := b.fs.Rename(tmp, b.path); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("error replacing data file: %w", err)
	}
	return nil
}
