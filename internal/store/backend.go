package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by a Backend when nothing has been persisted yet.
var ErrNotFound = errors.New("no persisted document")

// Backend is a single durable key-value slot holding the encoded document.
// Write must be durable by the time it returns.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// MemoryBackend keeps the document in memory. It is used by tests and by
// the "memory" storage backend for throwaway sessions.
type MemoryBackend struct {
	mu       sync.Mutex
	data     []byte
	writes   int
	writeErr error
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// NewMemoryBackendWith returns a MemoryBackend pre-seeded with data.
func NewMemoryBackendWith(data []byte) *MemoryBackend {
	return &MemoryBackend{data: append([]byte(nil), data...)}
}

func (m *MemoryBackend) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryBackend) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Writes returns how many successful writes happened.
func (m *MemoryBackend) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Bytes returns a copy of the stored document.
func (m *MemoryBackend) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// FailWrites makes every later Write return err. Pass nil to recover.
func (m *MemoryBackend) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}
