// Package identity produces opaque unique identifiers for profiles,
// transactions and reminders.
package identity

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces unique opaque identifiers.
type Generator interface {
	NewID() string
}

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// SequenceGenerator issues predictable ids ("<prefix>-1", "<prefix>-2", ...).
// It is meant for tests and reproducible fixtures.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceGenerator returns a SequenceGenerator starting at 1.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &SequenceGenerator{prefix: prefix}
}

// NewID returns the next id in the sequence.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
