// Package selection is the one-shot hand-off slot between capturing a text
// selection and the popup that fact-checks it.
package selection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dtnitsch/sachai/models"
)

// ErrEmptySelection is returned when Put is given blank text.
var ErrEmptySelection = errors.New("selection is empty")

// Store holds at most one pending selection. Take reads and clears it in
// one step, so a selection is delivered once. Pending reports whether a
// selection is waiting without taking it.
type Store interface {
	Put(ctx context.Context, text string) error
	Take(ctx context.Context) (text string, ok bool, err error)
	Pending(ctx context.Context) (bool, error)
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.Mutex
	text    string
	pending bool
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put replaces any pending selection with text.
func (s *MemoryStore) Put(_ context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptySelection
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text, s.pending = text, true
	return nil
}

// Take returns the pending selection and clears the slot.
func (s *MemoryStore) Take(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending {
		return "", false, nil
	}
	text := s.text
	s.text, s.pending = "", false
	return text, true, nil
}

// Pending reports whether a selection is waiting.
func (s *MemoryStore) Pending(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, nil
}

// Open returns the store configured by cfg.
func Open(cfg models.SelectionConfig) (Store, error) {
	switch cfg.Backend {
	case models.BackendMemory, "":
		return NewMemoryStore(), nil
	case models.BackendFile:
		return NewFileStore(cfg.Path)
	case models.BackendRedis:
		return NewRedisStore(cfg.RedisURL, cfg.TTL)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidBackend, cfg.Backend)
	}
}
