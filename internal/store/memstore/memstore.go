// Package memstore provides an in-memory snapshot store.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/discochess/chessboard/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store keeps snapshots in a map. It is intended for tests and for boards
// whose snapshots only need to outlive a single board instance.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		snapshots: make(map[string][]byte),
	}
}

// Load returns a copy of the snapshot saved under id.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	if err := store.ValidateID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.snapshots[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return slices.Clone(data), nil
}

// Save stores a copy of data so later caller mutations do not leak in.
func (s *Store) Save(ctx context.Context, id string, data []byte) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[id] = slices.Clone(data)
	return nil
}

// List returns the stored IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
