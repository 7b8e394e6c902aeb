// Package store defines the storage backend interface for board snapshots.
//
// Snapshots are small JSON documents keyed by board ID. Backends decide
// where the bytes live and whether they are compressed on the way.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no snapshot exists for an ID.
	ErrNotFound = errors.New("store: snapshot not found")

	// ErrInvalidID is returned for IDs that cannot be used as keys.
	ErrInvalidID = errors.New("store: invalid snapshot id")
)

// Store defines the interface for storage backends.
// Implementations handle key formats and storage details internally and are
// safe for concurrent use.
type Store interface {
	// Load returns the snapshot saved under id.
	Load(ctx context.Context, id string) ([]byte, error)

	// Save stores data under id, replacing any previous snapshot.
	Save(ctx context.Context, id string, data []byte) error

	// List returns the IDs of all stored snapshots in lexical order.
	List(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}

// ValidateID reports whether id is usable as a key on every backend:
// non-empty, at most 128 bytes, and made of letters, digits, '-', '_' or '.'.
func ValidateID(id string) error {
	if id == "" || len(id) > 128 || strings.HasPrefix(id, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return nil
}

// FileName returns the object name for id: "<id>.json" plus the codec
// extension, if any.
func FileName(id, ext string) string {
	name := id + ".json"
	if ext != "" {
		name += "." + ext
	}
	return name
}

// IDFromFileName reverses FileName. It reports false for names that do not
// belong to a snapshot.
func IDFromFileName(name, ext string) (string, bool) {
	if ext != "" {
		var ok bool
		if name, ok = strings.CutSuffix(name, "."+ext); !ok {
			return "", false
		}
	}
	id, ok := strings.CutSuffix(name, ".json")
	if !ok || ValidateID(id) != nil {
		return "", false
	}
	return id, true
}
