// Package diskstore implements a filesystem snapshot store.
//
// Snapshots live under <root>/snapshots/<id>.json[.<ext>]. Writes go to a
// temporary file in the same directory and are renamed into place, so a
// reader never observes a half-written snapshot.
package diskstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/discochess/chessboard/internal/codec"
	"github.com/discochess/chessboard/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is a disk-based filesystem storage backend.
type Store struct {
	root  string
	codec codec.Codec
}

// New creates a new disk store rooted at the given directory.
// The directory must exist; the snapshots subdirectory is created on demand.
// The codec handles compression/decompression.
func New(root string, codec codec.Codec) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Store{
		root:  root,
		codec: codec,
	}, nil
}

// Load reads and decompresses the snapshot saved under id.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := store.ValidateID(id); err != nil {
		return nil, err
	}

	compressed, err := os.ReadFile(s.snapshotPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	data, err := codec.Decompress(s.codec, bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	return data, nil
}

// Save compresses data and writes it atomically under id.
func (s *Store) Save(ctx context.Context, id string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateID(id); err != nil {
		return err
	}

	compressed, err := codec.Compress(s.codec, data)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", id, err)
	}

	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.snapshotPath(id)); err != nil {
		return fmt.Errorf("renaming snapshot: %w", err)
	}
	return nil
}

// List returns the IDs of snapshots in the directory. Files written with a
// different codec are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := store.IDFromFileName(e.Name(), s.codec.Extension()); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

func (s *Store) dir() string {
	return filepath.Join(s.root, "snapshots")
}

// snapshotPath returns the filesystem path for a snapshot.
func (s *Store) snapshotPath(id string) string {
	return filepath.Join(s.dir(), store.FileName(id, s.codec.Extension()))
}
