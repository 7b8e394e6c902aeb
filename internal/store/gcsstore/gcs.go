// Package gcsstore implements a Google Cloud Storage snapshot store.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/discochess/chessboard/internal/codec"
	"github.com/discochess/chessboard/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is a Google Cloud Storage backend.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	codec  codec.Codec
}

// New creates a new GCS store.
// The bucket must already exist.
// The codec handles compression/decompression.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client: client,
		bucket: client.Bucket(bucketName),
		codec:  c,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// Load reads and decompresses the snapshot saved under id.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := store.ValidateID(id); err != nil {
		return nil, err
	}

	reader, err := s.bucket.Object(s.snapshotKey(id)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	data, err := codec.Decompress(s.codec, reader)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	return data, nil
}

// Save compresses data and uploads it under id.
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

	w := s.bucket.Object(s.snapshotKey(id)).NewWriter(ctx)
	w.ContentType = "application/json"
	if ext := s.codec.Extension(); ext != "" {
		w.ContentType = "application/octet-stream"
	}
	if _, err := w.Write(compressed); err != nil {
		w.Close()
		return fmt.Errorf("uploading snapshot %s: %w", id, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing snapshot %s: %w", id, err)
	}
	return nil
}

// List returns the IDs of snapshots under the prefix.
func (s *Store) List(ctx context.Context) ([]string, error) {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: s.dir()})

	var ids []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing snapshots: %w", err)
		}
		if id, ok := s.idFromKey(attrs.Name); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) dir() string {
	return s.prefix + "snapshots/"
}

// snapshotKey returns the full object key for a snapshot.
func (s *Store) snapshotKey(id string) string {
	return s.dir() + store.FileName(id, s.codec.Extension())
}

// idFromKey reverses snapshotKey for keys directly under the snapshot
// directory.
func (s *Store) idFromKey(key string) (string, bool) {
	name, ok := strings.CutPrefix(key, s.dir())
	if !ok || path.Base(name) != name {
		return "", false
	}
	return store.IDFromFileName(name, s.codec.Extension())
}
