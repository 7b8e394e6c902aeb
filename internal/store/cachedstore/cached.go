// Package cachedstore provides a read-through LRU cache in front of another
// snapshot store.
//
// Remote backends pay a round trip per Load; boards that restore the same
// snapshot repeatedly (a CLI replaying into one board ID, an fx app
// restarting its board) are served from memory instead.
package cachedstore

import (
	"context"
	"slices"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Stats contains cache statistics.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int // Current number of entries
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Store wraps another Store with caching.
type Store struct {
	underlying store.Store
	cache      *lru.Cache[string, []byte]
	collector  stats.Collector

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cached store holding up to capacity snapshots.
// The collector is optional; if nil, a no-op collector is used.
func New(underlying store.Store, capacity int, collector stats.Collector) (*Store, error) {
	cache, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, err
	}
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Store{
		underlying: underlying,
		cache:      cache,
		collector:  collector,
	}, nil
}

// Load reads a snapshot, checking the cache first.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	if data, ok := s.cache.Get(id); ok {
		s.hits.Add(1)
		s.collector.IncCounter(stats.MetricSnapshotCacheHits, 1)
		return slices.Clone(data), nil
	}

	s.misses.Add(1)
	s.collector.IncCounter(stats.MetricSnapshotCacheMisses, 1)

	data, err := s.underlying.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	s.put(id, data)
	return data, nil
}

// Save writes through to the underlying store and refreshes the cache
// entry on success.
func (s *Store) Save(ctx context.Context, id string, data []byte) error {
	if err := s.underlying.Save(ctx, id, data); err != nil {
		s.cache.Remove(id)
		return err
	}
	s.put(id, data)
	return nil
}

// List is not cached: other writers may add snapshots.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.underlying.List(ctx)
}

// Close closes the underlying store.
func (s *Store) Close() error {
	s.cache.Purge()
	return s.underlying.Close()
}

// Stats returns cache statistics.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Size:   s.cache.Len(),
	}
}

func (s *Store) put(id string, data []byte) {
	s.cache.Add(id, slices.Clone(data))
	s.collector.SetGauge(stats.MetricSnapshotCacheSize, int64(s.cache.Len()))
}
