package cachedstore

import (
	"context"
	"errors"
	"testing"

	"github.com/discochess/chessboard/internal/store"
	"github.com/discochess/chessboard/internal/store/memstore"
)

// countingStore records how often the underlying store is reached.
type countingStore struct {
	store.Store
	loads   int
	failing bool
}

func (s *countingStore) Load(ctx context.Context, id string) ([]byte, error) {
	s.loads++
	return s.Store.Load(ctx, id)
}

func (s *countingStore) Save(ctx context.Context, id string, data []byte) error {
	if s.failing {
		return errors.New("backend unavailable")
	}
	return s.Store.Save(ctx, id, data)
}

func newTest(t *testing.T, capacity int) (*Store, *countingStore) {
	t.Helper()
	underlying := &countingStore{Store: memstore.New()}
	s, err := New(underlying, capacity, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s, underlying
}

func TestStore_CacheMissThenHit(t *testing.T) {
	s, underlying := newTest(t, 4)
	ctx := context.Background()

	if err := underlying.Store.Save(ctx, "a", []byte("underlying data")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		data, err := s.Load(ctx, "a")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if string(data) != "underlying data" {
			t.Errorf("Load() = %q, want %q", data, "underlying data")
		}
	}

	if underlying.loads != 1 {
		t.Errorf("underlying loads = %d, want 1", underlying.loads)
	}
	st := s.Stats()
	if st.Hits != 2 || st.Misses != 1 || st.Size != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss, size 1", st)
	}
}

func TestStore_SaveWritesThrough(t *testing.T) {
	s, underlying := newTest(t, 4)
	ctx := context.Background()

	if err := s.Save(ctx, "a", []byte("v1")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := underlying.Store.Load(ctx, "a"); err != nil {
		t.Errorf("underlying Load() error = %v, want write-through", err)
	}

	data, err := s.Load(ctx, "a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != "v1" || underlying.loads != 0 {
		t.Errorf("Load() = %q with %d underlying loads, want cached v1", data, underlying.loads)
	}
}

func TestStore_FailedSaveEvicts(t *testing.T) {
	s, underlying := newTest(t, 4)
	ctx := context.Background()

	if err := s.Save(ctx, "a", []byte("v1")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	underlying.failing = true
	if err := s.Save(ctx, "a", []byte("v2")); err == nil {
		t.Fatal("Save() expected error")
	}

	data, err := s.Load(ctx, "a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != "v1" {
		t.Errorf("Load() = %q, want the last persisted value v1", data)
	}
	if underlying.loads != 1 {
		t.Errorf("underlying loads = %d, want 1 after eviction", underlying.loads)
	}
}

func TestStore_NotFound(t *testing.T) {
	s, _ := newTest(t, 4)
	_, err := s.Load(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
	if s.Stats().Size != 0 {
		t.Error("not-found result should not be cached")
	}
}

func TestStore_Evicts(t *testing.T) {
	s, _ := newTest(t, 2)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, id, []byte(id)); err != nil {
			t.Fatalf("Save(%q) error = %v", id, err)
		}
	}
	if got := s.Stats().Size; got != 2 {
		t.Errorf("Stats().Size = %d, want 2", got)
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	if _, err := New(memstore.New(), 0, nil); err == nil {
		t.Error("New() with zero capacity should return error")
	}
}

func TestStats_HitRate(t *testing.T) {
	tests := []struct {
		name     string
		hits     int64
		misses   int64
		expected float64
	}{
		{"no requests", 0, 0, 0},
		{"all hits", 10, 0, 100},
		{"all misses", 0, 10, 0},
		{"75% hit rate", 3, 1, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stats{Hits: tt.hits, Misses: tt.misses}
			if got := s.HitRate(); got != tt.expected {
				t.Errorf("HitRate() = %v, want %v", got, tt.expected)
			}
		})
	}
}
