package badgerstore

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/discochess/chessboard/internal/store"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveLoad(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	data := []byte(`{"id":"board-1","fen":"8/8/8/8/8/8/8/8"}`)
	if err := s.Save(ctx, "board-1", data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, "board-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Load() = %q, want %q", got, data)
	}
}

func TestStore_LoadNotFound(t *testing.T) {
	s := openTest(t)
	_, err := s.Load(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestStore_InvalidID(t *testing.T) {
	s := openTest(t)
	if err := s.Save(context.Background(), "a b", nil); !errors.Is(err, store.ErrInvalidID) {
		t.Errorf("Save() error = %v, want ErrInvalidID", err)
	}
}

func TestStore_List(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		if err := s.Save(ctx, id, []byte(id)); err != nil {
			t.Fatalf("Save(%q) error = %v", id, err)
		}
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Persists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Save(ctx, "kept", []byte("data")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	got, err := s.Load(ctx, "kept")
	if err != nil {
		t.Fatalf("Load() after reopen error = %v", err)
	}
	if string(got) != "data" {
		t.Errorf("Load() = %q, want %q", got, "data")
	}
}
