package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/discochess/chessboard/internal/store"
)

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	data := []byte(`{"id":"a"}`)
	if err := s.Save(ctx, "a", data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data[0] = 'X'

	got, err := s.Load(ctx, "a")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != `{"id":"a"}` {
		t.Errorf("Load() = %q, caller mutation leaked into store", got)
	}

	got[0] = 'Y'
	again, _ := s.Load(ctx, "a")
	if again[0] != '{' {
		t.Error("Load() returned shared slice")
	}
}

func TestStore_LoadNotFound(t *testing.T) {
	_, err := New().Load(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestStore_InvalidID(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.Save(ctx, "../x", nil); !errors.Is(err, store.ErrInvalidID) {
		t.Errorf("Save() error = %v, want ErrInvalidID", err)
	}
	if _, err := s.Load(ctx, ""); !errors.Is(err, store.ErrInvalidID) {
		t.Errorf("Load() error = %v, want ErrInvalidID", err)
	}
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	s := New()
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
