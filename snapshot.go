package chessboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/chessboard/internal/fen"
	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/internal/store"
)

// Snapshot is the persisted form of a board.
type Snapshot struct {
	ID          string      `json:"id"`
	FEN         string      `json:"fen"`
	Orientation Orientation `json:"orientation"`
	SavedAt     time.Time   `json:"saved_at"`
}

// MarshalSnapshot encodes s as JSON.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSnapshot decodes and validates a snapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := store.ValidateID(s.ID); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if !fen.Valid(s.FEN) {
		return Snapshot{}, fmt.Errorf("decoding snapshot %s: %w: %q", s.ID, ErrInvalidNotation, s.FEN)
	}
	return s, nil
}

// Snapshot returns the board's current state.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		ID:          b.id,
		FEN:         b.FEN(),
		Orientation: b.orientation,
		SavedAt:     time.Now().UTC(),
	}
}

// Save persists the current position and orientation under the board ID.
func (b *Board) Save(ctx context.Context) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if b.store == nil {
		return ErrNoStore
	}

	snap := b.Snapshot()
	data, err := MarshalSnapshot(snap)
	if err != nil {
		return err
	}
	if err := b.store.Save(ctx, b.id, data); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	b.stats.IncCounter(stats.MetricSnapshotsSaved, 1)
	b.logger.Debug("snapshot saved", zap.String("fen", snap.FEN))
	return nil
}

// Restore loads the snapshot saved under the board ID and applies it
// without animation. It returns store.ErrNotFound if nothing was saved.
func (b *Board) Restore(ctx context.Context) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	if b.store == nil {
		return ErrNoStore
	}

	snap, err := loadSnapshot(ctx, b.store, b.id)
	if err != nil {
		return err
	}
	if err := b.apply(snap); err != nil {
		return err
	}

	b.stats.IncCounter(stats.MetricSnapshotsRestored, 1)
	b.logger.Debug("snapshot restored", zap.String("fen", snap.FEN), zap.Time("savedAt", snap.SavedAt))
	return nil
}

func (b *Board) apply(snap Snapshot) error {
	p, err := fen.Decode(snap.FEN)
	if err != nil {
		return err
	}
	if !snap.Orientation.valid() {
		return configErrorf("orientation %d", snap.Orientation)
	}
	b.orientation = snap.Orientation
	if !b.commit(p, commitInstant) {
		b.Redraw()
	}
	return nil
}

// WithRestore configures a board from the snapshot saved under id in st:
// the board uses st as its store, id as its ID, and starts from the saved
// position and orientation. When nothing is saved yet the board starts
// empty. Options after WithRestore override the restored state.
func WithRestore(ctx context.Context, st store.Store, id string) (Option, error) {
	snap, err := loadSnapshot(ctx, st, id)
	if errors.Is(err, store.ErrNotFound) {
		return optionFunc(func(o *options) {
			o.store = st
			o.id = id
		}), nil
	}
	if err != nil {
		return nil, err
	}

	return optionFunc(func(o *options) {
		o.store = st
		o.id = id
		o.fen, o.fenSet = snap.FEN, true
		o.position = nil
		o.orientation = snap.Orientation
	}), nil
}

func loadSnapshot(ctx context.Context, st store.Store, id string) (Snapshot, error) {
	data, err := st.Load(ctx, id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading snapshot %s: %w", id, err)
	}
	snap, err := UnmarshalSnapshot(data)
	if err != nil {
		return Snapshot{}, err
	}
	if snap.ID != id {
		return Snapshot{}, fmt.Errorf("loading snapshot %s: stored id is %s", id, snap.ID)
	}
	return snap, nil
}
