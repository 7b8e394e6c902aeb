package chessboard

import (
	"github.com/discochess/chessboard/position"
)

// fakeRenderer records what the board asks it to draw. With hold set,
// animation completions are kept until finish is called.
type fakeRenderer struct {
	hold         bool
	bounds       map[position.Square]Rect
	draws        []string
	orientations []Orientation
	animations   [][]Transition
	pending      []func()
}

var _ Renderer = (*fakeRenderer)(nil)

func (r *fakeRenderer) Draw(p position.Position, o Orientation) {
	s, err := EncodeFEN(p)
	if err != nil {
		panic(err)
	}
	r.draws = append(r.draws, s)
	r.orientations = append(r.orientations, o)
}

func (r *fakeRenderer) Animate(transitions []Transition, done func()) {
	r.animations = append(r.animations, transitions)
	for range transitions {
		if r.hold {
			r.pending = append(r.pending, done)
		} else {
			done()
		}
	}
}

func (r *fakeRenderer) SquareBounds() map[position.Square]Rect {
	return r.bounds
}

// finish completes every held transition.
func (r *fakeRenderer) finish() {
	pending := r.pending
	r.pending = nil
	for _, done := range pending {
		done()
	}
}

func (r *fakeRenderer) lastDraw() string {
	if len(r.draws) == 0 {
		return ""
	}
	return r.draws[len(r.draws)-1]
}

// fakeDragRenderer also records drag visuals. With holdSnaps set, snap
// and snapback completions wait for finishSnaps.
type fakeDragRenderer struct {
	fakeRenderer
	holdSnaps bool
	calls     []string
	snaps     []func()
}

var _ DragRenderer = (*fakeDragRenderer)(nil)

func (r *fakeDragRenderer) Lift(piece position.Piece, source Location, x, y float64) {
	r.calls = append(r.calls, "lift "+piece.Code()+" "+source.String())
}

func (r *fakeDragRenderer) Follow(x, y float64, hover Location) {
	r.calls = append(r.calls, "follow "+hover.String())
}

func (r *fakeDragRenderer) Snap(piece position.Piece, dest position.Square, done func()) {
	r.calls = append(r.calls, "snap "+piece.Code()+" "+dest.String())
	r.complete(done)
}

func (r *fakeDragRenderer) Snapback(piece position.Piece, source position.Square, done func()) {
	r.calls = append(r.calls, "snapback "+piece.Code()+" "+source.String())
	r.complete(done)
}

func (r *fakeDragRenderer) Trash(piece position.Piece) {
	r.calls = append(r.calls, "trash "+piece.Code())
}

func (r *fakeDragRenderer) complete(done func()) {
	if r.holdSnaps {
		r.snaps = append(r.snaps, done)
		return
	}
	done()
}

func (r *fakeDragRenderer) finishSnaps() {
	snaps := r.snaps
	r.snaps = nil
	for _, done := range snaps {
		done()
	}
}
