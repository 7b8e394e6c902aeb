package chessboard

import (
	"github.com/discochess/chessboard/position"
)

// Rect is a square's bounding box in pointer coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether (x, y) lies inside r. The left and top edges
// belong to r, the right and bottom edges to the neighbour.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Renderer draws the board. The Board calls it from its own event loop and
// never concurrently.
type Renderer interface {
	// Draw shows pos immediately.
	Draw(pos position.Position, orientation Orientation)

	// Animate runs transitions and calls done once per transition as each
	// finishes. done may be called before Animate returns.
	Animate(transitions []Transition, done func())

	// SquareBounds returns the on-screen box of every square. The Board
	// reads it once at the start of each drag.
	SquareBounds() map[position.Square]Rect
}

// DragRenderer is implemented by renderers that show the piece under the
// pointer. Renderers without it get no drag visuals.
type DragRenderer interface {
	Renderer

	// Lift picks piece up from source at (x, y).
	Lift(piece position.Piece, source Location, x, y float64)

	// Follow moves the lifted piece to (x, y); hover is the location under
	// the pointer.
	Follow(x, y float64, hover Location)

	// Snap settles the lifted piece on dest and calls done.
	Snap(piece position.Piece, dest position.Square, done func())

	// Snapback returns the lifted piece to source and calls done.
	Snapback(piece position.Piece, source position.Square, done func())

	// Trash discards the lifted piece.
	Trash(piece position.Piece)
}

// noopRenderer has no screen; animations complete immediately.
type noopRenderer struct{}

var _ Renderer = noopRenderer{}

func (noopRenderer) Draw(position.Position, Orientation) {}

func (noopRenderer) Animate(transitions []Transition, done func()) {
	for range transitions {
		done()
	}
}

func (noopRenderer) SquareBounds() map[position.Square]Rect { return nil }

// GridBounds lays the 64 squares out as a size×size grid with the origin at
// the top-left corner, as seen from orientation. Renderers with a regular
// grid can return it from SquareBounds.
func GridBounds(size float64, orientation Orientation) map[position.Square]Rect {
	bounds := make(map[position.Square]Rect, position.NumSquares)
	for sq := position.A1; sq <= position.H8; sq++ {
		col, row := sq.File(), 7-sq.Rank()
		if orientation == BlackBottom {
			col, row = 7-col, 7-row
		}
		bounds[sq] = Rect{X: float64(col) * size, Y: float64(row) * size, Width: size, Height: size}
	}
	return bounds
}

// locate returns the square under (x, y), or OffBoard.
func locate(bounds map[position.Square]Rect, x, y float64) Location {
	for sq, r := range bounds {
		if r.Contains(x, y) {
			return At(sq)
		}
	}
	return OffBoard
}
