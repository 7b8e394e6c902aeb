// Package textrender draws boards as text. It backs the command line tool
// and is handy in tests where a real screen is not available.
package textrender

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/discochess/chessboard"
	"github.com/discochess/chessboard/position"
)

// DefaultSquareSize is the side of a square in pointer units.
const DefaultSquareSize = 10

// Renderer writes each drawn position as an 8x8 diagram. Animations are
// listed one transition per line and complete immediately.
type Renderer struct {
	w           io.Writer
	size        float64
	coordinates bool

	mu          sync.Mutex
	orientation chessboard.Orientation
	err         error
}

// Compile-time check that Renderer implements chessboard.DragRenderer.
var _ chessboard.DragRenderer = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithSquareSize sets the side of a square used for pointer hit testing.
func WithSquareSize(size float64) Option {
	return func(r *Renderer) {
		if size > 0 {
			r.size = size
		}
	}
}

// WithCoordinates toggles the file and rank labels around the diagram.
func WithCoordinates(on bool) Option {
	return func(r *Renderer) {
		r.coordinates = on
	}
}

// New creates a renderer writing to w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:           w,
		size:        DefaultSquareSize,
		coordinates: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Draw implements chessboard.Renderer.
func (r *Renderer) Draw(pos position.Position, orientation chessboard.Orientation) {
	r.mu.Lock()
	r.orientation = orientation
	r.mu.Unlock()
	r.write(Diagram(pos, orientation, r.coordinates))
}

// Animate implements chessboard.Renderer.
func (r *Renderer) Animate(transitions []chessboard.Transition, done func()) {
	var b strings.Builder
	for _, t := range transitions {
		fmt.Fprintf(&b, "~ %s\n", t)
	}
	r.write(b.String())
	for range transitions {
		done()
	}
}

// SquareBounds implements chessboard.Renderer using the orientation of the
// last drawn position.
func (r *Renderer) SquareBounds() map[position.Square]chessboard.Rect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return chessboard.GridBounds(r.size, r.orientation)
}

// Lift implements chessboard.DragRenderer.
func (r *Renderer) Lift(piece position.Piece, source chessboard.Location, x, y float64) {
	r.write(fmt.Sprintf("lift %s from %s\n", piece, source))
}

// Follow implements chessboard.DragRenderer. Pointer motion is not echoed.
func (r *Renderer) Follow(x, y float64, hover chessboard.Location) {}

// Snap implements chessboard.DragRenderer.
func (r *Renderer) Snap(piece position.Piece, dest position.Square, done func()) {
	r.write(fmt.Sprintf("snap %s to %s\n", piece, dest))
	done()
}

// Snapback implements chessboard.DragRenderer.
func (r *Renderer) Snapback(piece position.Piece, source position.Square, done func()) {
	r.write(fmt.Sprintf("snapback %s to %s\n", piece, source))
	done()
}

// Trash implements chessboard.DragRenderer.
func (r *Renderer) Trash(piece position.Piece) {
	r.write(fmt.Sprintf("trash %s\n", piece))
}

func (r *Renderer) write(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

// Diagram returns pos as eight lines of piece letters, with '.' for empty
// squares, seen from orientation.
func Diagram(pos position.Position, orientation chessboard.Orientation, coordinates bool) string {
	var b strings.Builder
	for row := 0; row < 8; row++ {
		rank := 7 - row
		if orientation == chessboard.BlackBottom {
			rank = row
		}
		if coordinates {
			fmt.Fprintf(&b, "%d ", rank+1)
		}
		for col := 0; col < 8; col++ {
			file := col
			if orientation == chessboard.BlackBottom {
				file = 7 - col
			}
			sq, _ := position.NewSquare(file, rank)
			if col > 0 {
				b.WriteByte(' ')
			}
			if piece, ok := pos[sq]; ok {
				b.WriteByte(piece.Letter())
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	if coordinates {
		files := "a b c d e f g h"
		if orientation == chessboard.BlackBottom {
			files = "h g f e d c b a"
		}
		b.WriteString("  " + files + "\n")
	}
	return b.String()
}
