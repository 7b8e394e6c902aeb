// Package position models the squares, pieces and piece placements of a
// chessboard. It knows nothing about chess rules: a Position is plain
// square-to-piece bookkeeping.
package position

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidSquare indicates a malformed square name.
var ErrInvalidSquare = errors.New("position: invalid square")

// Square identifies one of the 64 board cells.
//
// Squares enumerate file-major: a1, a2, ..., a8, b1, ..., h8. That order is
// the natural order used wherever squares are scanned or tie-broken.
type Square uint8

// NumSquares is the number of squares on the board.
const NumSquares = 64

// All 64 squares in natural order.
const (
	A1 Square = iota
	A2
	A3
	A4
	A5
	A6
	A7
	A8
	B1
	B2
	B3
	B4
	B5
	B6
	B7
	B8
	C1
	C2
	C3
	C4
	C5
	C6
	C7
	C8
	D1
	D2
	D3
	D4
	D5
	D6
	D7
	D8
	E1
	E2
	E3
	E4
	E5
	E6
	E7
	E8
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	G1
	G2
	G3
	G4
	G5
	G6
	G7
	G8
	H1
	H2
	H3
	H4
	H5
	H6
	H7
	H8
)

const files = "abcdefgh"

// NewSquare returns the square at the given zero-based file (0 = a) and
// rank (0 = rank 1).
func NewSquare(file, rank int) (Square, bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0, false
	}
	return Square(file*8 + rank), true
}

// ParseSquare parses a square name such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Square(int(s[0]-'a')*8 + int(s[1]-'1')), nil
}

// IsValidSquare reports whether s names one of the 64 squares.
func IsValidSquare(s string) bool {
	_, err := ParseSquare(s)
	return err == nil
}

// Valid reports whether sq is in range.
func (sq Square) Valid() bool {
	return sq < NumSquares
}

// File returns the zero-based file index (0 = a).
func (sq Square) File() int {
	return int(sq) / 8
}

// Rank returns the zero-based rank index (0 = rank 1).
func (sq Square) Rank() int {
	return int(sq) % 8
}

// String returns the square name, e.g. "e4".
func (sq Square) String() string {
	if !sq.Valid() {
		return fmt.Sprintf("Square(%d)", uint8(sq))
	}
	return string([]byte{files[sq.File()], byte('1' + sq.Rank())})
}

// MarshalText implements encoding.TextMarshaler.
func (sq Square) MarshalText() ([]byte, error) {
	if !sq.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSquare, uint8(sq))
	}
	return []byte(sq.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (sq *Square) UnmarshalText(text []byte) error {
	parsed, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*sq = parsed
	return nil
}

// Distance returns the king-move (Chebyshev) distance between two squares.
func Distance(a, b Square) int {
	df := abs(a.File() - b.File())
	dr := abs(a.Rank() - b.Rank())
	if df >= dr {
		return df
	}
	return dr
}

// rings[o] lists every square but o by ascending distance from o.
var rings [NumSquares][]Square

func init() {
	for o := Square(0); o < NumSquares; o++ {
		ring := make([]Square, 0, NumSquares-1)
		for sq := Square(0); sq < NumSquares; sq++ {
			if sq != o {
				ring = append(ring, sq)
			}
		}
		origin := o
		sort.SliceStable(ring, func(i, j int) bool {
			return Distance(origin, ring[i]) < Distance(origin, ring[j])
		})
		rings[o] = ring
	}
}

// Ring returns the other 63 squares ordered by ascending distance from
// origin. Squares at equal distance keep their natural order.
func Ring(origin Square) []Square {
	if !origin.Valid() {
		return nil
	}
	out := make([]Square, len(rings[origin]))
	copy(out, rings[origin])
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
