package position

import (
	"errors"
	"fmt"
	"maps"
	"sort"
)

// ErrInvalidPosition indicates a position holding a bad square or piece.
var ErrInvalidPosition = errors.New("position: invalid position")

// Position maps occupied squares to pieces. Absent squares are empty.
// Any subset of squares may be occupied.
type Position map[Square]Piece

// Clone returns an independent copy of p. Clone of nil is an empty,
// non-nil Position.
func (p Position) Clone() Position {
	out := make(Position, len(p))
	for sq, pc := range p {
		out[sq] = pc
	}
	return out
}

// Equal reports whether p and other place the same pieces on the same squares.
func (p Position) Equal(other Position) bool {
	return maps.Equal(p, other)
}

// Validate returns an error wrapping ErrInvalidPosition if any square or
// piece in p is out of range.
func (p Position) Validate() error {
	for sq, pc := range p {
		if !sq.Valid() {
			return fmt.Errorf("%w: %w: %d", ErrInvalidPosition, ErrInvalidSquare, uint8(sq))
		}
		if !pc.Valid() {
			return fmt.Errorf("%w: %w on %s: %v", ErrInvalidPosition, ErrInvalidPieceCode, sq, pc)
		}
	}
	return nil
}

// Squares returns the occupied squares in natural order.
func (p Position) Squares() []Square {
	out := make([]Square, 0, len(p))
	for sq := range p {
		out = append(out, sq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Closest returns the nearest square to origin, origin excluded, that holds
// piece. Ties resolve in natural square order.
func (p Position) Closest(piece Piece, origin Square) (Square, bool) {
	if !origin.Valid() {
		return 0, false
	}
	for _, sq := range rings[origin] {
		if pc, ok := p[sq]; ok && pc == piece {
			return sq, true
		}
	}
	return 0, false
}

// Count returns the number of occupied squares.
func (p Position) Count() int {
	return len(p)
}

// FromMap builds a Position from square-name to piece-code strings, as found
// in decoded JSON. It fails on the first bad key or value.
func FromMap(m map[string]string) (Position, error) {
	p := make(Position, len(m))
	for k, v := range m {
		sq, err := ParseSquare(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
		}
		pc, err := ParsePieceCode(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
		}
		p[sq] = pc
	}
	return p, nil
}

// IsValidPosition reports whether every key of m is a square name and every
// value a piece code.
func IsValidPosition(m map[string]string) bool {
	if m == nil {
		return false
	}
	_, err := FromMap(m)
	return err == nil
}

// ToMap returns p as square-name to piece-code strings.
func (p Position) ToMap() map[string]string {
	out := make(map[string]string, len(p))
	for sq, pc := range p {
		out[sq.String()] = pc.Code()
	}
	return out
}
