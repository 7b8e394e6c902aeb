// Package fen converts between positions and the piece placement field of
// FEN (Forsyth-Edwards Notation).
package fen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/discochess/chessboard/position"
)

// ErrInvalidFEN indicates the FEN string is malformed.
var ErrInvalidFEN = errors.New("fen: invalid notation")

// Start is the placement of the standard starting position.
const Start = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// Decode parses the placement field of a FEN string. Anything after the
// first whitespace (side to move, castling rights, counters) is ignored.
func Decode(fen string) (position.Position, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidFEN)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: %d ranks, want 8", ErrInvalidFEN, len(ranks))
	}

	pos := make(position.Position)
	for i, rank := range ranks {
		r := 7 - i
		file := 0
		for j := 0; j < len(rank); j++ {
			ch := rank[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := position.PieceFromLetter(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q in rank %d", ErrInvalidFEN, ch, r+1)
			}
			sq, ok := position.NewSquare(file, r)
			if !ok {
				return nil, fmt.Errorf("%w: rank %d wider than 8", ErrInvalidFEN, r+1)
			}
			pos[sq] = piece
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d files, want 8", ErrInvalidFEN, r+1, file)
		}
	}

	return pos, nil
}

// Encode returns the canonical placement field for pos, using the widest
// empty-run digits possible.
func Encode(pos position.Position) (string, error) {
	if err := pos.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(71)
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq, _ := position.NewSquare(f, r)
			piece, ok := pos[sq]
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteByte(piece.Letter())
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			b.WriteByte('/')
		}
	}

	return b.String(), nil
}

// Valid reports whether fen has a well-formed placement field.
func Valid(fen string) bool {
	_, err := Decode(fen)
	return err == nil
}

// Normalize returns the canonical placement field of fen, dropping any
// trailing fields and collapsing runs of empty squares.
func Normalize(fen string) (string, error) {
	pos, err := Decode(fen)
	if err != nil {
		return "", err
	}
	return Encode(pos)
}

// Expand replaces every empty-run digit in a placement field with that many
// '1' characters, so each rank is exactly one byte per file.
func Expand(placement string) string {
	var b strings.Builder
	b.Grow(71)
	for i := 0; i < len(placement); i++ {
		ch := placement[i]
		if ch >= '2' && ch <= '8' {
			b.WriteString(strings.Repeat("1", int(ch-'0')))
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// Squeeze is the inverse of Expand: it collapses runs of '1' into single
// digits, longest run first.
func Squeeze(placement string) string {
	for n := 8; n >= 2; n-- {
		placement = strings.ReplaceAll(placement, strings.Repeat("1", n), string(rune('0'+n)))
	}
	return placement
}
