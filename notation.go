package chessboard

import (
	"fmt"
	"strings"

	"github.com/discochess/chessboard/internal/fen"
	"github.com/discochess/chessboard/position"
)

// StartFEN is the placement field of the standard starting position.
const StartFEN = fen.Start

// DecodeFEN parses the placement field of a FEN string. Fields after the
// first whitespace are ignored. Malformed input fails with
// ErrInvalidNotation.
func DecodeFEN(text string) (position.Position, error) {
	return fen.Decode(text)
}

// EncodeFEN returns the canonical placement field for p.
func EncodeFEN(p position.Position) (string, error) {
	return fen.Encode(p)
}

// ValidFEN reports whether text decodes.
func ValidFEN(text string) bool {
	return fen.Valid(text)
}

// NormalizeFEN rewrites text with minimal empty-run digits and no trailing
// fields.
func NormalizeFEN(text string) (string, error) {
	return fen.Normalize(text)
}

// StartPosition returns a fresh copy of the standard starting position.
func StartPosition() position.Position {
	p, err := fen.Decode(fen.Start)
	if err != nil {
		panic("chessboard: start position does not decode: " + err.Error())
	}
	return p
}

// ParseMove parses a move of the form "e2-e4".
func ParseMove(s string) (from, to position.Square, err error) {
	src, dst, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	if from, err = position.ParseSquare(src); err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	if to, err = position.ParseSquare(dst); err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	return from, to, nil
}
