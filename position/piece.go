package position

import (
	"errors"
	"fmt"
)

// ErrInvalidPieceCode indicates a malformed piece code.
var ErrInvalidPieceCode = errors.New("position: invalid piece code")

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// Kind is the type of a piece. The zero Kind is not a piece.
type Kind uint8

const (
	NoKind Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// kindLetters maps a Kind to its uppercase initial.
const kindLetters = " KQRBNP"

func (k Kind) String() string {
	switch k {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Piece is a colored piece. The zero Piece is invalid.
type Piece struct {
	Color Color
	Kind  Kind
}

// Convenience values for the 12 pieces.
var (
	WhiteKing   = Piece{White, King}
	WhiteQueen  = Piece{White, Queen}
	WhiteRook   = Piece{White, Rook}
	WhiteBishop = Piece{White, Bishop}
	WhiteKnight = Piece{White, Knight}
	WhitePawn   = Piece{White, Pawn}
	BlackKing   = Piece{Black, King}
	BlackQueen  = Piece{Black, Queen}
	BlackRook   = Piece{Black, Rook}
	BlackBishop = Piece{Black, Bishop}
	BlackKnight = Piece{Black, Knight}
	BlackPawn   = Piece{Black, Pawn}
)

// Valid reports whether p is one of the 12 pieces.
func (p Piece) Valid() bool {
	return (p.Color == White || p.Color == Black) && p.Kind >= King && p.Kind <= Pawn
}

// Code returns the piece code: color initial plus kind letter, e.g. "wK", "bP".
func (p Piece) Code() string {
	if !p.Valid() {
		return ""
	}
	c := byte('w')
	if p.Color == Black {
		c = 'b'
	}
	return string([]byte{c, kindLetters[p.Kind]})
}

// Letter returns the notation letter: uppercase for white, lowercase for black.
func (p Piece) Letter() byte {
	if !p.Valid() {
		return 0
	}
	l := kindLetters[p.Kind]
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return l
}

func (p Piece) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Piece(%d,%d)", uint8(p.Color), uint8(p.Kind))
	}
	return p.Code()
}

// PieceFromLetter converts a notation letter ("K", "p", ...) into a Piece.
func PieceFromLetter(l byte) (Piece, bool) {
	color := White
	if l >= 'a' && l <= 'z' {
		color = Black
		l -= 'a' - 'A'
	}
	k := kindFromLetter(l)
	if k == NoKind {
		return Piece{}, false
	}
	return Piece{Color: color, Kind: k}, true
}

// ParsePieceCode parses a piece code such as "wK" or "bN".
func ParsePieceCode(s string) (Piece, error) {
	if len(s) != 2 {
		return Piece{}, fmt.Errorf("%w: %q", ErrInvalidPieceCode, s)
	}
	var color Color
	switch s[0] {
	case 'w':
		color = White
	case 'b':
		color = Black
	default:
		return Piece{}, fmt.Errorf("%w: %q", ErrInvalidPieceCode, s)
	}
	k := kindFromLetter(s[1])
	if k == NoKind {
		return Piece{}, fmt.Errorf("%w: %q", ErrInvalidPieceCode, s)
	}
	return Piece{Color: color, Kind: k}, nil
}

// IsValidPieceCode reports whether s is one of the 12 piece codes.
func IsValidPieceCode(s string) bool {
	_, err := ParsePieceCode(s)
	return err == nil
}

// MarshalText implements encoding.TextMarshaler using the piece code.
func (p Piece) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPieceCode, p)
	}
	return []byte(p.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Piece) UnmarshalText(text []byte) error {
	parsed, err := ParsePieceCode(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func kindFromLetter(l byte) Kind {
	for k := King; k <= Pawn; k++ {
		if kindLetters[k] == l {
			return k
		}
	}
	return NoKind
}
