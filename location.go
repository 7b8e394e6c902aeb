package chessboard

import (
	"fmt"

	"github.com/discochess/chessboard/position"
)

// Location is where a drag starts, hovers or ends: one of the 64 squares,
// or one of the two off-board places.
type Location int8

const (
	// OffBoard is anywhere outside the grid.
	OffBoard Location = -1
	// Spare is the spare-pieces tray.
	Spare Location = -2
)

// At returns the location of a square.
func At(sq position.Square) Location {
	return Location(sq)
}

// ParseLocation parses a square name, "offboard" or "spare".
func ParseLocation(s string) (Location, error) {
	switch s {
	case "offboard":
		return OffBoard, nil
	case "spare":
		return Spare, nil
	}
	sq, err := position.ParseSquare(s)
	if err != nil {
		return OffBoard, err
	}
	return At(sq), nil
}

// Square returns the square for an on-board location.
func (l Location) Square() (position.Square, bool) {
	if l < 0 || l >= position.NumSquares {
		return 0, false
	}
	return position.Square(l), true
}

// OnBoard reports whether l is one of the 64 squares.
func (l Location) OnBoard() bool {
	_, ok := l.Square()
	return ok
}

func (l Location) String() string {
	switch l {
	case OffBoard:
		return "offboard"
	case Spare:
		return "spare"
	}
	if sq, ok := l.Square(); ok {
		return sq.String()
	}
	return fmt.Sprintf("Location(%d)", int8(l))
}

// Orientation is the side shown at the bottom of the board.
type Orientation uint8

const (
	WhiteBottom Orientation = iota
	BlackBottom
)

// ParseOrientation parses "white" or "black".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "white":
		return WhiteBottom, nil
	case "black":
		return BlackBottom, nil
	default:
		return WhiteBottom, fmt.Errorf("%w: orientation %q", ErrConfiguration, s)
	}
}

// Flipped returns the opposite orientation.
func (o Orientation) Flipped() Orientation {
	if o == WhiteBottom {
		return BlackBottom
	}
	return WhiteBottom
}

func (o Orientation) valid() bool {
	return o == WhiteBottom || o == BlackBottom
}

func (o Orientation) String() string {
	if o == BlackBottom {
		return "black"
	}
	return "white"
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
