package chessboard

import (
	"encoding/json"
	"fmt"

	"github.com/discochess/chessboard/internal/plan"
	"github.com/discochess/chessboard/position"
)

// TransitionKind is the type of a Transition.
type TransitionKind uint8

const (
	// TransitionMove slides Piece from Source to Destination.
	TransitionMove TransitionKind = iota + 1
	// TransitionAdd makes Piece appear on Destination.
	TransitionAdd
	// TransitionClear removes Piece from Source.
	TransitionClear
)

func (k TransitionKind) String() string {
	return plan.Kind(k).String()
}

// MarshalText implements encoding.TextMarshaler.
func (k TransitionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Transition is one primitive visual change between two positions.
type Transition struct {
	Kind        TransitionKind  `json:"kind"`
	Source      position.Square `json:"source"`
	Destination position.Square `json:"destination"`
	Piece       position.Piece  `json:"piece"`
}

func (t Transition) String() string {
	switch t.Kind {
	case TransitionMove:
		return fmt.Sprintf("move %s %s-%s", t.Piece, t.Source, t.Destination)
	case TransitionAdd:
		return fmt.Sprintf("add %s %s", t.Piece, t.Destination)
	case TransitionClear:
		return fmt.Sprintf("clear %s %s", t.Piece, t.Source)
	default:
		return "unknown"
	}
}

// MarshalJSON omits the square a kind does not use.
func (t Transition) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind        TransitionKind   `json:"kind"`
		Source      *position.Square `json:"source,omitempty"`
		Destination *position.Square `json:"destination,omitempty"`
		Piece       position.Piece   `json:"piece"`
	}
	w := wire{Kind: t.Kind, Piece: t.Piece}
	if t.Kind == TransitionMove || t.Kind == TransitionClear {
		w.Source = &t.Source
	}
	if t.Kind == TransitionMove || t.Kind == TransitionAdd {
		w.Destination = &t.Destination
	}
	return json.Marshal(w)
}

// Plan returns the transitions that animate from into to: moves first,
// then adds, then clears. Each appearing piece is matched with the nearest
// identical piece that vanished; ties go to the square that comes first in
// a1, a2, ..., h8 order. Equal positions produce no transitions.
func Plan(from, to position.Position) []Transition {
	return transitionsFromSteps(plan.Plan(from, to))
}

// transitionsFromSteps converts internal plan steps to public transitions.
func transitionsFromSteps(steps []plan.Step) []Transition {
	if len(steps) == 0 {
		return nil
	}
	out := make([]Transition, len(steps))
	for i, s := range steps {
		t := Transition{Kind: TransitionKind(s.Kind), Piece: s.Piece}
		switch s.Kind {
		case plan.Move:
			t.Source, t.Destination = s.From, s.To
		case plan.Add:
			t.Destination = s.To
		case plan.Clear:
			t.Source = s.From
		}
		out[i] = t
	}
	return out
}
