// Package plan computes the visual transitions that carry a board from one
// position to another.
//
// The planner is greedy: each piece that appears in the new position is
// matched with the nearest identical piece that disappeared from the old
// one. It is not a minimum-cost matching; when several candidates tie, the
// natural square order decides.
package plan

import (
	"github.com/discochess/chessboard/position"
)

// Kind is the type of a Step.
type Kind uint8

const (
	// Move slides a piece from one square to another.
	Move Kind = iota + 1
	// Add makes a piece appear on an empty square.
	Add
	// Clear removes a piece from a square.
	Clear
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Add:
		return "add"
	case Clear:
		return "clear"
	default:
		return "unknown"
	}
}

// Step is one primitive transition.
//
// Move uses From, To and Piece. Add uses To and Piece. Clear uses From and
// carries the removed piece in Piece.
type Step struct {
	Kind  Kind
	From  position.Square
	To    position.Square
	Piece position.Piece
}

// Plan returns the steps that animate from into to. Neither input is
// modified. Equal positions produce no steps.
func Plan(from, to position.Position) []Step {
	if from.Equal(to) {
		return nil
	}

	prev := from.Clone()
	next := to.Clone()

	// Squares holding the same piece in both positions need no transition.
	for sq, piece := range next {
		if old, ok := prev[sq]; ok && old == piece {
			delete(prev, sq)
			delete(next, sq)
		}
	}

	var steps []Step
	var arrived [position.NumSquares]bool

	for _, sq := range next.Squares() {
		piece := next[sq]
		src, ok := prev.Closest(piece, sq)
		if !ok {
			continue
		}
		steps = append(steps, Step{Kind: Move, From: src, To: sq, Piece: piece})
		delete(prev, src)
		delete(next, sq)
		arrived[sq] = true
	}

	for _, sq := range next.Squares() {
		steps = append(steps, Step{Kind: Add, To: sq, Piece: next[sq]})
	}

	for _, sq := range prev.Squares() {
		// A capture is a single move onto the square, not a move and a clear.
		if arrived[sq] {
			continue
		}
		steps = append(steps, Step{Kind: Clear, From: sq, Piece: prev[sq]})
	}

	return steps
}

// Counts tallies steps by kind.
func Counts(steps []Step) (moves, adds, clears int) {
	for _, s := range steps {
		switch s.Kind {
		case Move:
			moves++
		case Add:
			adds++
		case Clear:
			clears++
		}
	}
	return moves, adds, clears
}
