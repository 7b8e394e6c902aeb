package chessboard

import (
	"github.com/discochess/chessboard/position"
)

// DragDecision is the answer of a DragStart hook.
type DragDecision uint8

const (
	// Proceed lets the drag start.
	Proceed DragDecision = iota
	// Veto cancels the drag; the board stays idle.
	Veto
)

// DropAction is the outcome of a drag.
type DropAction uint8

const (
	// ActionDefault keeps the board's own decision. It is only meaningful
	// as a Drop hook result.
	ActionDefault DropAction = iota
	// ActionDrop commits the candidate position.
	ActionDrop
	// ActionSnapback returns the piece to its source; the position is
	// unchanged.
	ActionSnapback
	// ActionTrash removes the piece from its source and places it nowhere.
	ActionTrash
)

func (a DropAction) String() string {
	switch a {
	case ActionDrop:
		return "drop"
	case ActionSnapback:
		return "snapback"
	case ActionTrash:
		return "trash"
	default:
		return "default"
	}
}

// ParseDropAction parses "snapback" or "trash", the two valid drop-off
// policies.
func ParseDropAction(s string) (DropAction, error) {
	switch s {
	case "snapback":
		return ActionSnapback, nil
	case "trash":
		return ActionTrash, nil
	default:
		return ActionDefault, configErrorf("drop-off policy %q", s)
	}
}

// DragStartEvent describes a drag about to begin.
type DragStartEvent struct {
	Source      Location
	Piece       position.Piece
	Position    position.Position
	Orientation Orientation
}

// DropEvent describes a drag about to end. NewPosition is the position the
// board commits if the drop stands.
type DropEvent struct {
	Source      Location
	Destination Location
	Piece       position.Piece
	NewPosition position.Position
	OldPosition position.Position
	Orientation Orientation
}

// DragMoveEvent describes the pointer entering a new location mid-drag.
type DragMoveEvent struct {
	Location         Location
	PreviousLocation Location
	Source           Location
	Piece            position.Piece
	Position         position.Position
	Orientation      Orientation
}

// SnapEvent describes a finished snap or snapback animation.
type SnapEvent struct {
	Source      Location
	Destination Location
	Piece       position.Piece
	Position    position.Position
	Orientation Orientation
}

// SquareEvent describes the pointer entering or leaving a square while no
// drag is in progress. Piece is valid only when HasPiece is set.
type SquareEvent struct {
	Square      position.Square
	Piece       position.Piece
	HasPiece    bool
	Position    position.Position
	Orientation Orientation
}

// Hooks are the embedding application's callbacks. All are optional and
// run synchronously on the board's event loop. Positions handed to hooks
// are copies the hook may keep or modify.
type Hooks struct {
	// DragStart may veto a drag.
	DragStart func(DragStartEvent) DragDecision

	// Drop may override the outcome of a drag by returning anything other
	// than ActionDefault.
	Drop func(DropEvent) DropAction

	// DragMove fires when the hovered location changes.
	DragMove func(DragMoveEvent)

	// Change fires once per committed position change.
	Change func(oldPos, newPos position.Position)

	// MoveEnd fires when every transition of an animated change completes.
	MoveEnd func(oldPos, newPos position.Position)

	// SnapbackEnd fires when a snapped-back piece is home.
	SnapbackEnd func(SnapEvent)

	// SnapEnd fires when a dropped piece has settled on its square.
	SnapEnd func(SnapEvent)

	// MouseoverSquare and MouseoutSquare forward pointer hover reported
	// through Board.HoverSquare and Board.LeaveSquare.
	MouseoverSquare func(SquareEvent)
	MouseoutSquare  func(SquareEvent)
}
