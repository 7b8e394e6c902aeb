package chessboard

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/position"
)

// Drag errors. A failed drag call leaves the drag state unchanged.
var (
	ErrNotDraggable        = errors.New("chessboard: board is not draggable")
	ErrDragInProgress      = errors.New("chessboard: drag in progress")
	ErrNotDragging         = errors.New("chessboard: no drag in progress")
	ErrEmptySource         = errors.New("chessboard: drag source is empty")
	ErrPieceMismatch       = errors.New("chessboard: piece does not match drag source")
	ErrSparePiecesDisabled = errors.New("chessboard: spare pieces disabled")
	ErrInvalidLocation     = errors.New("chessboard: invalid location")
	ErrDragVetoed          = errors.New("chessboard: drag vetoed")
)

// dragState is the Dragging state; a nil *dragState is Idle.
type dragState struct {
	piece  position.Piece
	source Location
	hover  Location
	bounds map[position.Square]Rect
}

// Dragging reports whether a drag is in progress, and if so which piece
// from where.
func (b *Board) Dragging() (piece position.Piece, source Location, ok bool) {
	if b.drag == nil {
		return position.Piece{}, OffBoard, false
	}
	return b.drag.piece, b.drag.source, true
}

// HoverLocation returns the location under the dragged piece.
func (b *Board) HoverLocation() (Location, bool) {
	if b.drag == nil {
		return OffBoard, false
	}
	return b.drag.hover, true
}

// BeginDrag picks piece up from source with the pointer at (x, y). source
// is a square holding piece, or Spare when spare pieces are enabled. The
// DragStart hook may veto, in which case ErrDragVetoed is returned. Writes
// made from the hook fail with ErrDragInProgress.
func (b *Board) BeginDrag(source Location, piece position.Piece, x, y float64) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if !b.draggable {
		return ErrNotDraggable
	}
	if b.drag != nil || b.dragStarting {
		return ErrDragInProgress
	}
	if !piece.Valid() {
		return fmt.Errorf("%w: %v", position.ErrInvalidPieceCode, piece)
	}

	switch sq, onBoard := source.Square(); {
	case source == Spare:
		if !b.sparePieces {
			return ErrSparePiecesDisabled
		}
	case onBoard:
		held, ok := b.current[sq]
		if !ok {
			return fmt.Errorf("%w: %s", ErrEmptySource, sq)
		}
		if held != piece {
			return fmt.Errorf("%w: %s holds %s, not %s", ErrPieceMismatch, sq, held, piece)
		}
	default:
		return fmt.Errorf("%w: drag source %s", ErrInvalidLocation, source)
	}

	if b.hooks.DragStart != nil {
		// The source was checked against the current position; writes from
		// the hook would invalidate that.
		b.dragStarting = true
		decision := b.hooks.DragStart(DragStartEvent{
			Source:      source,
			Piece:       piece,
			Position:    b.current.Clone(),
			Orientation: b.orientation,
		})
		b.dragStarting = false
		if b.closed.Load() {
			return ErrClosed
		}
		if decision == Veto {
			b.stats.IncCounter(stats.MetricDragsVetoed, 1)
			b.logger.Debug("drag vetoed", zap.Stringer("source", source), zap.Stringer("piece", piece))
			return ErrDragVetoed
		}
	}

	hover := source
	if source == Spare {
		hover = OffBoard
	}
	b.drag = &dragState{
		piece:  piece,
		source: source,
		hover:  hover,
		bounds: b.renderer.SquareBounds(),
	}

	b.stats.IncCounter(stats.MetricDragsStarted, 1)
	b.logger.Debug("drag started", zap.Stringer("source", source), zap.Stringer("piece", piece))

	if dr, ok := b.renderer.(DragRenderer); ok {
		dr.Lift(piece, source, x, y)
	}
	return nil
}

// UpdateDrag moves the dragged piece to (x, y) and returns the location
// under it. DragMove fires only when that location changes.
func (b *Board) UpdateDrag(x, y float64) (Location, error) {
	if b.closed.Load() {
		return OffBoard, ErrClosed
	}
	d := b.drag
	if d == nil {
		return OffBoard, ErrNotDragging
	}

	loc := locate(d.bounds, x, y)
	if dr, ok := b.renderer.(DragRenderer); ok {
		dr.Follow(x, y, loc)
	}
	if loc == d.hover {
		return loc, nil
	}

	prev := d.hover
	d.hover = loc
	if b.hooks.DragMove != nil {
		b.hooks.DragMove(DragMoveEvent{
			Location:         loc,
			PreviousLocation: prev,
			Source:           d.source,
			Piece:            d.piece,
			Position:         b.current.Clone(),
			Orientation:      b.orientation,
		})
	}
	return loc, nil
}

// EndDragAt ends the drag at pointer (x, y). See EndDrag.
func (b *Board) EndDragAt(x, y float64) (DropAction, error) {
	if b.closed.Load() {
		return ActionDefault, ErrClosed
	}
	if b.drag == nil {
		return ActionDefault, ErrNotDragging
	}
	return b.EndDrag(locate(b.drag.bounds, x, y))
}

// EndDrag releases the dragged piece over loc, a square or OffBoard, and
// returns the action applied.
//
// A drop on a square defaults to ActionDrop; a drop off the board defaults
// to the configured drop-off policy. The Drop hook sees the candidate
// position and may override. A spare piece cannot snap back and is
// trashed instead; a drop off the board places nothing and is a trash.
func (b *Board) EndDrag(loc Location) (DropAction, error) {
	if b.closed.Load() {
		return ActionDefault, ErrClosed
	}
	d := b.drag
	if d == nil {
		return ActionDefault, ErrNotDragging
	}
	if loc != OffBoard && !loc.OnBoard() {
		return ActionDefault, fmt.Errorf("%w: drop target %s", ErrInvalidLocation, loc)
	}

	action := ActionDrop
	if loc == OffBoard {
		action = b.dropOffBoard
	}

	candidate := b.candidate(d, loc)
	if b.hooks.Drop != nil {
		override := b.hooks.Drop(DropEvent{
			Source:      d.source,
			Destination: loc,
			Piece:       d.piece,
			NewPosition: candidate.Clone(),
			OldPosition: b.current.Clone(),
			Orientation: b.orientation,
		})
		switch override {
		case ActionDrop, ActionSnapback, ActionTrash:
			action = override
		}
	}

	if action == ActionSnapback && d.source == Spare {
		action = ActionTrash
	}
	if action == ActionDrop && loc == OffBoard {
		action = ActionTrash
	}

	b.drag = nil
	b.logger.Debug("drag ended",
		zap.Stringer("source", d.source),
		zap.Stringer("destination", loc),
		zap.Stringer("piece", d.piece),
		zap.Stringer("action", action),
	)

	switch action {
	case ActionSnapback:
		b.snapback(d)
	case ActionTrash:
		b.trash(d)
	default:
		dest, _ := loc.Square()
		b.drop(d, dest, candidate)
	}
	return action, nil
}

// candidate is the position after moving the dragged piece to loc.
func (b *Board) candidate(d *dragState, loc Location) position.Position {
	next := b.current.Clone()
	if sq, ok := d.source.Square(); ok {
		delete(next, sq)
	}
	if sq, ok := loc.Square(); ok {
		next[sq] = d.piece
	}
	return next
}

func (b *Board) snapback(d *dragState) {
	b.stats.IncCounter(stats.MetricSnapbacks, 1)
	source, _ := d.source.Square()

	finish := func() {
		if b.closed.Load() {
			return
		}
		b.Redraw()
		if b.hooks.SnapbackEnd != nil {
			b.hooks.SnapbackEnd(SnapEvent{
				Source:      d.source,
				Destination: d.source,
				Piece:       d.piece,
				Position:    b.current.Clone(),
				Orientation: b.orientation,
			})
		}
	}

	if dr, ok := b.renderer.(DragRenderer); ok {
		dr.Snapback(d.piece, source, finish)
		return
	}
	finish()
}

func (b *Board) trash(d *dragState) {
	b.stats.IncCounter(stats.MetricTrashes, 1)

	next := b.current.Clone()
	if sq, ok := d.source.Square(); ok {
		delete(next, sq)
	}
	if !b.commit(next, commitInstant) {
		b.Redraw()
	}

	if dr, ok := b.renderer.(DragRenderer); ok {
		dr.Trash(d.piece)
	}
}

func (b *Board) drop(d *dragState, dest position.Square, candidate position.Position) {
	b.stats.IncCounter(stats.MetricDrops, 1)
	b.commit(candidate, commitSilent)

	finish := func() {
		if b.closed.Load() {
			return
		}
		b.Redraw()
		if b.hooks.SnapEnd != nil {
			b.hooks.SnapEnd(SnapEvent{
				Source:      d.source,
				Destination: At(dest),
				Piece:       d.piece,
				Position:    b.current.Clone(),
				Orientation: b.orientation,
			})
		}
	}

	if dr, ok := b.renderer.(DragRenderer); ok {
		dr.Snap(d.piece, dest, finish)
		return
	}
	finish()
}

// HoverSquare reports the pointer entering sq. MouseoverSquare fires unless
// a drag is in progress.
func (b *Board) HoverSquare(sq position.Square) {
	b.squareEvent(sq, b.hooks.MouseoverSquare)
}

// LeaveSquare reports the pointer leaving sq. MouseoutSquare fires unless a
// drag is in progress.
func (b *Board) LeaveSquare(sq position.Square) {
	b.squareEvent(sq, b.hooks.MouseoutSquare)
}

func (b *Board) squareEvent(sq position.Square, hook func(SquareEvent)) {
	if hook == nil || b.closed.Load() || b.drag != nil || !sq.Valid() {
		return
	}
	piece, ok := b.current[sq]
	hook(SquareEvent{
		Square:      sq,
		Piece:       piece,
		HasPiece:    ok,
		Position:    b.current.Clone(),
		Orientation: b.orientation,
	})
}
