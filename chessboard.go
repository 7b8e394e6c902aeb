// Package chessboard is the core of an embeddable chessboard: the position
// it shows, how that position changes, and how a change is animated.
//
// Drawing is delegated to a Renderer; the Board decides what to draw and in
// which order. A Board is driven from a single event loop and is not safe
// for concurrent use.
//
// Example usage:
//
//	board, err := chessboard.New(
//	    chessboard.WithStartPosition(),
//	    chessboard.WithDraggable(true),
//	    chessboard.WithHooks(chessboard.Hooks{
//	        Change: func(oldPos, newPos position.Position) { ... },
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer board.Close()
//
//	if _, err := board.Move(true, "e2-e4", "e7-e5"); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(board.FEN())
package chessboard

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/discochess/chessboard/internal/fen"
	"github.com/discochess/chessboard/internal/plan"
	"github.com/discochess/chessboard/internal/plan/plancache"
	"github.com/discochess/chessboard/internal/plan/plancache/lru"
	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/internal/store"
	"github.com/discochess/chessboard/position"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrClosed indicates the board has been closed.
	ErrClosed = errors.New("chessboard: board closed")

	// ErrConfiguration indicates an unusable option at construction time.
	ErrConfiguration = errors.New("chessboard: invalid configuration")

	// ErrInvalidNotation indicates FEN text that does not decode.
	ErrInvalidNotation = fen.ErrInvalidFEN

	// ErrInvalidPosition indicates a position holding an out-of-range
	// square or piece.
	ErrInvalidPosition = position.ErrInvalidPosition

	// ErrInvalidMove indicates a move string not of the form "e2-e4".
	ErrInvalidMove = errors.New("chessboard: invalid move")

	// ErrNoStore indicates Save or Restore without WithStore.
	ErrNoStore = errors.New("chessboard: no store provided")
)

// planner computes animation steps.
type planner interface {
	Plan(from, to position.Position) []plan.Step
}

type planFunc func(from, to position.Position) []plan.Step

func (f planFunc) Plan(from, to position.Position) []plan.Step { return f(from, to) }

// commitMode says how a committed change reaches the renderer.
type commitMode uint8

const (
	// commitAnimated plans the change and queues an animation.
	commitAnimated commitMode = iota
	// commitInstant queues a redraw.
	commitInstant
	// commitSilent queues nothing; the drag renderer already shows it.
	commitSilent
)

func (m commitMode) String() string {
	switch m {
	case commitAnimated:
		return "animated"
	case commitInstant:
		return "instant"
	default:
		return "silent"
	}
}

// renderJob is one entry of the render queue.
type renderJob struct {
	animate     bool
	old, pos    position.Position
	transitions []Transition
	remaining   int
}

// Board holds one chessboard's state. The zero value is not usable; call
// New.
type Board struct {
	id           string
	current      position.Position
	orientation  Orientation
	draggable    bool
	sparePieces  bool
	dropOffBoard DropAction
	hooks        Hooks
	renderer     Renderer
	planner      planner
	store        store.Store
	stats        stats.Collector
	logger       *zap.Logger
	closed       atomic.Bool

	drag         *dragState
	dragStarting bool
	queue        []*renderJob
	active       *renderJob
}

// New creates a Board with the given options.
// If no options are provided, an empty, non-draggable board is returned.
func New(opts ...Option) (*Board, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	initial, err := cfg.initialPosition()
	if err != nil {
		return nil, err
	}

	id := cfg.id
	if id == "" {
		id = uuid.New().String()
	} else if err := store.ValidateID(id); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	p, err := cfg.buildPlanner()
	if err != nil {
		return nil, err
	}

	b := &Board{
		id:           id,
		current:      initial,
		orientation:  cfg.orientation,
		draggable:    cfg.draggable || cfg.sparePieces,
		sparePieces:  cfg.sparePieces,
		dropOffBoard: cfg.dropOffBoard,
		hooks:        cfg.hooks,
		renderer:     cfg.renderer,
		planner:      p,
		store:        cfg.store,
		stats:        cfg.stats,
		logger:       cfg.logger.With(zap.String("board", id)),
	}

	b.logger.Debug("board initialized",
		zap.String("fen", b.FEN()),
		zap.Stringer("orientation", b.orientation),
		zap.Bool("draggable", b.draggable),
		zap.Bool("sparePieces", b.sparePieces),
		zap.Stringer("dropOffBoard", b.dropOffBoard),
	)

	b.stats.SetGauge(stats.MetricPieces, int64(b.current.Count()))
	b.enqueue(&renderJob{pos: b.current})
	b.pump()

	return b, nil
}

func (o *options) validate() error {
	switch {
	case !o.orientation.valid():
		return configErrorf("orientation %d", o.orientation)
	case o.dropOffBoard != ActionSnapback && o.dropOffBoard != ActionTrash:
		return configErrorf("drop-off policy %s", o.dropOffBoard)
	case o.renderer == nil:
		return configErrorf("nil renderer")
	case o.stats == nil:
		return configErrorf("nil stats collector")
	case o.logger == nil:
		return configErrorf("nil logger")
	case o.planCacheSize < 0:
		return configErrorf("plan cache size %d", o.planCacheSize)
	}
	return nil
}

func (o *options) initialPosition() (position.Position, error) {
	switch {
	case o.fenSet:
		p, err := decodeOrStart(o.fen)
		if err != nil {
			return nil, fmt.Errorf("%w: initial position: %w", ErrConfiguration, err)
		}
		return p, nil
	case o.position != nil:
		if err := o.position.Validate(); err != nil {
			return nil, fmt.Errorf("%w: initial position: %w", ErrConfiguration, err)
		}
		return o.position.Clone(), nil
	default:
		return position.Position{}, nil
	}
}

func (o *options) buildPlanner() (planner, error) {
	if o.planCacheSize == 0 {
		return planFunc(plan.Plan), nil
	}
	strategy, err := lru.New(o.planCacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w: plan cache: %w", ErrConfiguration, err)
	}
	return plancache.New(strategy, o.stats), nil
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...)
}

// decodeOrStart decodes FEN text, accepting "start" for the starting
// position.
func decodeOrStart(text string) (position.Position, error) {
	if strings.EqualFold(strings.TrimSpace(text), "start") {
		return StartPosition(), nil
	}
	return fen.Decode(text)
}

// ID returns the board ID.
func (b *Board) ID() string {
	return b.id
}

// Position returns a copy of the current position.
func (b *Board) Position() position.Position {
	return b.current.Clone()
}

// FEN returns the placement field of the current position.
func (b *Board) FEN() string {
	s, err := fen.Encode(b.current)
	if err != nil {
		// current is validated on every write.
		panic("chessboard: current position does not encode: " + err.Error())
	}
	return s
}

// Orientation returns the side shown at the bottom.
func (b *Board) Orientation() Orientation {
	return b.orientation
}

// Draggable reports whether pieces can be dragged.
func (b *Board) Draggable() bool {
	return b.draggable
}

// Pending returns the number of render jobs not yet finished, including an
// animation in flight.
func (b *Board) Pending() int {
	n := len(b.queue)
	if b.active != nil {
		n++
	}
	return n
}

// SetPosition replaces the current position with a copy of p. With animate
// the change is planned and animated; otherwise it is drawn at once.
// Setting the current position again does nothing.
func (b *Board) SetPosition(p position.Position, animate bool) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	mode := commitInstant
	if animate {
		mode = commitAnimated
	}
	b.commit(p.Clone(), mode)
	return nil
}

// SetFEN sets the position from FEN text or "start".
func (b *Board) SetFEN(text string, animate bool) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	p, err := decodeOrStart(text)
	if err != nil {
		return err
	}
	return b.SetPosition(p, animate)
}

// Start sets the standard starting position.
func (b *Board) Start(animate bool) error {
	return b.SetPosition(StartPosition(), animate)
}

// Clear removes every piece.
func (b *Board) Clear(animate bool) error {
	return b.SetPosition(position.Position{}, animate)
}

// Move applies moves like "e2-e4" in order and commits the result as one
// change. A move from an empty square is skipped. If any move does not
// parse, nothing changes. Move returns a copy of the resulting position.
func (b *Board) Move(animate bool, moves ...string) (position.Position, error) {
	if err := b.checkWritable(); err != nil {
		return nil, err
	}

	next := b.current.Clone()
	for _, m := range moves {
		from, to, err := ParseMove(m)
		if err != nil {
			return nil, err
		}
		piece, ok := next[from]
		if !ok {
			continue
		}
		delete(next, from)
		next[to] = piece
	}

	if err := b.SetPosition(next, animate); err != nil {
		return nil, err
	}
	return b.Position(), nil
}

// SetOrientation sets the side at the bottom and redraws.
func (b *Board) SetOrientation(o Orientation) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if !o.valid() {
		return configErrorf("orientation %d", o)
	}
	b.orientation = o
	b.logger.Debug("orientation set", zap.Stringer("orientation", o))
	b.Redraw()
	return nil
}

// Flip swaps the orientation and redraws.
func (b *Board) Flip() error {
	return b.SetOrientation(b.orientation.Flipped())
}

// Redraw queues an instant redraw of the current position.
func (b *Board) Redraw() {
	if b.closed.Load() {
		return
	}
	b.enqueue(&renderJob{pos: b.current})
	b.pump()
}

// Close releases the snapshot store. Queued rendering is dropped and late
// animation completions are ignored.
func (b *Board) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	b.queue = nil
	b.active = nil
	b.drag = nil
	b.logger.Debug("board closed")

	if b.store != nil {
		if err := b.store.Close(); err != nil {
			return fmt.Errorf("closing store: %w", err)
		}
	}
	return nil
}

func (b *Board) checkWritable() error {
	if b.closed.Load() {
		return ErrClosed
	}
	if b.drag != nil || b.dragStarting {
		return ErrDragInProgress
	}
	return nil
}

// commit makes next the current position. next must be owned by the board:
// the current position is replaced on every change and never modified in
// place, so queued render jobs may hold on to it.
func (b *Board) commit(next position.Position, mode commitMode) bool {
	if b.current.Equal(next) {
		return false
	}

	old := b.current
	b.current = next

	switch mode {
	case commitAnimated:
		if transitions := b.plan(old, next); len(transitions) > 0 {
			b.enqueue(&renderJob{animate: true, old: old, pos: next, transitions: transitions})
		}
	case commitInstant:
		b.enqueue(&renderJob{pos: next})
	}

	b.stats.IncCounter(stats.MetricCommits, 1)
	b.stats.SetGauge(stats.MetricPieces, int64(next.Count()))
	b.logger.Debug("position committed",
		zap.String("fen", b.FEN()),
		zap.Stringer("mode", mode),
	)

	if b.hooks.Change != nil {
		b.hooks.Change(old.Clone(), next.Clone())
	}

	b.pump()
	return true
}

func (b *Board) plan(from, to position.Position) []Transition {
	start := time.Now()
	steps := b.planner.Plan(from, to)
	b.stats.ObserveHistogram(stats.MetricPlanDuration, time.Since(start).Seconds())
	b.stats.IncCounter(stats.MetricPlans, 1)

	moves, adds, clears := plan.Counts(steps)
	b.stats.IncCounter(stats.MetricMoves, int64(moves))
	b.stats.IncCounter(stats.MetricAdds, int64(adds))
	b.stats.IncCounter(stats.MetricClears, int64(clears))

	b.logger.Debug("plan computed",
		zap.Int("moves", moves),
		zap.Int("adds", adds),
		zap.Int("clears", clears),
	)
	return transitionsFromSteps(steps)
}

func (b *Board) enqueue(job *renderJob) {
	b.queue = append(b.queue, job)
	b.stats.SetGauge(stats.MetricRenderQueue, int64(len(b.queue)))
}

// pump runs queued render jobs until an animation is in flight or the
// queue is empty. Draws run inline; an animation holds the queue until its
// last completion.
func (b *Board) pump() {
	for b.active == nil && len(b.queue) > 0 {
		job := b.queue[0]
		b.queue[0] = nil
		b.queue = b.queue[1:]
		b.stats.SetGauge(stats.MetricRenderQueue, int64(len(b.queue)))

		if !job.animate {
			b.renderer.Draw(job.pos.Clone(), b.orientation)
			continue
		}

		job.remaining = len(job.transitions)
		b.active = job
		b.renderer.Animate(slices.Clone(job.transitions), b.completion(job))
	}
}

// completion returns the done callback for an animation job.
func (b *Board) completion(job *renderJob) func() {
	return func() {
		if b.closed.Load() {
			return
		}
		if b.active != job || job.remaining == 0 {
			b.logger.Warn("stray animation completion",
				zap.Int("transitions", len(job.transitions)),
			)
			return
		}

		job.remaining--
		if job.remaining > 0 {
			return
		}

		b.active = nil
		b.renderer.Draw(job.pos.Clone(), b.orientation)
		if b.hooks.MoveEnd != nil {
			b.hooks.MoveEnd(job.old.Clone(), job.pos.Clone())
		}
		b.pump()
	}
}
