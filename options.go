package chessboard

import (
	"go.uber.org/zap"

	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/internal/store"
	"github.com/discochess/chessboard/position"
)

// Option configures a Board.
type Option interface {
	apply(*options)
}

// options holds the board configuration.
type options struct {
	id            string
	position      position.Position
	fen           string
	fenSet        bool
	orientation   Orientation
	draggable     bool
	sparePieces   bool
	dropOffBoard  DropAction
	hooks         Hooks
	renderer      Renderer
	planCacheSize int
	store         store.Store
	stats         stats.Collector
	logger        *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		orientation:  WhiteBottom,
		dropOffBoard: ActionSnapback,
		renderer:     noopRenderer{},
		stats:        stats.NewNoop(),
		logger:       zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithID sets the board ID used as the snapshot key.
// If not set, a random UUID is used.
func WithID(id string) Option {
	return optionFunc(func(o *options) {
		o.id = id
	})
}

// WithPosition sets the initial position. The board keeps a copy.
func WithPosition(p position.Position) Option {
	return optionFunc(func(o *options) {
		o.position = p.Clone()
		o.fen, o.fenSet = "", false
	})
}

// WithFEN sets the initial position from FEN text or "start".
// New fails with ErrConfiguration if the text does not decode, including
// when it is empty.
func WithFEN(text string) Option {
	return optionFunc(func(o *options) {
		o.fen, o.fenSet = text, true
		o.position = nil
	})
}

// WithStartPosition starts the board from the standard starting position.
func WithStartPosition() Option {
	return WithFEN("start")
}

// WithOrientation sets which side is at the bottom. Default is white.
func WithOrientation(or Orientation) Option {
	return optionFunc(func(o *options) {
		o.orientation = or
	})
}

// WithDraggable enables dragging pieces. Default is off.
func WithDraggable(enabled bool) Option {
	return optionFunc(func(o *options) {
		o.draggable = enabled
	})
}

// WithSparePieces enables dragging pieces from the spare tray. It implies
// WithDraggable(true).
func WithSparePieces(enabled bool) Option {
	return optionFunc(func(o *options) {
		o.sparePieces = enabled
	})
}

// WithDropOffBoard sets what happens to a piece dropped off the board:
// ActionSnapback (default) or ActionTrash.
func WithDropOffBoard(action DropAction) Option {
	return optionFunc(func(o *options) {
		o.dropOffBoard = action
	})
}

// WithHooks sets the application callbacks.
func WithHooks(h Hooks) Option {
	return optionFunc(func(o *options) {
		o.hooks = h
	})
}

// WithRenderer sets the renderer. If not set, the board renders nothing
// and animations complete immediately.
func WithRenderer(r Renderer) Option {
	return optionFunc(func(o *options) {
		o.renderer = r
	})
}

// WithPlanCache memoises animation plans in an LRU of the given size.
func WithPlanCache(size int) Option {
	return optionFunc(func(o *options) {
		o.planCacheSize = size
	})
}

// WithStore sets the snapshot store used by Save and Restore. The board
// closes it on Close.
func WithStore(s store.Store) Option {
	return optionFunc(func(o *options) {
		o.store = s
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}
