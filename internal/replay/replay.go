// Package replay plays PGN games through a Board one ply at a time and
// measures the animation plans each ply produces.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/notnil/chess"
	"go.uber.org/zap"

	"github.com/discochess/chessboard"
	"github.com/discochess/chessboard/position"
)

// ErrNoGames indicates the PGN input held no games.
var ErrNoGames = errors.New("replay: no games")

// Game is a parsed game reduced to the placements it passes through.
type Game struct {
	White  string
	Black  string
	Result string

	// FENs holds the placement before the first move followed by the
	// placement after every ply.
	FENs []string
}

// Plies returns the number of half moves in the game.
func (g Game) Plies() int {
	if len(g.FENs) == 0 {
		return 0
	}
	return len(g.FENs) - 1
}

// ReadGames parses up to max games from r. A max of zero or less reads
// every game.
func ReadGames(r io.Reader, max int) ([]Game, error) {
	scanner := chess.NewScanner(r)

	var games []Game
	for (max <= 0 || len(games) < max) && scanner.Scan() {
		g := scanner.Next()
		game := Game{
			White:  tag(g, "White"),
			Black:  tag(g, "Black"),
			Result: tag(g, "Result"),
		}
		for _, pos := range g.Positions() {
			game.FENs = append(game.FENs, pos.Board().String())
		}
		games = append(games, game)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PGN: %w", err)
	}
	if len(games) == 0 {
		return nil, ErrNoGames
	}
	return games, nil
}

func tag(g *chess.Game, key string) string {
	if pair := g.GetTagPair(key); pair != nil {
		return pair.Value
	}
	return ""
}

// Report totals the plans computed over a replay.
type Report struct {
	Games  int
	Plies  int
	Moves  int
	Adds   int
	Clears int

	// PerPly summarises the number of transitions each ply needed.
	PerPly Summary
}

// Replayer drives a Board through games.
type Replayer struct {
	board   *chessboard.Board
	animate bool
	logger  *zap.Logger
}

// Option configures a Replayer.
type Option func(*Replayer)

// WithAnimation makes each ply an animated write.
func WithAnimation(animate bool) Option {
	return func(r *Replayer) {
		r.animate = animate
	}
}

// WithLogger sets the logger for per-game progress.
func WithLogger(l *zap.Logger) Option {
	return func(r *Replayer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Replayer for board.
func New(board *chessboard.Board, opts ...Option) *Replayer {
	r := &Replayer{
		board:  board,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays games in order. Each game starts with an instant write of its
// first placement; every ply after that is a write of the next placement.
func (r *Replayer) Run(ctx context.Context, games []Game) (*Report, error) {
	report := &Report{}
	var perPly []float64

	for i, g := range games {
		if len(g.FENs) == 0 {
			continue
		}
		if err := r.board.SetFEN(g.FENs[0], false); err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}
		prev := r.board.Position()

		for ply, text := range g.FENs[1:] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			next, err := chessboard.DecodeFEN(text)
			if err != nil {
				return nil, fmt.Errorf("game %d ply %d: %w", i+1, ply+1, err)
			}
			transitions := chessboard.Plan(prev, next)
			count(report, transitions)
			perPly = append(perPly, float64(len(transitions)))

			if err := r.board.SetPosition(next, r.animate); err != nil {
				return nil, fmt.Errorf("game %d ply %d: %w", i+1, ply+1, err)
			}
			prev = next
			report.Plies++
		}

		report.Games++
		r.logger.Debug("game replayed",
			zap.Int("game", i+1),
			zap.String("white", g.White),
			zap.String("black", g.Black),
			zap.Int("plies", g.Plies()),
		)
	}

	report.PerPly = Summarize(perPly)
	return report, nil
}

func count(report *Report, transitions []chessboard.Transition) {
	for _, t := range transitions {
		switch t.Kind {
		case chessboard.TransitionMove:
			report.Moves++
		case chessboard.TransitionAdd:
			report.Adds++
		case chessboard.TransitionClear:
			report.Clears++
		}
	}
}

// FinalPosition returns the placement a game ends on.
func (g Game) FinalPosition() (position.Position, error) {
	if len(g.FENs) == 0 {
		return position.Position{}, nil
	}
	return chessboard.DecodeFEN(g.FENs[len(g.FENs)-1])
}
