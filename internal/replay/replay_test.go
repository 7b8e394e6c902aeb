package replay

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/discochess/chessboard"
	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/position"
)

const pgn = `[Event "Ruy Lopez"]
[White "Alice"]
[Black "Bob"]
[Result "*"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 *

[Event "Scandinavian"]
[White "Carol"]
[Black "Dave"]
[Result "*"]

1. e4 d5 2. exd5 Qxd5 *

[Event "Castling"]
[White "Erin"]
[Black "Frank"]
[Result "*"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O *
`

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestReadGames(t *testing.T) {
	games, err := ReadGames(strings.NewReader(pgn), 0)
	if err != nil {
		t.Fatalf("ReadGames() error = %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("ReadGames() returned %d games, want 3", len(games))
	}

	g := games[0]
	if g.White != "Alice" || g.Black != "Bob" {
		t.Errorf("players = %q vs %q, want Alice vs Bob", g.White, g.Black)
	}
	if g.Plies() != 6 {
		t.Errorf("Plies() = %d, want 6", g.Plies())
	}
	if g.FENs[0] != chessboard.StartFEN {
		t.Errorf("FENs[0] = %q, want start", g.FENs[0])
	}

	final, err := games[1].FinalPosition()
	if err != nil {
		t.Fatalf("FinalPosition() error = %v", err)
	}
	if got := final[position.D5]; got != position.BlackQueen {
		t.Errorf("d5 = %v, want %v", got, position.BlackQueen)
	}
}

func TestReadGames_Max(t *testing.T) {
	games, err := ReadGames(strings.NewReader(pgn), 2)
	if err != nil {
		t.Fatalf("ReadGames() error = %v", err)
	}
	if len(games) != 2 {
		t.Errorf("ReadGames() returned %d games, want 2", len(games))
	}
}

func TestReadGames_Empty(t *testing.T) {
	if _, err := ReadGames(strings.NewReader(""), 0); !errors.Is(err, ErrNoGames) {
		t.Errorf("ReadGames() error = %v, want %v", err, ErrNoGames)
	}
}

func TestReplayer_Run(t *testing.T) {
	games, err := ReadGames(strings.NewReader(pgn), 0)
	if err != nil {
		t.Fatalf("ReadGames() error = %v", err)
	}

	collector := stats.NewMemory()
	b, err := chessboard.New(chessboard.WithStats(collector))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	report, err := New(b, WithAnimation(true)).Run(context.Background(), games)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Captures are single moves and castling moves two pieces.
	want := &Report{
		Games: 3,
		Plies: 17,
		Moves: 18,
		PerPly: Summary{
			N:      17,
			Mean:   18.0 / 17,
			StdDev: report.PerPly.StdDev,
			Median: 1,
			P90:    1,
			Min:    1,
			Max:    2,
		},
	}
	if diff := cmp.Diff(want, report, approx); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
	if report.PerPly.StdDev <= 0 {
		t.Errorf("StdDev = %v, want > 0", report.PerPly.StdDev)
	}

	if got := b.FEN(); got != games[2].FENs[len(games[2].FENs)-1] {
		t.Errorf("board FEN = %q, want final placement of last game", got)
	}
	if got := collector.Counter(stats.MetricMoves); got != 18 {
		t.Errorf("%s = %d, want 18", stats.MetricMoves, got)
	}
}

func TestReplayer_RunCancelled(t *testing.T) {
	games, err := ReadGames(strings.NewReader(pgn), 1)
	if err != nil {
		t.Fatalf("ReadGames() error = %v", err)
	}
	b, err := chessboard.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(b).Run(ctx, games); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		sample []float64
		want   Summary
	}{
		{
			name: "empty",
			want: Summary{},
		},
		{
			name:   "single value",
			sample: []float64{3},
			want:   Summary{N: 1, Mean: 3, Median: 3, P90: 3, Min: 3, Max: 3},
		},
		{
			name:   "unsorted",
			sample: []float64{4, 1, 3, 2},
			want:   Summary{N: 4, Mean: 2.5, StdDev: 1.2909944487358056, Median: 2, P90: 4, Min: 1, Max: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.sample)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
