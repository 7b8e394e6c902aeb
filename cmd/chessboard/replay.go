package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/discochess/chessboard"
	"github.com/discochess/chessboard/internal/replay"
	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/internal/stats/logger"
	promstats "github.com/discochess/chessboard/internal/stats/prometheus"
	"github.com/discochess/chessboard/internal/textrender"
)

var replayCmd = &cobra.Command{
	Use:   "replay PGN",
	Short: "Replay PGN games through a board and report plan statistics",
	Long: `Replay every game of a PGN file through a board, one ply at a time, and
report how many move, add and clear transitions the board planned.

Examples:
  # Replay the first ten games
  chessboard replay games.pgn --max-games 10

  # Print each position and dump the board metrics
  chessboard replay games.pgn --render --metrics`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var (
	replayMaxGames  int
	replayRender    bool
	replayMetrics   bool
	replayPlanCache int
)

func init() {
	replayCmd.Flags().IntVar(&replayMaxGames, "max-games", 0, "maximum games to replay, 0 for all")
	replayCmd.Flags().BoolVar(&replayRender, "render", false, "print every position")
	replayCmd.Flags().BoolVar(&replayMetrics, "metrics", false, "print board metrics in Prometheus text format")
	replayCmd.Flags().IntVar(&replayPlanCache, "plan-cache", 0, "plans cached in memory, 0 disables the cache")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening PGN: %w", err)
	}
	defer f.Close()

	games, err := replay.ReadGames(f, replayMaxGames)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	var collector stats.Collector = logger.New(log)
	if replayMetrics {
		collector = promstats.New(registry)
	}

	out := cmd.OutOrStdout()
	opts := []chessboard.Option{
		chessboard.WithStats(collector),
		chessboard.WithLogger(log),
	}
	if replayRender {
		opts = append(opts, chessboard.WithRenderer(textrender.New(out)))
	}
	if replayPlanCache > 0 {
		opts = append(opts, chessboard.WithPlanCache(replayPlanCache))
	}

	b, err := chessboard.New(opts...)
	if err != nil {
		return fmt.Errorf("creating board: %w", err)
	}
	defer b.Close()

	start := time.Now()
	report, err := replay.New(b,
		replay.WithAnimation(true),
		replay.WithLogger(log),
	).Run(context.Background(), games)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printReport(out, report, elapsed)

	if replayMetrics {
		return printMetrics(out, registry)
	}
	return nil
}

func printReport(w io.Writer, r *replay.Report, elapsed time.Duration) {
	fmt.Fprintf(w, "\n=== Summary ===\n")
	fmt.Fprintf(w, "Games:        %d\n", r.Games)
	fmt.Fprintf(w, "Plies:        %d\n", r.Plies)
	fmt.Fprintf(w, "Moves:        %d\n", r.Moves)
	fmt.Fprintf(w, "Adds:         %d\n", r.Adds)
	fmt.Fprintf(w, "Clears:       %d\n", r.Clears)
	p := r.PerPly
	fmt.Fprintf(w, "Per ply:      mean %.2f, sd %.2f, median %.0f, p90 %.0f, max %.0f\n",
		p.Mean, p.StdDev, p.Median, p.P90, p.Max)
	fmt.Fprintf(w, "Elapsed:      %s\n", elapsed)
}

func printMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
