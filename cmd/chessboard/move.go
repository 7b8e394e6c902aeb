package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/chessboard"
	"github.com/discochess/chessboard/internal/textrender"
)

var moveCmd = &cobra.Command{
	Use:   "move FEN MOVE...",
	Short: "Apply moves to a position and print the result",
	Long: `Apply moves of the form "e2-e4" to a position, one after the other.
Moves are not checked against the rules of chess: the piece on the source
square replaces whatever stands on the destination. The board is printed
after every move.

Examples:
  chessboard move start e2-e4 e7-e5 g1-f3`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMove,
}

var moveAnimate bool

func init() {
	moveCmd.Flags().BoolVar(&moveAnimate, "animate", true, "list the transitions of each move")
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	or, err := parseOrientation()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	out := cmd.OutOrStdout()
	r := textrender.New(out)
	b, err := chessboard.New(
		chessboard.WithPosition(pos),
		chessboard.WithOrientation(or),
		chessboard.WithRenderer(r),
		chessboard.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("creating board: %w", err)
	}
	defer b.Close()

	for _, m := range args[1:] {
		fmt.Fprintf(out, "\n%s\n", m)
		if _, err := b.Move(moveAnimate, m); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "FEN: %s\n", b.FEN())
	return r.Err()
}
