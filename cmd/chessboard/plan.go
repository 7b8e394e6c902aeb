package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/chessboard"
)

var planCmd = &cobra.Command{
	Use:   "plan FROM TO",
	Short: "Show the transitions that animate one position into another",
	Long: `Print the move, add and clear transitions the board would animate when
changing from FROM to TO. Both arguments are FEN placements, "start" or
"empty".

Examples:
  # Knight development is a single move
  chessboard plan start "rnbqkbnr/pppppppp/8/8/8/2N5/PPPPPPPP/R1BQKBNR"

  # Clearing the board
  chessboard plan start empty --json`,
	Args: cobra.ExactArgs(2),
	RunE: runPlan,
}

var planJSON bool

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "output transitions as JSON")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	from, err := parsePosition(args[0])
	if err != nil {
		return fmt.Errorf("FROM: %w", err)
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return fmt.Errorf("TO: %w", err)
	}

	transitions := chessboard.Plan(from, to)
	out := cmd.OutOrStdout()

	if planJSON {
		if transitions == nil {
			transitions = []chessboard.Transition{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(transitions)
	}

	if len(transitions) == 0 {
		fmt.Fprintln(out, "positions are identical")
		return nil
	}
	for _, t := range transitions {
		fmt.Fprintln(out, t)
	}
	return nil
}
