package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/chessboard"
	"github.com/discochess/chessboard/internal/textrender"
)

var showCmd = &cobra.Command{
	Use:   "show [FEN]",
	Short: "Print a position as a text diagram",
	Long: `Print a position as an 8x8 text diagram. The argument may be a FEN
placement, "start" or "empty"; it defaults to the starting position.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var showCoordinates bool

func init() {
	showCmd.Flags().BoolVar(&showCoordinates, "coordinates", true, "label files and ranks")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	arg := "start"
	if len(args) == 1 {
		arg = args[0]
	}
	pos, err := parsePosition(arg)
	if err != nil {
		return err
	}
	or, err := parseOrientation()
	if err != nil {
		return err
	}

	fen, err := chessboard.EncodeFEN(pos)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, textrender.Diagram(pos, or, showCoordinates))
	fmt.Fprintf(out, "FEN: %s\n", fen)
	return nil
}
