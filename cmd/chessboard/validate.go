package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/chessboard"
)

var validateCmd = &cobra.Command{
	Use:   "validate FEN...",
	Short: "Check FEN placements and print their normalised form",
	Long: `Validate each FEN argument. Valid placements are printed in canonical
form, with empty runs merged and trailing fields dropped.

The command fails if any argument is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var invalid int
	for _, arg := range args {
		normalized, err := chessboard.NormalizeFEN(arg)
		if err != nil {
			invalid++
			fmt.Fprintf(out, "invalid  %s (%v)\n", arg, err)
			continue
		}
		fmt.Fprintf(out, "ok       %s\n", normalized)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d placements invalid", invalid, len(args))
	}
	return nil
}
