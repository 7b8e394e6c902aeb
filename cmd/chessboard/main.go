// Package main provides the chessboard CLI for inspecting positions,
// planning animations, replaying games and managing board snapshots.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
