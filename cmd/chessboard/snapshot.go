package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/chessboard"
	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/internal/store"
	"github.com/discochess/chessboard/internal/textrender"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save, load and list board snapshots",
	Long: `Manage board snapshots in the store selected with --store.

Examples:
  # Save the starting position as board "demo"
  chessboard snapshot save demo start

  # Print it back
  chessboard snapshot load demo

  # List snapshots in a GCS bucket
  chessboard snapshot list --store gcs --bucket my-bucket --prefix boards/`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save ID FEN",
	Short: "Save a position under a board ID",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnapshotSave,
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load ID",
	Short: "Print a saved board",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotLoad,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved board IDs",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotList,
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotLoadCmd, snapshotListCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	pos, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	or, err := parseOrientation()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := openStore(ctx, stats.NewNoop())
	if err != nil {
		return err
	}

	b, err := chessboard.New(
		chessboard.WithID(args[0]),
		chessboard.WithPosition(pos),
		chessboard.WithOrientation(or),
		chessboard.WithStore(st),
		chessboard.WithLogger(log),
	)
	if err != nil {
		st.Close()
		return fmt.Errorf("creating board: %w", err)
	}
	defer b.Close() // closes st

	if err := b.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %s\n", b.ID(), b.FEN())
	return nil
}

func runSnapshotLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, err := openStore(ctx, stats.NewNoop())
	if err != nil {
		return err
	}
	defer st.Close()

	data, err := st.Load(ctx, args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no snapshot for board %q", args[0])
		}
		return err
	}
	snap, err := chessboard.UnmarshalSnapshot(data)
	if err != nil {
		return err
	}
	pos, err := chessboard.DecodeFEN(snap.FEN)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, textrender.Diagram(pos, snap.Orientation, true))
	fmt.Fprintf(out, "ID:          %s\n", snap.ID)
	fmt.Fprintf(out, "FEN:         %s\n", snap.FEN)
	fmt.Fprintf(out, "Orientation: %s\n", snap.Orientation)
	fmt.Fprintf(out, "Saved:       %s\n", snap.SavedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, err := openStore(ctx, stats.NewNoop())
	if err != nil {
		return err
	}
	defer st.Close()

	ids, err := st.List(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(out, "No snapshots found.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return nil
}
