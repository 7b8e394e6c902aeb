package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/chessboard"
	"github.com/discochess/chessboard/internal/codec"
	"github.com/discochess/chessboard/internal/codec/gzipcodec"
	"github.com/discochess/chessboard/internal/codec/noopcodec"
	"github.com/discochess/chessboard/internal/codec/zstdcodec"
	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/internal/store"
	"github.com/discochess/chessboard/internal/store/badgerstore"
	"github.com/discochess/chessboard/internal/store/cachedstore"
	"github.com/discochess/chessboard/internal/store/diskstore"
	"github.com/discochess/chessboard/internal/store/gcsstore"
	"github.com/discochess/chessboard/internal/store/memstore"
	"github.com/discochess/chessboard/internal/store/s3store"
	"github.com/discochess/chessboard/position"
)

var (
	// Global flags.
	verbose     bool
	storeKind   string
	dataDir     string
	bucket      string
	prefix      string
	region      string
	endpoint    string
	codecName   string
	cacheSize   int
	orientation string
)

var rootCmd = &cobra.Command{
	Use:   "chessboard",
	Short: "Inspect positions, plan board animations and manage snapshots",
	Long: `Chessboard is a CLI around the embeddable board core.

It validates and normalises FEN placements, prints diagrams, shows the
transitions the board would animate between two positions, replays PGN
games through a board and saves board snapshots to disk or cloud storage.

Examples:
  # Print the starting position from black's side
  chessboard show start --orientation black

  # Show the animation plan for 1.Nc3
  chessboard plan start "rnbqkbnr/pppppppp/8/8/8/2N5/PPPPPPPP/R1BQKBNR"

  # Replay a PGN file and print plan statistics
  chessboard replay games.pgn --max-games 10

  # Save a board snapshot to a local badger database
  chessboard snapshot save demo start --store badger`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "disk", "snapshot store: memory, disk, badger, gcs or s3")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "./data", "directory for disk and badger stores")
	rootCmd.PersistentFlags().StringVar(&bucket, "bucket", "", "bucket for gcs and s3 stores")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "key prefix for gcs and s3 stores")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "AWS region for the s3 store")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "custom endpoint for S3-compatible services")
	rootCmd.PersistentFlags().StringVar(&codecName, "codec", "zstd", "snapshot compression: zstd, gzip or none")
	rootCmd.PersistentFlags().IntVar(&cacheSize, "cache-size", 64, "snapshots cached in memory, 0 disables the cache")
	rootCmd.PersistentFlags().StringVarP(&orientation, "orientation", "o", "white", "side at the bottom: white or black")
}

func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func newCodec() (codec.Codec, error) {
	switch codecName {
	case "zstd":
		return zstdcodec.New(), nil
	case "gzip":
		return gzipcodec.New(), nil
	case "none":
		return noopcodec.New(), nil
	default:
		return nil, fmt.Errorf("unknown codec %q", codecName)
	}
}

// openStore opens the snapshot store selected by the global flags.
func openStore(ctx context.Context, collector stats.Collector) (store.Store, error) {
	var (
		st  store.Store
		err error
	)

	c, err := newCodec()
	if err != nil {
		return nil, err
	}

	switch storeKind {
	case "memory":
		st = memstore.New()
	case "disk":
		st, err = diskstore.New(dataDir, c)
	case "badger":
		st, err = badgerstore.Open(dataDir)
	case "gcs":
		if bucket == "" {
			return nil, fmt.Errorf("--bucket is required for the gcs store")
		}
		st, err = gcsstore.New(ctx, bucket, c, gcsstore.WithPrefix(prefix))
	case "s3":
		if bucket == "" {
			return nil, fmt.Errorf("--bucket is required for the s3 store")
		}
		opts := []s3store.Option{s3store.WithPrefix(prefix)}
		if region != "" {
			opts = append(opts, s3store.WithRegion(region))
		}
		if endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(endpoint))
		}
		st, err = s3store.New(ctx, bucket, c, opts...)
	default:
		return nil, fmt.Errorf("unknown store %q", storeKind)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", storeKind, err)
	}

	if cacheSize <= 0 {
		return st, nil
	}
	cached, err := cachedstore.New(st, cacheSize, collector)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating snapshot cache: %w", err)
	}
	return cached, nil
}

func parseOrientation() (chessboard.Orientation, error) {
	return chessboard.ParseOrientation(orientation)
}

// parsePosition decodes a FEN argument. "start" and "empty" are accepted
// as shorthands.
func parsePosition(arg string) (position.Position, error) {
	switch arg {
	case "start":
		return chessboard.StartPosition(), nil
	case "empty":
		return position.Position{}, nil
	}
	return chessboard.DecodeFEN(arg)
}
