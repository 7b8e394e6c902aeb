// Package boardfx provides an fx module for a chessboard Board backed by a
// snapshot store.
package boardfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/chessboard"
	"github.com/discochess/chessboard/internal/codec/zstdcodec"
	"github.com/discochess/chessboard/internal/stats"
	"github.com/discochess/chessboard/internal/stats/logger"
	"github.com/discochess/chessboard/internal/store"
	"github.com/discochess/chessboard/internal/store/cachedstore"
	"github.com/discochess/chessboard/internal/store/diskstore"
	"github.com/discochess/chessboard/internal/store/memstore"
)

// Config holds configuration for the board.
type Config struct {
	// ID is the board ID and snapshot key. Default is a random UUID.
	ID string

	// FEN is the initial placement, or "start". Default is empty.
	FEN string

	// Orientation is "white" or "black". Default is "white".
	Orientation string

	Draggable   bool
	SparePieces bool

	// DataDir holds zstd-compressed snapshots. When empty, snapshots are
	// kept in memory.
	DataDir string

	// CacheSize is the number of snapshots cached in memory.
	// Default is 16.
	CacheSize int

	// PlanCacheSize is the number of animation plans cached. Zero disables
	// the plan cache.
	PlanCacheSize int

	// Restore starts the board from its saved snapshot when one exists.
	Restore bool
}

// Module provides a *chessboard.Board. Requires a Config and a *zap.Logger;
// a chessboard.Renderer and chessboard.Hooks are used when provided.
var Module = fx.Module("chessboard",
	fx.Provide(
		newStatsCollector,
		newStore,
		newBoard,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("chessboard"))
}

// StoreParams holds dependencies for creating the snapshot store.
type StoreParams struct {
	fx.In

	Config    Config
	Collector stats.Collector
}

func newStore(p StoreParams) (store.Store, error) {
	var base store.Store = memstore.New()
	if p.Config.DataDir != "" {
		disk, err := diskstore.New(p.Config.DataDir, zstdcodec.New())
		if err != nil {
			return nil, err
		}
		base = disk
	}

	cacheSize := p.Config.CacheSize
	if cacheSize <= 0 {
		cacheSize = 16
	}
	return cachedstore.New(base, cacheSize, p.Collector)
}

// Params holds dependencies for creating the board.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Store     store.Store
	Lifecycle fx.Lifecycle

	Renderer chessboard.Renderer `optional:"true"`
	Hooks    chessboard.Hooks    `optional:"true"`
}

// Result holds the provided board.
type Result struct {
	fx.Out

	Board *chessboard.Board
}

func newBoard(p Params) (Result, error) {
	cfg := p.Config

	opts := []chessboard.Option{
		chessboard.WithStore(p.Store),
		chessboard.WithStats(p.Collector),
		chessboard.WithLogger(p.Logger.Named("chessboard")),
		chessboard.WithDraggable(cfg.Draggable),
		chessboard.WithSparePieces(cfg.SparePieces),
		chessboard.WithHooks(p.Hooks),
	}
	if cfg.ID != "" {
		opts = append(opts, chessboard.WithID(cfg.ID))
	}
	if cfg.FEN != "" {
		opts = append(opts, chessboard.WithFEN(cfg.FEN))
	}
	if cfg.Orientation != "" {
		or, err := chessboard.ParseOrientation(cfg.Orientation)
		if err != nil {
			return Result{}, err
		}
		opts = append(opts, chessboard.WithOrientation(or))
	}
	if cfg.PlanCacheSize > 0 {
		opts = append(opts, chessboard.WithPlanCache(cfg.PlanCacheSize))
	}
	if p.Renderer != nil {
		opts = append(opts, chessboard.WithRenderer(p.Renderer))
	}
	if cfg.Restore && cfg.ID != "" {
		restore, err := chessboard.WithRestore(context.Background(), p.Store, cfg.ID)
		if err != nil {
			return Result{}, err
		}
		opts = append(opts, restore)
	}

	board, err := chessboard.New(opts...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return board.Close()
		},
	})

	return Result{Board: board}, nil
}
