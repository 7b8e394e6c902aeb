package boardfx

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/discochess/chessboard"
	"github.com/discochess/chessboard/position"
)

func newApp(t *testing.T, cfg Config, board **chessboard.Board, extra ...fx.Option) *fxtest.App {
	t.Helper()
	opts := []fx.Option{
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Supply(zap.NewNop()),
		Module,
		fx.Populate(board),
	}
	return fxtest.New(t, append(opts, extra...)...)
}

func TestModule_ProvidesBoard(t *testing.T) {
	var b *chessboard.Board
	app := newApp(t, Config{
		ID:          "fx-board",
		FEN:         "start",
		Orientation: "black",
		Draggable:   true,
	}, &b)
	app.RequireStart()

	if b.ID() != "fx-board" {
		t.Errorf("ID() = %q, want %q", b.ID(), "fx-board")
	}
	if b.FEN() != chessboard.StartFEN {
		t.Errorf("FEN() = %q, want start", b.FEN())
	}
	if b.Orientation() != chessboard.BlackBottom {
		t.Errorf("Orientation() = %v, want black", b.Orientation())
	}
	if !b.Draggable() {
		t.Error("Draggable() = false, want true")
	}

	app.RequireStop()
	if err := b.Save(context.Background()); !errors.Is(err, chessboard.ErrClosed) {
		t.Errorf("Save() after stop error = %v, want %v", err, chessboard.ErrClosed)
	}
}

func TestModule_RestoresFromDataDir(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{ID: "persisted", DataDir: dir, Restore: true}

	var first *chessboard.Board
	app := newApp(t, cfg, &first)
	app.RequireStart()
	if first.Position().Count() != 0 {
		t.Fatalf("board without a snapshot has %d pieces, want 0", first.Position().Count())
	}
	if err := first.SetFEN("8/8/8/8/4P3/8/8/8", false); err != nil {
		t.Fatalf("SetFEN() error = %v", err)
	}
	if err := first.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	app.RequireStop()

	var second *chessboard.Board
	app = newApp(t, cfg, &second)
	app.RequireStart()
	defer app.RequireStop()

	if got := second.Position()[position.E4]; got != position.WhitePawn {
		t.Errorf("restored e4 = %v, want %v", got, position.WhitePawn)
	}
}

type recordingRenderer struct {
	draws int
}

func (r *recordingRenderer) Draw(position.Position, chessboard.Orientation) { r.draws++ }

func (r *recordingRenderer) Animate(transitions []chessboard.Transition, done func()) {
	for range transitions {
		done()
	}
}

func (r *recordingRenderer) SquareBounds() map[position.Square]chessboard.Rect {
	return chessboard.GridBounds(10, chessboard.WhiteBottom)
}

func TestModule_UsesProvidedRendererAndHooks(t *testing.T) {
	r := &recordingRenderer{}
	var changes int
	hooks := chessboard.Hooks{
		Change: func(oldPos, newPos position.Position) { changes++ },
	}

	var b *chessboard.Board
	app := newApp(t, Config{}, &b,
		fx.Provide(func() chessboard.Renderer { return r }),
		fx.Supply(hooks),
	)
	app.RequireStart()
	defer app.RequireStop()

	if err := b.Start(false); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if r.draws < 2 {
		t.Errorf("renderer drew %d times, want at least 2", r.draws)
	}
	if changes != 1 {
		t.Errorf("Change fired %d times, want 1", changes)
	}
}

func TestModule_InvalidOrientation(t *testing.T) {
	var b *chessboard.Board
	app := fx.New(
		fx.NopLogger,
		fx.Supply(Config{Orientation: "sideways"}),
		fx.Supply(zap.NewNop()),
		Module,
		fx.Populate(&b),
	)
	if app.Err() == nil {
		t.Error("app.Err() = nil, want orientation error")
	}
}
