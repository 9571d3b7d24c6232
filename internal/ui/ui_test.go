package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deadwars/internal/entity"
	"github.com/samdwyer/deadwars/internal/game"
	"github.com/samdwyer/deadwars/internal/gamedata"
	"github.com/samdwyer/deadwars/internal/geom"
	"github.com/samdwyer/deadwars/internal/logger"
	"github.com/samdwyer/deadwars/internal/world"
)

func newTestFrontend(t *testing.T) (*Frontend, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	sim.SetSize(40, 12)
	t.Cleanup(screen.Close)

	units, err := entity.NewRegistry([]entity.Spawn{
		{X: 1, Y: 1, Kind: entity.KindBasic},
		{X: 3, Y: 2, Kind: entity.KindArcher},
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	g := game.New(game.TerminalConfig(), world.NewPatterned(6, 4), units,
		game.WithLogger(logger.Discard()))

	renderer := NewRenderer(screen, gamedata.MustLoadPalette())
	return NewFrontend(screen, renderer, g, logger.Discard()), sim
}

func rowText(sim tcell.SimulationScreen, row int) string {
	w, _ := sim.Size()
	var b strings.Builder
	for col := 0; col < w; col++ {
		r, _, _, _ := sim.GetContent(col, row)
		b.WriteRune(r)
	}
	return b.String()
}

func TestTranslatorMouseEdges(t *testing.T) {
	tr := NewTranslator()

	got := tr.Mouse(tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone))
	want := []game.Event{game.PointerMove{Pos: geom.Vec{X: 2, Y: 2}}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("first event = %v, want %v", got, want)
	}

	got = tr.Mouse(tcell.NewEventMouse(4, 2, tcell.ButtonPrimary, tcell.ModNone))
	if len(got) != 1 || got[0] != (game.PointerDown{Button: game.ButtonLeft, Pos: geom.Vec{X: 2, Y: 2}}) {
		t.Errorf("press = %v, want a single left PointerDown", got)
	}

	// Dragging with the button held reports only the move.
	got = tr.Mouse(tcell.NewEventMouse(7, 3, tcell.ButtonPrimary, tcell.ModNone))
	if len(got) != 1 || got[0] != (game.PointerMove{Pos: geom.Vec{X: 3.5, Y: 3}}) {
		t.Errorf("drag = %v, want a single PointerMove", got)
	}

	got = tr.Mouse(tcell.NewEventMouse(7, 3, tcell.ButtonSecondary, tcell.ModNone))
	if len(got) != 2 {
		t.Fatalf("swap buttons = %v, want two events", got)
	}
	if got[0] != (game.PointerUp{Button: game.ButtonLeft, Pos: geom.Vec{X: 3.5, Y: 3}}) {
		t.Errorf("swap buttons[0] = %v, want left PointerUp", got[0])
	}
	if got[1] != (game.PointerDown{Button: game.ButtonRight, Pos: geom.Vec{X: 3.5, Y: 3}}) {
		t.Errorf("swap buttons[1] = %v, want right PointerDown", got[1])
	}
}

func TestTranslatorKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want game.Key
	}{
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.KeyScrollLeft},
		{"arrow down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), game.KeyScrollDown},
		{"d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), game.KeyScrollRight},
		{"W", tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), game.KeyScrollUp},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.KeyCancel},
	}

	tr := NewTranslator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Key(tt.ev)
			if len(got) != 1 || got[0] != (game.KeyDown{Key: tt.want}) {
				t.Errorf("Key() = %v, want KeyDown{%v}", got, tt.want)
			}
		})
	}

	if got := tr.Key(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); got != nil {
		t.Errorf("Key('x') = %v, want nil", got)
	}
}

func TestIsQuit(t *testing.T) {
	if !IsQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if !IsQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("ctrl-c should quit")
	}
	if IsQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape cancels, it must not quit")
	}
}

func TestRenderDrawsTilesUnitsAndStatus(t *testing.T) {
	f, sim := newTestFrontend(t)
	palette := f.renderer.palette

	f.renderer.Render(f.game)

	r, _, style, _ := sim.GetContent(2, 1)
	if r != 'B' {
		t.Errorf("unit glyph = %q, want 'B'", r)
	}
	fg, _, _ := style.Decompose()
	if fg != toColor(palette.Kind(entity.KindBasic)) {
		t.Errorf("unit colour = %v, want basic kind colour", fg)
	}
	if r, _, _, _ := sim.GetContent(7, 2); r != 'A' {
		t.Errorf("archer glyph = %q, want 'A'", r)
	}

	tile := f.game.Grid().At(geom.Cell{X: 0, Y: 0})
	r, _, style, _ = sim.GetContent(0, 0)
	if r != tileGlyph(tile) {
		t.Errorf("tile glyph = %q, want %q", r, tileGlyph(tile))
	}
	if _, bg, _ := style.Decompose(); bg != toColor(palette.Tile(tile)) {
		t.Errorf("tile background = %v, want %v", bg, toColor(palette.Tile(tile)))
	}

	if status := rowText(sim, 11); !strings.Contains(status, "[idle]") {
		t.Errorf("status line = %q, want it to name the idle phase", status)
	}
}

func TestClickSelectsAndDrawsPath(t *testing.T) {
	f, sim := newTestFrontend(t)
	ctx := context.Background()

	f.handle(ctx, tcell.NewEventMouse(2, 1, tcell.ButtonPrimary, tcell.ModNone))
	f.handle(ctx, tcell.NewEventMouse(4, 1, tcell.ButtonNone, tcell.ModNone))

	if got := f.game.Phase(); got != game.PhaseDrawingPath {
		t.Fatalf("phase = %v, want drawing_path", got)
	}
	f.renderer.Render(f.game)

	_, _, style, _ := sim.GetContent(4, 1)
	if _, bg, _ := style.Decompose(); bg != toColor(f.renderer.palette.Path) {
		t.Errorf("path cell background = %v, want path colour", bg)
	}
	if status := rowText(sim, 11); !strings.Contains(status, "Basic (1,1)") {
		t.Errorf("status line = %q, want the selected unit", status)
	}
}

func TestScrollKeyNudgesOneTick(t *testing.T) {
	f, _ := newTestFrontend(t)
	ctx := context.Background()

	f.handle(ctx, tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	f.game.Tick(ctx)
	f.releaseNudged(ctx)
	f.game.Tick(ctx)

	if got := f.game.Offset(); got != (geom.Vec{X: -1}) {
		t.Errorf("offset = %v, want one tile to the right", got)
	}
}

func TestRunQuits(t *testing.T) {
	f, sim := newTestFrontend(t)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := f.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ctx.Err() != nil {
		t.Error("Run() returned only after the timeout, want it to stop on q")
	}
}
