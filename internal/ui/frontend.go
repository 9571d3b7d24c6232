package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/deadwars/internal/game"
)

// Frontend runs a game session in the terminal.
type Frontend struct {
	screen   *Screen
	renderer *Renderer
	game     *game.Game
	input    *Translator
	log      logrus.FieldLogger

	// nudged holds scroll keys pressed since the last update. Terminals do
	// not report key releases, so each press scrolls for one update tick.
	nudged []game.Key
}

// NewFrontend binds a session to a screen.
func NewFrontend(screen *Screen, renderer *Renderer, g *game.Game, log logrus.FieldLogger) *Frontend {
	return &Frontend{
		screen:   screen,
		renderer: renderer,
		game:     g,
		input:    NewTranslator(),
		log:      log,
	}
}

// Run executes the main loop until the player quits or ctx is cancelled.
// Input is drained as it arrives, the session updates at cfg.UpdateRate and
// the screen redraws at cfg.DrawRate.
func (f *Frontend) Run(ctx context.Context) error {
	cfg := f.game.Config()
	update := time.NewTicker(time.Second / time.Duration(cfg.UpdateRate))
	defer update.Stop()
	draw := time.NewTicker(time.Second / time.Duration(cfg.DrawRate))
	defer draw.Stop()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go f.pump(events, done)

	f.renderer.Render(f.game)
	for {
		select {
		case <-ctx.Done():
			f.log.Info("frontend stopped by context")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := f.handle(ctx, ev); quit {
				f.log.Info("player quit")
				return nil
			}
		case <-update.C:
			f.game.Tick(ctx)
			f.releaseNudged(ctx)
		case <-draw.C:
			f.renderer.Render(f.game)
		}
	}
}

// pump forwards terminal events until the screen closes or done is closed.
func (f *Frontend) pump(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handle applies one terminal event and reports whether the player quit.
func (f *Frontend) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		f.screen.Sync()
	case *tcell.EventKey:
		if IsQuit(ev) {
			return true
		}
		for _, e := range f.input.Key(ev) {
			f.game.HandleEvent(ctx, e)
			if kd, ok := e.(game.KeyDown); ok && kd.Key != game.KeyCancel {
				f.nudged = append(f.nudged, kd.Key)
			}
		}
	case *tcell.EventMouse:
		for _, e := range f.input.Mouse(ev) {
			f.game.HandleEvent(ctx, e)
		}
	}
	return false
}

func (f *Frontend) releaseNudged(ctx context.Context) {
	for _, k := range f.nudged {
		f.game.HandleEvent(ctx, game.KeyUp{Key: k})
	}
	f.nudged = f.nudged[:0]
}

// IsQuit reports whether a key event asks to leave the game.
func IsQuit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')
}

// Translator turns tcell events into game events. tcell reports the full
// button state with every mouse event, so the translator remembers the last
// state to produce press and release edges.
type Translator struct {
	buttons tcell.ButtonMask
	col     int
	row     int
	seen    bool
}

// NewTranslator creates a translator with no buttons held.
func NewTranslator() *Translator {
	return &Translator{}
}

var buttonMap = []struct {
	mask   tcell.ButtonMask
	button game.Button
}{
	{tcell.ButtonPrimary, game.ButtonLeft},
	{tcell.ButtonSecondary, game.ButtonRight},
	{tcell.ButtonMiddle, game.ButtonMiddle},
}

// Mouse translates a mouse event. A position change is reported before any
// button edge.
func (t *Translator) Mouse(ev *tcell.EventMouse) []game.Event {
	col, row := ev.Position()
	pos := toScreen(col, row)

	var out []game.Event
	if !t.seen || col != t.col || row != t.row {
		out = append(out, game.PointerMove{Pos: pos})
		t.col, t.row, t.seen = col, row, true
	}

	now := ev.Buttons()
	for _, b := range buttonMap {
		was := t.buttons&b.mask != 0
		is := now&b.mask != 0
		switch {
		case is && !was:
			out = append(out, game.PointerDown{Button: b.button, Pos: pos})
		case was && !is:
			out = append(out, game.PointerUp{Button: b.button, Pos: pos})
		}
	}
	t.buttons = now
	return out
}

// Key translates a key press. Arrows and WASD scroll, Esc cancels.
func (t *Translator) Key(ev *tcell.EventKey) []game.Event {
	k := keyFor(ev)
	if k == game.KeyUnknown {
		return nil
	}
	return []game.Event{game.KeyDown{Key: k}}
}

func keyFor(ev *tcell.EventKey) game.Key {
	switch ev.Key() {
	case tcell.KeyLeft:
		return game.KeyScrollLeft
	case tcell.KeyRight:
		return game.KeyScrollRight
	case tcell.KeyUp:
		return game.KeyScrollUp
	case tcell.KeyDown:
		return game.KeyScrollDown
	case tcell.KeyEscape:
		return game.KeyCancel
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return game.KeyScrollLeft
		case 'd', 'D':
			return game.KeyScrollRight
		case 'w', 'W':
			return game.KeyScrollUp
		case 's', 'S':
			return game.KeyScrollDown
		}
	}
	return game.KeyUnknown
}
