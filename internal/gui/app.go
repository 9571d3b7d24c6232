// Package gui provides the windowed frontend using ebiten.
package gui

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/samdwyer/deadwars/internal/game"
	"github.com/samdwyer/deadwars/internal/gamedata"
	"github.com/samdwyer/deadwars/internal/geom"
)

// FrameRate is ebiten's update rate. The session itself advances every
// FrameRate/UpdateRate frames.
const FrameRate = 60

const fontSize = 20

// keyBindings may bind several keys to one game key. Each edge is sent on
// its own and the camera counts the presses.
var keyBindings = map[ebiten.Key]game.Key{
	ebiten.KeyArrowLeft:  game.KeyScrollLeft,
	ebiten.KeyA:          game.KeyScrollLeft,
	ebiten.KeyArrowRight: game.KeyScrollRight,
	ebiten.KeyD:          game.KeyScrollRight,
	ebiten.KeyArrowUp:    game.KeyScrollUp,
	ebiten.KeyW:          game.KeyScrollUp,
	ebiten.KeyArrowDown:  game.KeyScrollDown,
	ebiten.KeyS:          game.KeyScrollDown,
	ebiten.KeyEscape:     game.KeyCancel,
}

var buttonBindings = map[ebiten.MouseButton]game.Button{
	ebiten.MouseButtonLeft:   game.ButtonLeft,
	ebiten.MouseButtonRight:  game.ButtonRight,
	ebiten.MouseButtonMiddle: game.ButtonMiddle,
}

// App adapts a game session to ebiten.Game.
type App struct {
	ctx     context.Context
	game    *game.Game
	palette *gamedata.Palette
	face    font.Face
	log     logrus.FieldLogger

	tickEvery int
	frame     int

	cursorX, cursorY int
	cursorSeen       bool
}

// NewApp builds the frontend for g.
func NewApp(ctx context.Context, g *game.Game, palette *gamedata.Palette, log logrus.FieldLogger) (*App, error) {
	face, err := loadFace()
	if err != nil {
		return nil, err
	}
	every := FrameRate / g.Config().UpdateRate
	if every < 1 {
		every = 1
	}
	return &App{
		ctx:       ctx,
		game:      g,
		palette:   palette,
		face:      face,
		log:       log,
		tickEvery: every,
	}, nil
}

func loadFace() (font.Face, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}

// Update drains this frame's input, then advances the session on every
// tickEvery-th frame. Nothing runs while the window is unfocused.
func (a *App) Update() error {
	if err := a.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	a.game.SetFocus(ebiten.IsFocused())
	if a.game.Paused() {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		a.log.Info("player quit")
		return ebiten.Termination
	}

	for _, ev := range a.pollInput() {
		a.game.HandleEvent(a.ctx, ev)
	}

	a.frame++
	if a.frame%a.tickEvery == 0 {
		a.game.Tick(a.ctx)
	}
	return nil
}

func (a *App) pollInput() []game.Event {
	var events []game.Event

	x, y := ebiten.CursorPosition()
	pos := geom.Vec{X: float64(x), Y: float64(y)}
	if !a.cursorSeen || x != a.cursorX || y != a.cursorY {
		events = append(events, game.PointerMove{Pos: pos})
		a.cursorX, a.cursorY, a.cursorSeen = x, y, true
	}

	for eb, b := range buttonBindings {
		if inpututil.IsMouseButtonJustPressed(eb) {
			events = append(events, game.PointerDown{Button: b, Pos: pos})
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			events = append(events, game.PointerUp{Button: b, Pos: pos})
		}
	}

	for eb, k := range keyBindings {
		if inpututil.IsKeyJustPressed(eb) {
			events = append(events, game.KeyDown{Key: k})
		}
		if inpututil.IsKeyJustReleased(eb) {
			events = append(events, game.KeyUp{Key: k})
		}
	}
	return events
}

// Draw renders the map, highlights, units and menu.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.palette.Background)

	hints := a.game.Hints()
	offset := a.game.Offset()
	mapper := a.game.Mapper()
	grid := a.game.Grid()

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := geom.Cell{X: x, Y: y}
			fillRect(screen, mapper.CellRect(c, offset), a.palette.Tile(grid.At(c)))
		}
	}

	for _, c := range hints.Path {
		fillRect(screen, mapper.CellRect(c, offset), withAlpha(a.palette.Path, 0x90))
	}
	for _, c := range hints.Targets {
		strokeRect(screen, mapper.CellRect(c, offset), 3, a.palette.Target)
	}
	if hints.HasCursor && hints.Phase == game.PhaseDrawingPath {
		strokeRect(screen, mapper.CellRect(hints.Cursor, offset), 1, a.palette.Path)
	}

	inset := mapper.TileSize / 8
	for _, u := range a.game.Units().Units() {
		r := mapper.CellRect(u.Pos, offset)
		body := geom.Rect{
			Min: r.Min.Add(geom.Vec{X: inset, Y: inset}),
			W:   r.W - 2*inset,
			H:   r.H - 2*inset,
		}
		fillRect(screen, body, a.palette.Kind(u.Kind))
		if hints.HasSelection && hints.Selected == u.ID {
			strokeRect(screen, body, 2, a.palette.MenuText)
		}
		text.Draw(screen, string(u.Kind.Symbol()), a.face,
			int(body.Min.X+body.W/2-fontSize/3), int(body.Min.Y+body.H/2+fontSize/3), color.White)
	}

	for _, item := range hints.Menu {
		fillRect(screen, item.Rect, a.palette.Menu)
		strokeRect(screen, item.Rect, 1, a.palette.MenuText)
		text.Draw(screen, item.Label, a.face,
			int(item.Rect.Min.X+6), int(item.Rect.Min.Y+item.Rect.H-8), a.palette.MenuText)
	}

	ebitenutil.DebugPrintAt(screen, a.status(hints), 8, screen.Bounds().Dy()-20)
}

// Layout uses the window size as the logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (a *App) status(h game.Hints) string {
	s := fmt.Sprintf("%s  tick %d  offset (%.0f,%.0f)", h.Phase, a.game.Ticks(), a.game.Offset().X, a.game.Offset().Y)
	if h.HasSelection {
		if u, ok := a.game.Units().Unit(h.Selected); ok {
			s = fmt.Sprintf("%s  %s at %v range %d", s, u.Kind, u.Pos, u.Range())
		}
	}
	return s
}

func fillRect(dst *ebiten.Image, r geom.Rect, clr color.Color) {
	vector.FillRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.W), float32(r.H), clr, false)
}

func strokeRect(dst *ebiten.Image, r geom.Rect, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.W), float32(r.H), width, clr, false)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// color.RGBA is premultiplied.
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 0xff) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}

// Run opens the window and blocks until it is closed.
func Run(app *App, title string) error {
	ebiten.SetWindowSize(960, 640)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(FrameRate)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(app)
}
