package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/deadwars/internal/game"
	"github.com/samdwyer/deadwars/internal/gamedata"
	"github.com/samdwyer/deadwars/internal/geom"
	"github.com/samdwyer/deadwars/internal/world"
)

// CellWidth is how many terminal columns one screen unit spans. Terminal
// cells are about twice as tall as wide, so tiles are drawn two columns wide.
const CellWidth = 2

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the map, units, turn hints and status line.
func (r *Renderer) Render(g *game.Game) {
	r.screen.Clear()

	hints := g.Hints()
	offset := g.Offset()
	mapper := g.Mapper()
	_, height := r.screen.Size()

	grid := g.Grid()
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := geom.Cell{X: x, Y: y}
			tile := grid.At(c)
			r.fillCell(mapper, offset, c, tileGlyph(tile), tcell.StyleDefault.
				Background(toColor(r.palette.Tile(tile))).
				Foreground(tcell.ColorWhite))
		}
	}

	pathStyle := tcell.StyleDefault.Background(toColor(r.palette.Path)).Foreground(tcell.ColorBlack)
	for _, c := range hints.Path {
		r.fillCell(mapper, offset, c, ' ', pathStyle)
	}
	targetStyle := tcell.StyleDefault.Background(toColor(r.palette.Target)).Foreground(tcell.ColorBlack)
	for _, c := range hints.Targets {
		r.fillCell(mapper, offset, c, ' ', targetStyle)
	}

	for _, u := range g.Units().Units() {
		style := tcell.StyleDefault.
			Background(r.backgroundAt(grid, hints, u.Pos)).
			Foreground(toColor(r.palette.Kind(u.Kind))).
			Bold(true)
		if hints.HasSelection && hints.Selected == u.ID {
			style = style.Reverse(true)
		}
		col, row := r.cellOrigin(mapper, offset, u.Pos)
		r.screen.SetContent(col, row, u.Kind.Symbol(), style)
		r.screen.SetContent(col+1, row, u.Kind.Symbol(), style)
	}

	menuStyle := tcell.StyleDefault.
		Background(toColor(r.palette.Menu)).
		Foreground(toColor(r.palette.MenuText))
	for _, item := range hints.Menu {
		r.fillRect(item.Rect, menuStyle)
		col, row := toTerminal(item.Rect.Min)
		r.screen.SetString(col+1, row, item.Label, menuStyle)
	}

	r.RenderMessage(statusLine(g, hints), height-1)
	r.screen.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.SetString(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (r *Renderer) cellOrigin(mapper geom.Mapper, offset geom.Vec, c geom.Cell) (int, int) {
	return toTerminal(mapper.GridToScreen(c, offset))
}

// fillCell paints one tile, two columns wide, with glyph in the left column.
func (r *Renderer) fillCell(mapper geom.Mapper, offset geom.Vec, c geom.Cell, glyph rune, style tcell.Style) {
	rect := mapper.CellRect(c, offset)
	col, row := toTerminal(rect.Min)
	r.fillRect(rect, style)
	r.screen.SetContent(col, row, glyph, style)
}

func (r *Renderer) fillRect(rect geom.Rect, style tcell.Style) {
	col0, row0 := toTerminal(rect.Min)
	col1, row1 := toTerminal(rect.Min.Add(geom.Vec{X: rect.W, Y: rect.H}))
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			r.screen.SetContent(col, row, ' ', style)
		}
	}
}

// backgroundAt returns the highlight a unit stands on, so units on the path
// or a target cell keep that colour behind their symbol.
func (r *Renderer) backgroundAt(grid *world.Grid, hints game.Hints, c geom.Cell) tcell.Color {
	for _, t := range hints.Targets {
		if t == c {
			return toColor(r.palette.Target)
		}
	}
	for _, p := range hints.Path {
		if p == c {
			return toColor(r.palette.Path)
		}
	}
	return toColor(r.palette.Tile(grid.At(c)))
}

// toTerminal converts a screen-space position to a terminal column and row.
func toTerminal(v geom.Vec) (col, row int) {
	return int(math.Floor(v.X * CellWidth)), int(math.Floor(v.Y))
}

// toScreen converts a terminal column and row to a screen-space position.
func toScreen(col, row int) geom.Vec {
	return geom.Vec{X: float64(col) / CellWidth, Y: float64(row)}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func tileGlyph(t world.Tile) rune {
	switch t {
	case world.TileWater:
		return '~'
	case world.TileGrass:
		return '.'
	case world.TileMountain:
		return '^'
	case world.TileRoad:
		return '='
	default:
		return '?'
	}
}

func statusLine(g *game.Game, h game.Hints) string {
	var help string
	switch h.Phase {
	case game.PhaseIdle:
		help = "click a unit"
	case game.PhaseDrawingPath:
		help = "drag a path, click to move"
	case game.PhaseAwaitingArrival:
		help = "moving"
	case game.PhaseChoosingAction:
		help = "choose an action"
	case game.PhaseChoosingTarget:
		help = "click a highlighted unit"
	}
	line := fmt.Sprintf("[%s] %s | arrows/wasd scroll, right-click/esc cancel, q quit", h.Phase, help)
	if h.HasSelection {
		if u, ok := g.Units().Unit(h.Selected); ok {
			line = fmt.Sprintf("%s %v | %s", u.Kind, u.Pos, line)
		}
	}
	return line
}
