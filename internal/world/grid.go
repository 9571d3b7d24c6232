package world

import (
	"fmt"

	"github.com/samdwyer/deadwars/internal/geom"
)

// Grid is the tactical map, stored row-major.
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewGrid builds a grid from row strings. Every row must hold exactly width
// known tile characters and there must be exactly height rows.
func NewGrid(width, height int, rows []string) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", width, height)
	}
	if len(rows) != height {
		return nil, fmt.Errorf("map declares %d rows, got %d", height, len(rows))
	}

	tiles := make([][]Tile, height)
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has %d tiles, want %d", y, len(runes), width)
		}
		tiles[y] = make([]Tile, width)
		for x, r := range runes {
			tile, ok := ParseTile(r)
			if !ok {
				return nil, fmt.Errorf("row %d column %d: unknown tile %q", y, x, r)
			}
			tiles[y][x] = tile
		}
	}

	return &Grid{Width: width, Height: height, Tiles: tiles}, nil
}

// NewPatterned builds a width x height grid cycling water, grass, mountain
// and road along the diagonals. Used when no map file is available.
func NewPatterned(width, height int) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = Tiles[(x+y)%len(Tiles)]
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// Contains reports whether c lies on the map.
func (g *Grid) Contains(c geom.Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// At returns the tile at c. Cells off the map read as water.
func (g *Grid) At(c geom.Cell) Tile {
	if !g.Contains(c) {
		return TileWater
	}
	return g.Tiles[c.Y][c.X]
}

// Rows returns the grid as map-file row strings.
func (g *Grid) Rows() []string {
	rows := make([]string, g.Height)
	for y, row := range g.Tiles {
		runes := make([]rune, len(row))
		for x, t := range row {
			runes[x] = t.Rune()
		}
		rows[y] = string(runes)
	}
	return rows
}
