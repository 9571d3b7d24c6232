package geom

import "math"

// Mapper converts between screen positions and grid cells for square tiles
// of a fixed edge length.
type Mapper struct {
	TileSize float64
}

// ScreenToGrid returns the cell under a screen position. The offset is the
// camera translation currently applied to the world; it is removed before
// dividing by the tile size, and each axis is floored on its own.
func (m Mapper) ScreenToGrid(screen, offset Vec) Cell {
	world := screen.Sub(offset)
	return Cell{
		X: int(math.Floor(world.X / m.TileSize)),
		Y: int(math.Floor(world.Y / m.TileSize)),
	}
}

// GridToScreen returns the screen position of the top-left corner of a cell.
func (m Mapper) GridToScreen(c Cell, offset Vec) Vec {
	return Vec{X: float64(c.X) * m.TileSize, Y: float64(c.Y) * m.TileSize}.Add(offset)
}

// CellRect returns the screen rectangle covered by a cell.
func (m Mapper) CellRect(c Cell, offset Vec) Rect {
	return Rect{Min: m.GridToScreen(c, offset), W: m.TileSize, H: m.TileSize}
}
