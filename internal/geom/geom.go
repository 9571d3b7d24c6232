// Package geom provides grid cells, screen vectors and the mapping between them.
package geom

import (
	"fmt"
	"math"
)

// Cell is an integer (column, row) coordinate on the tactical map.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// String returns the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Distance returns the straight-line distance between two cells.
func Distance(a, b Cell) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Vec is a position or offset in screen space.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k on both axes.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Rect is an axis-aligned rectangle in screen space.
type Rect struct {
	Min  Vec
	W, H float64
}

// Contains reports whether p lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X < r.Min.X+r.W &&
		p.Y >= r.Min.Y && p.Y < r.Min.Y+r.H
}
