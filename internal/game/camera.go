package game

import "github.com/samdwyer/deadwars/internal/geom"

// Direction is a scroll direction.
type Direction int

const (
	DirLeft Direction = iota
	DirUp
	DirRight
	DirDown
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// Translation returns the unit change applied to the world offset while the
// direction is held. Looking left moves the world right.
func (d Direction) Translation() geom.Vec {
	switch d {
	case DirLeft:
		return geom.Vec{X: 1}
	case DirRight:
		return geom.Vec{X: -1}
	case DirUp:
		return geom.Vec{Y: 1}
	case DirDown:
		return geom.Vec{Y: -1}
	default:
		return geom.Vec{}
	}
}

// directionFor maps a scroll key to its direction.
func directionFor(k Key) (Direction, bool) {
	switch k {
	case KeyScrollLeft:
		return DirLeft, true
	case KeyScrollRight:
		return DirRight, true
	case KeyScrollUp:
		return DirUp, true
	case KeyScrollDown:
		return DirDown, true
	default:
		return 0, false
	}
}

// Viewport supplies the current camera translation.
type Viewport interface {
	Offset() geom.Vec
}

// Camera accumulates held scroll keys into a world offset. The offset never
// goes positive on either axis, so the map origin cannot scroll into view
// past the top-left corner.
//
// Several physical keys may drive one direction, so presses are counted and
// a direction stays held until every press has been released.
type Camera struct {
	held   map[Direction]int
	offset geom.Vec
	speed  float64
}

// NewCamera creates a camera at the origin.
func NewCamera(speed float64) *Camera {
	return &Camera{
		held:  make(map[Direction]int, 4),
		speed: speed,
	}
}

// KeyDown starts scrolling if k is a scroll key.
func (c *Camera) KeyDown(k Key) {
	if d, ok := directionFor(k); ok {
		c.held[d]++
	}
}

// KeyUp releases one press of k. Scrolling stops once no press is left.
func (c *Camera) KeyUp(k Key) {
	d, ok := directionFor(k)
	if !ok {
		return
	}
	if c.held[d] <= 1 {
		delete(c.held, d)
		return
	}
	c.held[d]--
}

// ReleaseAll drops every held direction.
func (c *Camera) ReleaseAll() {
	clear(c.held)
}

// Held reports whether a direction is currently held.
func (c *Camera) Held(d Direction) bool {
	return c.held[d] > 0
}

// Tick applies one update of scrolling and reports whether the offset moved.
func (c *Camera) Tick() bool {
	var delta geom.Vec
	for d := range c.held {
		delta = delta.Add(d.Translation())
	}
	next := c.offset.Add(delta.Scale(c.speed))
	if next.X > 0 {
		next.X = 0
	}
	if next.Y > 0 {
		next.Y = 0
	}
	changed := next != c.offset
	c.offset = next
	return changed
}

// Offset returns the translation applied to the world.
func (c *Camera) Offset() geom.Vec {
	return c.offset
}
