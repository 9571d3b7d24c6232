package game

import "github.com/samdwyer/deadwars/internal/geom"

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Key is a logical key. Frontends map their native keys onto these.
type Key int

const (
	KeyUnknown Key = iota
	KeyScrollLeft
	KeyScrollRight
	KeyScrollUp
	KeyScrollDown
	// KeyCancel behaves like a right click.
	KeyCancel
)

// Event is an input event delivered by the windowing layer.
type Event interface {
	isEvent()
}

// PointerDown is a button press at a screen position.
type PointerDown struct {
	Button Button
	Pos    geom.Vec
}

// PointerUp is a button release at a screen position.
type PointerUp struct {
	Button Button
	Pos    geom.Vec
}

// PointerMove reports the pointer's new screen position.
type PointerMove struct {
	Pos geom.Vec
}

// KeyDown is a key press.
type KeyDown struct {
	Key Key
}

// KeyUp is a key release.
type KeyUp struct {
	Key Key
}

func (PointerDown) isEvent() {}
func (PointerUp) isEvent()   {}
func (PointerMove) isEvent() {}
func (KeyDown) isEvent()     {}
func (KeyUp) isEvent()       {}
