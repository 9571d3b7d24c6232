package game

import "github.com/samdwyer/deadwars/internal/geom"

// MenuOption is one labelled menu entry.
type MenuOption[T any] struct {
	Label string
	Value T
}

// PanelConfig lays out a vertical menu in screen space.
type PanelConfig[T any] struct {
	Options   []MenuOption[T]
	TopLeft   geom.Vec
	Width     float64
	RowHeight float64
}

// PanelItem is a laid-out menu entry.
type PanelItem[T any] struct {
	Label string
	Value T
	Rect  geom.Rect
}

// Panel is a clickable list of options. It lives in screen space and does not
// scroll with the camera.
type Panel[T any] struct {
	items []PanelItem[T]
}

// NewPanel lays the options out top to bottom, one row each.
func NewPanel[T any](cfg PanelConfig[T]) *Panel[T] {
	items := make([]PanelItem[T], len(cfg.Options))
	for i, opt := range cfg.Options {
		items[i] = PanelItem[T]{
			Label: opt.Label,
			Value: opt.Value,
			Rect: geom.Rect{
				Min: geom.Vec{X: cfg.TopLeft.X, Y: cfg.TopLeft.Y + float64(i)*cfg.RowHeight},
				W:   cfg.Width,
				H:   cfg.RowHeight,
			},
		}
	}
	return &Panel[T]{items: items}
}

// Hit returns the option under a screen position.
func (p *Panel[T]) Hit(pos geom.Vec) (T, bool) {
	for _, item := range p.items {
		if item.Rect.Contains(pos) {
			return item.Value, true
		}
	}
	var zero T
	return zero, false
}

// Items returns the laid-out entries for rendering.
func (p *Panel[T]) Items() []PanelItem[T] {
	return p.items
}
