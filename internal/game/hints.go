package game

import (
	"github.com/samdwyer/deadwars/internal/entity"
	"github.com/samdwyer/deadwars/internal/geom"
)

// MenuItem is a menu row to draw, in screen space.
type MenuItem struct {
	Label string
	Rect  geom.Rect
}

// Hints is what the renderer needs to draw the current turn state.
type Hints struct {
	Phase Phase
	// Path is the route preview while drawing.
	Path []geom.Cell
	// Targets are the cells of the fight candidates.
	Targets []geom.Cell
	// Menu is non-empty while the post-move menu is open.
	Menu []MenuItem

	Selected     entity.ID
	HasSelection bool

	// Cursor is the cell under the last known pointer position.
	Cursor    geom.Cell
	HasCursor bool
}

// Hints returns a snapshot for rendering. Slices are copies.
func (m *Machine) Hints() Hints {
	h := Hints{Phase: m.state.Phase()}
	h.Selected, h.HasSelection = selectedUnit(m.state)
	if m.hasPointer {
		h.Cursor, h.HasCursor = m.cellAt(m.pointer), true
	}

	switch s := m.state.(type) {
	case DrawingPath:
		h.Path = append([]geom.Cell(nil), s.Path...)
	case ChoosingAction:
		for _, item := range s.Menu.Items() {
			h.Menu = append(h.Menu, MenuItem{Label: item.Label, Rect: item.Rect})
		}
	case ChoosingTarget:
		h.Targets = make([]geom.Cell, len(s.Candidates))
		for i, c := range s.Candidates {
			h.Targets[i] = c.Pos
		}
	}
	return h
}
