package game

import (
	"slices"

	"github.com/samdwyer/deadwars/internal/entity"
	"github.com/samdwyer/deadwars/internal/geom"
)

// MenuLayout positions the post-move menu in screen space.
type MenuLayout struct {
	TopLeft   geom.Vec
	Width     float64
	RowHeight float64
}

// MachineOptions configures a Machine.
type MachineOptions struct {
	Mapper geom.Mapper
	// Bounds reports whether a cell is on the map. Nil accepts every cell.
	Bounds func(geom.Cell) bool
	Menu   MenuLayout
}

// Machine turns input events and ticks into unit moves. It only changes unit
// positions through the registry.
type Machine struct {
	units  *entity.Registry
	view   Viewport
	mapper geom.Mapper
	bounds func(geom.Cell) bool
	menu   MenuLayout

	state State

	pointer    geom.Vec
	hasPointer bool
}

// NewMachine creates a machine in the Idle state.
func NewMachine(units *entity.Registry, view Viewport, opts MachineOptions) *Machine {
	return &Machine{
		units:  units,
		view:   view,
		mapper: opts.Mapper,
		bounds: opts.Bounds,
		menu:   opts.Menu,
		state:  Idle{},
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Phase returns the phase of the current state.
func (m *Machine) Phase() Phase {
	return m.state.Phase()
}

// HandleEvent applies one input event. Input that does not fit the current
// state is ignored.
func (m *Machine) HandleEvent(ev Event) Transition {
	switch ev := ev.(type) {
	case PointerMove:
		m.trackPointer(ev.Pos)
		return m.pointerMoved(ev.Pos)
	case PointerDown:
		m.trackPointer(ev.Pos)
		switch ev.Button {
		case ButtonLeft:
			return m.leftDown(ev.Pos)
		case ButtonRight:
			return m.cancel()
		}
	case KeyDown:
		if ev.Key == KeyCancel {
			return m.cancel()
		}
	}
	return m.unchanged()
}

// Tick advances the registry by one step and opens the post-move menu when
// the walking unit arrives.
func (m *Machine) Tick() Transition {
	arrived := m.units.Tick()
	s, ok := m.state.(AwaitingArrival)
	if !ok || !arrived {
		return m.unchanged()
	}
	menu := NewPanel(PanelConfig[Action]{
		Options:   actionOptions(),
		TopLeft:   m.menu.TopLeft,
		Width:     m.menu.Width,
		RowHeight: m.menu.RowHeight,
	})
	t := m.enter(ChoosingAction{Menu: menu, Unit: s.Unit, Destination: s.Destination})
	t.Unit = s.Unit
	return t
}

// Rescan re-applies the last known pointer position. The camera calls for it
// after scrolling, since the cell under a still pointer changes.
func (m *Machine) Rescan() Transition {
	if !m.hasPointer {
		return m.unchanged()
	}
	return m.pointerMoved(m.pointer)
}

func (m *Machine) trackPointer(pos geom.Vec) {
	m.pointer = pos
	m.hasPointer = true
}

func (m *Machine) cellAt(pos geom.Vec) geom.Cell {
	return m.mapper.ScreenToGrid(pos, m.view.Offset())
}

func (m *Machine) pointerMoved(pos geom.Vec) Transition {
	s, ok := m.state.(DrawingPath)
	if !ok {
		return m.unchanged()
	}
	cell := m.cellAt(pos)
	if m.bounds != nil && !m.bounds(cell) {
		return m.unchanged()
	}
	// Paths handed out by State are never written to again, so every
	// change builds a fresh slice.
	n := len(s.Path)
	switch {
	case n >= 2 && s.Path[n-2] == cell:
		s.Path = slices.Clone(s.Path[:n-1])
	case s.Path[n-1] != cell:
		next := make([]geom.Cell, n, n+1)
		copy(next, s.Path)
		s.Path = append(next, cell)
	default:
		return m.unchanged()
	}
	t := m.enter(s)
	t.Unit = s.Unit
	return t
}

func (m *Machine) leftDown(pos geom.Vec) Transition {
	switch s := m.state.(type) {
	case Idle:
		if m.units.Moving() {
			return m.unchanged()
		}
		cell := m.cellAt(pos)
		id, ok := m.units.UnitAt(cell)
		if !ok {
			return m.unchanged()
		}
		t := m.enter(DrawingPath{Unit: id, Path: []geom.Cell{cell}})
		t.Unit = id
		return t

	case DrawingPath:
		// A path that never left the start cell is not a move.
		if len(s.Path) < 2 {
			return m.unchanged()
		}
		dest := s.Path[len(s.Path)-1]
		if other, ok := m.units.UnitAt(dest); ok && other != s.Unit {
			return m.unchanged()
		}
		if !m.units.BeginMove(s.Unit, s.Path) {
			return m.unchanged()
		}
		t := m.enter(AwaitingArrival{Unit: s.Unit, Destination: dest})
		t.Unit = s.Unit
		return t

	case ChoosingAction:
		action, ok := s.Menu.Hit(pos)
		if !ok {
			return m.unchanged()
		}
		switch action {
		case ActionUndo:
			m.units.Undo()
			t := m.enter(Idle{})
			t.Unit, t.Undone = s.Unit, true
			return t
		case ActionStay:
			m.units.Commit()
			t := m.enter(Idle{})
			t.Unit, t.Committed = s.Unit, true
			return t
		case ActionFight:
			t := m.enter(ChoosingTarget{
				Unit:       s.Unit,
				Origin:     s.Destination,
				Candidates: m.units.InRangeOf(s.Unit),
			})
			t.Unit = s.Unit
			return t
		}

	case ChoosingTarget:
		cell := m.cellAt(pos)
		for _, c := range s.Candidates {
			if c.Pos != cell {
				continue
			}
			m.units.Commit()
			t := m.enter(Idle{})
			t.Unit, t.Committed = s.Unit, true
			t.Engagement = &Engagement{Attacker: s.Unit, Target: c.ID, At: s.Origin}
			return t
		}
	}
	return m.unchanged()
}

// cancel rolls back any pending move and drops the selection.
func (m *Machine) cancel() Transition {
	unit, _ := selectedUnit(m.state)
	undone := m.units.Pending()
	m.units.Undo()
	t := m.enter(Idle{})
	t.Unit, t.Undone = unit, undone
	return t
}

// enter swaps in the next state and reports the phase change.
func (m *Machine) enter(next State) Transition {
	from := m.state.Phase()
	m.state = next
	return Transition{From: from, To: next.Phase()}
}

func (m *Machine) unchanged() Transition {
	p := m.state.Phase()
	unit, _ := selectedUnit(m.state)
	return Transition{From: p, To: p, Unit: unit}
}

func selectedUnit(s State) (entity.ID, bool) {
	switch s := s.(type) {
	case DrawingPath:
		return s.Unit, true
	case AwaitingArrival:
		return s.Unit, true
	case ChoosingAction:
		return s.Unit, true
	case ChoosingTarget:
		return s.Unit, true
	default:
		return 0, false
	}
}

func actionOptions() []MenuOption[Action] {
	opts := make([]MenuOption[Action], len(postMoveActions))
	for i, a := range postMoveActions {
		opts[i] = MenuOption[Action]{Label: a.String(), Value: a}
	}
	return opts
}
