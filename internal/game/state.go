// Package game provides the turn interaction core: the state machine that
// turns pointer and keyboard input into unit moves, the camera, and the
// session that ties them to a map.
package game

import (
	"github.com/samdwyer/deadwars/internal/entity"
	"github.com/samdwyer/deadwars/internal/geom"
)

// Phase names the variant of the current turn state.
type Phase int

const (
	// PhaseIdle is the resting phase. No unit is selected.
	PhaseIdle Phase = iota
	// PhaseDrawingPath is entered when a unit is selected. The pointer extends
	// or shortens its route.
	PhaseDrawingPath
	// PhaseAwaitingArrival lasts while the selected unit walks its route.
	PhaseAwaitingArrival
	// PhaseChoosingAction shows the post-move menu.
	PhaseChoosingAction
	// PhaseChoosingTarget waits for the player to pick a unit to fight.
	PhaseChoosingTarget
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDrawingPath:
		return "drawing_path"
	case PhaseAwaitingArrival:
		return "awaiting_arrival"
	case PhaseChoosingAction:
		return "choosing_action"
	case PhaseChoosingTarget:
		return "choosing_target"
	default:
		return "unknown"
	}
}

// State is the turn interaction state. Exactly one variant is active at a time.
type State interface {
	Phase() Phase
}

// Idle means no unit is selected.
type Idle struct{}

// DrawingPath holds the route being drawn for Unit. Path starts at the unit's
// cell, is never empty and never repeats a cell twice in a row.
type DrawingPath struct {
	Unit entity.ID
	Path []geom.Cell
}

// AwaitingArrival means Unit is walking toward Destination.
type AwaitingArrival struct {
	Unit        entity.ID
	Destination geom.Cell
}

// ChoosingAction means Unit has arrived and the post-move menu is open.
type ChoosingAction struct {
	Menu        *Panel[Action]
	Unit        entity.ID
	Destination geom.Cell
}

// ChoosingTarget lists the units Unit may fight from Origin. Candidates are
// computed once when the state is entered.
type ChoosingTarget struct {
	Unit       entity.ID
	Origin     geom.Cell
	Candidates []entity.Candidate
}

func (Idle) Phase() Phase            { return PhaseIdle }
func (DrawingPath) Phase() Phase     { return PhaseDrawingPath }
func (AwaitingArrival) Phase() Phase { return PhaseAwaitingArrival }
func (ChoosingAction) Phase() Phase  { return PhaseChoosingAction }
func (ChoosingTarget) Phase() Phase  { return PhaseChoosingTarget }

// Action is an entry of the post-move menu.
type Action int

const (
	ActionFight Action = iota
	ActionStay
	ActionUndo
)

// String returns the menu label.
func (a Action) String() string {
	switch a {
	case ActionFight:
		return "Fight"
	case ActionStay:
		return "Stay"
	case ActionUndo:
		return "Undo"
	default:
		return "Unknown"
	}
}

// postMoveActions is the fixed menu order.
var postMoveActions = []Action{ActionFight, ActionStay, ActionUndo}

// Engagement records the fight target the player picked. Resolving the fight
// is not part of this package.
type Engagement struct {
	Attacker entity.ID
	Target   entity.ID
	At       geom.Cell
}

// Transition describes what an event or tick did to the state.
type Transition struct {
	From, To Phase
	Unit     entity.ID
	// Committed is set when the move was accepted (Stay or a fight target).
	Committed bool
	// Undone is set when a pending move was rolled back.
	Undone     bool
	Engagement *Engagement
}

// Changed reports whether the phase changed.
func (t Transition) Changed() bool {
	return t.From != t.To
}
