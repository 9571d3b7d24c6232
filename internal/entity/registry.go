package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/samdwyer/deadwars/internal/geom"
)

// activeMove is the single in-flight path animation.
type activeMove struct {
	unit  ID
	steps []geom.Cell // front is the next step
}

// lastMove is the one-entry undo log for the move that has not been committed yet.
type lastMove struct {
	unit ID
	from geom.Cell
}

// Registry owns every unit on the map. Other parts of the game refer to units
// only by ID.
type Registry struct {
	nextID ID
	units  map[ID]*Unit
	active *activeMove
	last   *lastMove
}

// NewRegistry creates a registry from roster records, allocating IDs in
// roster order. Two spawns on the same cell are rejected.
func NewRegistry(spawns []Spawn) (*Registry, error) {
	r := &Registry{
		units: make(map[ID]*Unit, len(spawns)),
	}
	for i, s := range spawns {
		if _, err := r.Add(s.Cell(), s.Kind); err != nil {
			return nil, fmt.Errorf("spawn %d: %w", i, err)
		}
	}
	return r, nil
}

// Add places a new unit and returns its ID.
func (r *Registry) Add(pos geom.Cell, kind Kind) (ID, error) {
	for _, u := range r.units {
		if u.Pos == pos {
			return 0, fmt.Errorf("%w: %v holds unit %d", ErrOccupied, pos, u.ID)
		}
	}
	id := r.nextID
	r.nextID++
	r.units[id] = &Unit{ID: id, Pos: pos, Kind: kind}
	return id, nil
}

// Unit returns a copy of the unit with the given ID.
func (r *Registry) Unit(id ID) (Unit, bool) {
	u, ok := r.units[id]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

// Units returns copies of all units ordered by ID.
func (r *Registry) Units() []Unit {
	result := make([]Unit, 0, len(r.units))
	for _, id := range r.sortedIDs() {
		result = append(result, *r.units[id])
	}
	return result
}

// Len returns the number of units.
func (r *Registry) Len() int {
	return len(r.units)
}

// UnitAt returns the unit standing on pos. While no move is animating, two
// units on one cell is a corrupted placement and panics.
func (r *Registry) UnitAt(pos geom.Cell) (ID, bool) {
	var (
		found ID
		ok    bool
	)
	for _, id := range r.sortedIDs() {
		if r.units[id].Pos != pos {
			continue
		}
		if !ok {
			found, ok = id, true
			if r.active != nil {
				break
			}
			continue
		}
		panic(fmt.Errorf("%w: units %d and %d share %v", ErrInvariant, found, id, pos))
	}
	return found, ok
}

// InRangeOf returns every other unit whose distance to id, rounded up, is
// strictly less than id's range. The result is ordered by ID and is empty for
// an unknown id.
func (r *Registry) InRangeOf(id ID) []Candidate {
	self, ok := r.units[id]
	if !ok {
		return nil
	}
	limit := float64(self.Range())
	var result []Candidate
	for _, otherID := range r.sortedIDs() {
		if otherID == id {
			continue
		}
		other := r.units[otherID]
		if math.Ceil(geom.Distance(self.Pos, other.Pos)) < limit {
			result = append(result, Candidate{ID: otherID, Pos: other.Pos})
		}
	}
	return result
}

// BeginMove starts animating id along path. It does nothing and returns false
// while another move is in flight or when path is empty. The unit's current
// position is recorded so the move can be undone until it is committed.
func (r *Registry) BeginMove(id ID, path []geom.Cell) bool {
	if r.active != nil || len(path) == 0 {
		return false
	}
	u := r.mustUnit(id)
	steps := make([]geom.Cell, len(path))
	copy(steps, path)
	r.last = &lastMove{unit: id, from: u.Pos}
	r.active = &activeMove{unit: id, steps: steps}
	return true
}

// Tick advances the active move by one step. It returns true only on the tick
// that consumes the final step.
func (r *Registry) Tick() bool {
	if r.active == nil {
		return false
	}
	u := r.mustUnit(r.active.unit)
	u.Pos = r.active.steps[0]
	r.active.steps = r.active.steps[1:]
	if len(r.active.steps) > 0 {
		return false
	}
	r.active = nil
	return true
}

// Commit accepts the outcome of the last move. Positions are left untouched.
func (r *Registry) Commit() {
	r.last = nil
	r.checkPlacement()
}

// Undo puts the unit of the last move back where it started and forgets the
// record. A move still in flight is abandoned. Without a record it does nothing.
func (r *Registry) Undo() {
	if r.last == nil {
		return
	}
	u := r.mustUnit(r.last.unit)
	u.Pos = r.last.from
	r.active = nil
	r.last = nil
}

// Moving reports whether a move is animating.
func (r *Registry) Moving() bool {
	return r.active != nil
}

// Pending reports whether a finished or running move is waiting to be
// committed or undone.
func (r *Registry) Pending() bool {
	return r.last != nil
}

// Destination returns the final cell of the active move.
func (r *Registry) Destination() (geom.Cell, bool) {
	if r.active == nil {
		return geom.Cell{}, false
	}
	return r.active.steps[len(r.active.steps)-1], true
}

func (r *Registry) mustUnit(id ID) *Unit {
	u, ok := r.units[id]
	if !ok {
		panic(fmt.Errorf("%w: unit %d not found", ErrInvariant, id))
	}
	return u
}

// checkPlacement panics if two units share a cell.
func (r *Registry) checkPlacement() {
	seen := make(map[geom.Cell]ID, len(r.units))
	for _, id := range r.sortedIDs() {
		pos := r.units[id].Pos
		if other, ok := seen[pos]; ok {
			panic(fmt.Errorf("%w: units %d and %d share %v", ErrInvariant, other, id, pos))
		}
		seen[pos] = id
	}
}

func (r *Registry) sortedIDs() []ID {
	ids := make([]ID, 0, len(r.units))
	for id := range r.units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
