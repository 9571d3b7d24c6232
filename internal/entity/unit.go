package entity

import (
	"errors"

	"github.com/samdwyer/deadwars/internal/geom"
)

var (
	// ErrInvariant marks a corrupted registry. Operations that detect it panic
	// with an error wrapping this value instead of guessing a recovery.
	ErrInvariant = errors.New("unit registry invariant violated")

	// ErrOccupied is returned at load time when two units would share a cell.
	ErrOccupied = errors.New("cell already occupied")

	// ErrUnknownKind is returned when a roster names an archetype that does not exist.
	ErrUnknownKind = errors.New("unknown unit kind")
)

// ID identifies a unit for the lifetime of a session. IDs are never reused.
type ID uint64

// Unit is a single piece on the tactical map.
type Unit struct {
	ID   ID
	Pos  geom.Cell
	Kind Kind
}

// Range returns the unit's targeting range.
func (u Unit) Range() int {
	return u.Kind.Range()
}

// Spawn is one roster record from a map description.
type Spawn struct {
	X, Y int
	Kind Kind
}

// Cell returns the spawn position.
func (s Spawn) Cell() geom.Cell {
	return geom.Cell{X: s.X, Y: s.Y}
}

// Candidate is another unit found by a range query.
type Candidate struct {
	ID  ID
	Pos geom.Cell
}
