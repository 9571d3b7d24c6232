// Package entity provides the units on the tactical map and the registry that owns them.
package entity

import (
	"fmt"
	"strings"
)

// Kind is a unit archetype. It decides the unit's targeting range.
type Kind int

const (
	KindBasic Kind = iota
	KindArcher
	KindBrute
)

// Kinds lists every archetype in declaration order.
var Kinds = []Kind{KindBasic, KindArcher, KindBrute}

// String returns the kind's display name.
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "Basic"
	case KindArcher:
		return "Archer"
	case KindBrute:
		return "Brute"
	default:
		return "Unknown"
	}
}

// ID returns the kind identifier used in map files.
func (k Kind) ID() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindArcher:
		return "archer"
	case KindBrute:
		return "brute"
	default:
		return "unknown"
	}
}

// Symbol returns the default display symbol for a kind.
func (k Kind) Symbol() rune {
	switch k {
	case KindBasic:
		return 'B'
	case KindArcher:
		return 'A'
	case KindBrute:
		return 'X'
	default:
		return '?'
	}
}

// Range returns the tile-distance threshold used by targeting. A unit is in
// range when the ceiling of the Euclidean distance is strictly less than it.
func (k Kind) Range() int {
	switch k {
	case KindBasic:
		return 3
	case KindArcher:
		return 5
	case KindBrute:
		return 2
	default:
		return 0
	}
}

// ParseKind resolves a kind from its identifier or display name, ignoring case.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, k.ID()) || strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
