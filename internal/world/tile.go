// Package world provides the tactical map and its tiles.
package world

// Tile represents a single map tile. The value is the character used for it
// in map files.
type Tile rune

const (
	// TileWater is open water.
	TileWater Tile = 'w'
	// TileGrass is plain grassland.
	TileGrass Tile = 'g'
	// TileMountain is mountainous terrain.
	TileMountain Tile = 'm'
	// TileRoad is a road.
	TileRoad Tile = 'r'
)

// Tiles lists every tile type in map-file order.
var Tiles = []Tile{TileWater, TileGrass, TileMountain, TileRoad}

// ParseTile returns the tile for a map character.
func ParseTile(r rune) (Tile, bool) {
	for _, t := range Tiles {
		if rune(t) == r {
			return t, true
		}
	}
	return 0, false
}

// Rune returns the tile's map character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWater:
		return "water"
	case TileGrass:
		return "grass"
	case TileMountain:
		return "mountain"
	case TileRoad:
		return "road"
	default:
		return "unknown"
	}
}
