package gamedata

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/deadwars/internal/entity"
	"github.com/samdwyer/deadwars/internal/telemetry"
	"github.com/samdwyer/deadwars/internal/world"
)

// DefaultMap is the embedded map used when no map file is configured.
const DefaultMap = "map.json"

// CharacterDef is one unit spawn in a map file.
type CharacterDef struct {
	X        int    `json:"x"`         // Column
	Y        int    `json:"y"`         // Row
	CharType string `json:"char_type"` // Kind id or name (e.g., "basic")
}

// MapFile represents the structure of a map file.
type MapFile struct {
	Width      int            `json:"width"`      // Columns per row
	Height     int            `json:"height"`     // Number of rows
	Tiles      []string       `json:"tiles"`      // Row-major tile characters
	Characters []CharacterDef `json:"characters"` // Unit roster
}

// Parse validates the map and converts it into a grid and a roster.
// Spawns must name a known kind, lie on the map and not share a cell.
// A file without tile rows gets the generated diagonal pattern.
func (m *MapFile) Parse() (*world.Grid, []entity.Spawn, error) {
	grid, err := m.grid()
	if err != nil {
		return nil, nil, err
	}

	spawns := make([]entity.Spawn, 0, len(m.Characters))
	seen := make(map[[2]int]int, len(m.Characters))
	for i, c := range m.Characters {
		kind, err := entity.ParseKind(c.CharType)
		if err != nil {
			return nil, nil, fmt.Errorf("character %d: %w", i, err)
		}
		spawn := entity.Spawn{X: c.X, Y: c.Y, Kind: kind}
		if !grid.Contains(spawn.Cell()) {
			return nil, nil, fmt.Errorf("character %d: position %v is outside the %dx%d map", i, spawn.Cell(), m.Width, m.Height)
		}
		key := [2]int{c.X, c.Y}
		if prev, ok := seen[key]; ok {
			return nil, nil, fmt.Errorf("character %d: %w by character %d at %v", i, entity.ErrOccupied, prev, spawn.Cell())
		}
		seen[key] = i
		spawns = append(spawns, spawn)
	}

	return grid, spawns, nil
}

func (m *MapFile) grid() (*world.Grid, error) {
	if len(m.Tiles) > 0 {
		return world.NewGrid(m.Width, m.Height, m.Tiles)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", m.Width, m.Height)
	}
	return world.NewPatterned(m.Width, m.Height), nil
}

// LoadMap loads a map from disk, or the embedded default when path is empty,
// and builds the grid and unit registry from it.
func LoadMap(ctx context.Context, path string) (*world.Grid, *entity.Registry, error) {
	tracer := telemetry.Tracer("gamedata")
	_, span := tracer.Start(ctx, "map.load")
	defer span.End()

	var (
		file MapFile
		err  error
	)
	if path == "" {
		file, err = Load[MapFile](DefaultMap)
		span.SetAttributes(attribute.String("map.source", "embedded"))
	} else {
		file, err = LoadFile[MapFile](path)
		span.SetAttributes(attribute.String("map.source", path))
	}
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	grid, spawns, err := file.Parse()
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("invalid map: %w", err)
	}

	units, err := entity.NewRegistry(spawns)
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("invalid roster: %w", err)
	}

	span.SetAttributes(
		attribute.Int("map.width", grid.Width),
		attribute.Int("map.height", grid.Height),
		attribute.Int("map.units", units.Len()),
	)
	return grid, units, nil
}
