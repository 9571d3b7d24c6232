package gamedata

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/samdwyer/deadwars/internal/entity"
	"github.com/samdwyer/deadwars/internal/geom"
	"github.com/samdwyer/deadwars/internal/world"
)

func TestLoadDefaultMap(t *testing.T) {
	grid, units, err := LoadMap(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to load default map: %v", err)
	}

	if grid.Width != 12 || grid.Height != 10 {
		t.Errorf("Expected 12x10 map, got %dx%d", grid.Width, grid.Height)
	}
	if units.Len() != 6 {
		t.Errorf("Expected 6 units, got %d", units.Len())
	}

	// Roster order decides IDs.
	first, ok := units.Unit(0)
	if !ok {
		t.Fatal("Unit 0 not found")
	}
	if first.Pos != (geom.Cell{X: 1, Y: 0}) || first.Kind != entity.KindBasic {
		t.Errorf("Unit 0 = %+v, want basic at (1,0)", first)
	}
}

func TestLoadMapFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.json")
	content := `{"width":3,"height":3,"tiles":["ggg","grg","ggg"],
		"characters":[{"x":0,"y":0,"char_type":"Basic"},{"x":1,"y":1,"char_type":"Basic"}]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	grid, units, err := LoadMap(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadMap(%s) failed: %v", path, err)
	}
	if grid.At(geom.Cell{X: 1, Y: 1}) != world.TileRoad {
		t.Errorf("Expected road at (1,1), got %v", grid.At(geom.Cell{X: 1, Y: 1}))
	}
	if got := units.InRangeOf(0); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("InRangeOf(0) = %v, want unit 1", got)
	}
}

func TestLoadMapMissingFile(t *testing.T) {
	if _, _, err := LoadMap(context.Background(), filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("LoadMap should fail for a missing file")
	}
}

func TestMapFileParseErrors(t *testing.T) {
	tests := []struct {
		name string
		file MapFile
	}{
		{
			name: "short row",
			file: MapFile{Width: 3, Height: 2, Tiles: []string{"ggg", "gg"}},
		},
		{
			name: "unknown tile",
			file: MapFile{Width: 2, Height: 1, Tiles: []string{"gz"}},
		},
		{
			name: "unknown kind",
			file: MapFile{Width: 2, Height: 1, Tiles: []string{"gg"},
				Characters: []CharacterDef{{X: 0, Y: 0, CharType: "dragon"}}},
		},
		{
			name: "spawn off map",
			file: MapFile{Width: 2, Height: 1, Tiles: []string{"gg"},
				Characters: []CharacterDef{{X: 2, Y: 0, CharType: "basic"}}},
		},
		{
			name: "shared spawn",
			file: MapFile{Width: 2, Height: 1, Tiles: []string{"gg"},
				Characters: []CharacterDef{{X: 1, Y: 0, CharType: "basic"}, {X: 1, Y: 0, CharType: "brute"}}},
		},
	}

	for _, tt := range tests {
		if _, _, err := tt.file.Parse(); err == nil {
			t.Errorf("%s: Parse should fail", tt.name)
		}
	}
}

func TestMapFileWithoutTilesIsPatterned(t *testing.T) {
	file := MapFile{Width: 4, Height: 3,
		Characters: []CharacterDef{{X: 3, Y: 2, CharType: "archer"}}}

	grid, spawns, err := file.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if grid.Width != 4 || grid.Height != 3 {
		t.Errorf("grid size = %dx%d, want 4x3", grid.Width, grid.Height)
	}
	if got := grid.At(geom.Cell{X: 1, Y: 1}); got != world.Tiles[2] {
		t.Errorf("At(1,1) = %v, want %v", got, world.Tiles[2])
	}
	if len(spawns) != 1 || spawns[0].Kind != entity.KindArcher {
		t.Errorf("spawns = %+v, want one archer", spawns)
	}

	empty := MapFile{}
	if _, _, err := empty.Parse(); err == nil {
		t.Error("Parse should reject a map with no size")
	}
}

func TestMapFileParseErrorKinds(t *testing.T) {
	file := MapFile{Width: 2, Height: 1, Tiles: []string{"gg"},
		Characters: []CharacterDef{{X: 0, Y: 0, CharType: "basic"}, {X: 0, Y: 0, CharType: "basic"}}}
	if _, _, err := file.Parse(); !errors.Is(err, entity.ErrOccupied) {
		t.Errorf("shared spawn error = %v, want ErrOccupied", err)
	}

	file.Characters = []CharacterDef{{X: 0, Y: 0, CharType: "wizard"}}
	if _, _, err := file.Parse(); !errors.Is(err, entity.ErrUnknownKind) {
		t.Errorf("unknown kind error = %v, want ErrUnknownKind", err)
	}
}

func TestLoadPalette(t *testing.T) {
	p, err := LoadPalette()
	if err != nil {
		t.Fatalf("Failed to load palette: %v", err)
	}

	for _, tile := range world.Tiles {
		if _, ok := p.Tiles[tile]; !ok {
			t.Errorf("Palette has no color for %v", tile)
		}
	}
	for _, kind := range entity.Kinds {
		if _, ok := p.Kinds[kind]; !ok {
			t.Errorf("Palette has no color for %v", kind)
		}
	}
	if p.Target.A != 0xff {
		t.Error("Palette colors should be opaque")
	}
}

func TestPaletteFallbackColors(t *testing.T) {
	file := PaletteFile{
		Path:       "#000001",
		Target:     "#000002",
		Menu:       "#000003",
		MenuText:   "#000004",
		Background: "#000005",
	}
	p, err := file.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := p.Tile(world.TileWater); got != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("unlisted tile color = %+v, want opaque white", got)
	}
	if got := p.Kind(entity.KindBasic); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("unlisted kind color = %+v, want opaque red", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}

	c := MustParseHexColor("#1E50C8")
	if c.R != 0x1E || c.G != 0x50 || c.B != 0xC8 || c.A != 0xFF {
		t.Errorf("MustParseHexColor(#1E50C8) = %+v", c)
	}
}
