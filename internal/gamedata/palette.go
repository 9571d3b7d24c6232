package gamedata

import (
	"fmt"
	"image/color"

	"github.com/samdwyer/deadwars/internal/entity"
	"github.com/samdwyer/deadwars/internal/world"
)

// PaletteFile represents the structure of palette.json. Every color is a
// "#RRGGBB" string.
type PaletteFile struct {
	Tiles      map[string]string `json:"tiles"`      // Keyed by tile character
	Kinds      map[string]string `json:"kinds"`      // Keyed by kind id
	Path       string            `json:"path"`       // Path preview highlight
	Target     string            `json:"target"`     // Fight target highlight
	Menu       string            `json:"menu"`       // Menu row background
	MenuText   string            `json:"menuText"`   // Menu label color
	Background string            `json:"background"` // Clear color
}

// Fallbacks for tiles and kinds a palette does not list.
var (
	MissingTileColor = MustParseHexColor("#FFFFFF")
	MissingKindColor = MustParseHexColor("#FF0000")
)

// Palette holds the parsed display colors shared by the frontends.
type Palette struct {
	Tiles      map[world.Tile]color.RGBA
	Kinds      map[entity.Kind]color.RGBA
	Path       color.RGBA
	Target     color.RGBA
	Menu       color.RGBA
	MenuText   color.RGBA
	Background color.RGBA
}

// Tile returns the color for a tile, MissingTileColor if the palette has none.
func (p *Palette) Tile(t world.Tile) color.RGBA {
	if c, ok := p.Tiles[t]; ok {
		return c
	}
	return MissingTileColor
}

// Kind returns the color for a unit kind, MissingKindColor if the palette has none.
func (p *Palette) Kind(k entity.Kind) color.RGBA {
	if c, ok := p.Kinds[k]; ok {
		return c
	}
	return MissingKindColor
}

// LoadPalette loads the embedded palette.json.
func LoadPalette() (*Palette, error) {
	file, err := Load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	return file.Parse()
}

// MustLoadPalette loads the palette, panicking on error.
func MustLoadPalette() *Palette {
	file := MustLoad[PaletteFile]("palette.json")
	p, err := file.Parse()
	if err != nil {
		panic(err)
	}
	return p
}

// Parse converts the file's hex strings into colors.
func (f *PaletteFile) Parse() (*Palette, error) {
	p := &Palette{
		Tiles: make(map[world.Tile]color.RGBA, len(f.Tiles)),
		Kinds: make(map[entity.Kind]color.RGBA, len(f.Kinds)),
	}

	for key, hex := range f.Tiles {
		runes := []rune(key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("palette tile key %q must be a single character", key)
		}
		tile, ok := world.ParseTile(runes[0])
		if !ok {
			return nil, fmt.Errorf("palette names unknown tile %q", key)
		}
		c, err := ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", key, err)
		}
		p.Tiles[tile] = c
	}

	for key, hex := range f.Kinds {
		kind, err := entity.ParseKind(key)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		c, err := ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("kind %q: %w", key, err)
		}
		p.Kinds[kind] = c
	}

	singles := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"path", f.Path, &p.Path},
		{"target", f.Target, &p.Target},
		{"menu", f.Menu, &p.Menu},
		{"menuText", f.MenuText, &p.MenuText},
		{"background", f.Background, &p.Background},
	}
	for _, s := range singles {
		c, err := ParseHexColor(s.hex)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		*s.dst = c
	}

	return p, nil
}
