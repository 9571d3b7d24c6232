package game

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/deadwars/internal/geom"
)

// Config holds game configuration options.
type Config struct {
	// TileSize is the edge length of a tile in screen units.
	TileSize float64
	// ScrollSpeed is how far the camera moves per update tick, in screen units.
	ScrollSpeed float64
	// UpdateRate and DrawRate are the fixed tick rates in Hz.
	UpdateRate int
	DrawRate   int
	// Menu layout for the post-move menu, in screen units.
	MenuAnchor    geom.Vec
	MenuWidth     float64
	MenuRowHeight float64
	// MapPath is a map file on disk. Empty means the embedded default.
	MapPath string
}

// DefaultConfig returns the settings for the pixel frontend.
func DefaultConfig() Config {
	return Config{
		TileSize:      64,
		ScrollSpeed:   10,
		UpdateRate:    20,
		DrawRate:      60,
		MenuAnchor:    geom.Vec{X: 10, Y: 20},
		MenuWidth:     80,
		MenuRowHeight: 30,
	}
}

// TerminalConfig returns the settings for the terminal frontend, where one
// tile is one screen unit.
func TerminalConfig() Config {
	return Config{
		TileSize:      1,
		ScrollSpeed:   1,
		UpdateRate:    20,
		DrawRate:      60,
		MenuAnchor:    geom.Vec{X: 1, Y: 1},
		MenuWidth:     5,
		MenuRowHeight: 1,
	}
}

// ConfigFromEnv overrides base with DEADWARS_* environment variables.
func ConfigFromEnv(base Config) (Config, error) {
	cfg := base

	floats := []struct {
		key string
		dst *float64
	}{
		{"DEADWARS_TILE_SIZE", &cfg.TileSize},
		{"DEADWARS_SCROLL_SPEED", &cfg.ScrollSpeed},
	}
	for _, f := range floats {
		if v, ok := os.LookupEnv(f.key); ok && v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return base, fmt.Errorf("%s: %w", f.key, err)
			}
			*f.dst = parsed
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"DEADWARS_UPDATE_HZ", &cfg.UpdateRate},
		{"DEADWARS_DRAW_HZ", &cfg.DrawRate},
	}
	for _, i := range ints {
		if v, ok := os.LookupEnv(i.key); ok && v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return base, fmt.Errorf("%s: %w", i.key, err)
			}
			*i.dst = parsed
		}
	}

	if v, ok := os.LookupEnv("DEADWARS_MAP"); ok {
		cfg.MapPath = v
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate rejects settings the core cannot run with.
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %v", c.TileSize)
	}
	if c.ScrollSpeed < 0 {
		return fmt.Errorf("scroll speed must not be negative, got %v", c.ScrollSpeed)
	}
	if c.UpdateRate <= 0 || c.DrawRate <= 0 {
		return fmt.Errorf("tick rates must be positive, got update=%d draw=%d", c.UpdateRate, c.DrawRate)
	}
	return nil
}
