// Package main is the windowed entry point for Dead Wars.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/samdwyer/deadwars/internal/game"
	"github.com/samdwyer/deadwars/internal/gamedata"
	"github.com/samdwyer/deadwars/internal/gui"
	"github.com/samdwyer/deadwars/internal/logger"
	"github.com/samdwyer/deadwars/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	telemetry.ConfigureHoneycombEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sessionID := uuid.NewString()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx, sessionID)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	cfg, err := game.ConfigFromEnv(game.DefaultConfig())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	lg := logger.Init(logger.OptionsFromEnv())

	grid, units, err := gamedata.LoadMap(ctx, cfg.MapPath)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}
	palette, err := gamedata.LoadPalette()
	if err != nil {
		log.Fatalf("Failed to load palette: %v", err)
	}

	g := game.New(cfg, grid, units,
		game.WithLogger(lg),
		game.WithSessionID(sessionID),
	)

	app, err := gui.NewApp(ctx, g, palette, lg.WithField("session", sessionID))
	if err != nil {
		log.Fatalf("Failed to initialize window: %v", err)
	}
	if err := gui.Run(app, "Dead Wars"); err != nil {
		lg.WithError(err).Error("game loop failed")
	}
}
