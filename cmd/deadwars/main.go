// Package main is the terminal entry point for Dead Wars.
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
	"github.com/samdwyer/deadwars/internal/logger"
	"github.com/samdwyer/deadwars/internal/telemetry"
	"github.com/samdwyer/deadwars/internal/ui"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
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
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	cfg, err := game.ConfigFromEnv(game.TerminalConfig())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// tcell owns the terminal, so runtime logs go to a file.
	logPath := os.Getenv("LOG_FILE")
	if logPath == "" {
		logPath = "deadwars.log"
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	opts := logger.OptionsFromEnv()
	opts.Output = logFile
	lg := logger.Init(opts)

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

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	defer screen.Close()

	frontend := ui.NewFrontend(screen, ui.NewRenderer(screen, palette), g, lg.WithField("session", sessionID))
	if err := frontend.Run(ctx); err != nil {
		lg.WithError(err).Error("game loop failed")
	}
}
