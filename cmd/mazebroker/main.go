// Package main is the entry point for Maze Stockbroker.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/mazebroker/internal/config"
	"github.com/samdwyer/mazebroker/internal/game"
	"github.com/samdwyer/mazebroker/internal/session"
	"github.com/samdwyer/mazebroker/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file %s: %v", cfg.LogFile, err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("telemetry setup failed, running without observability", slog.String("error", err.Error()))
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error("telemetry shutdown failed", slog.String("error", err.Error()))
			}
		}()
	}

	sess, err := session.New(ctx, session.Config{
		Width:         cfg.Width,
		Height:        cfg.Height,
		InitialPrices: cfg.InitialPrices(),
		InitialCash:   cfg.InitialCash,
		AssetNames:    cfg.AssetNames,
		Seed:          cfg.Seed,
	}, logger)
	if err != nil {
		logger.Error("failed to create session", slog.String("error", err.Error()))
		log.Fatalf("Failed to create session: %v", err)
	}

	// Create and run game
	g, err := game.New(sess, logger)
	if err != nil {
		logger.Error("failed to initialize game", slog.String("error", err.Error()))
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		logger.Error("game error", slog.String("error", err.Error()))
		log.Fatalf("Game error: %v", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set.
// Explicit OTEL_* variables win.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_MAZEBROKER_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_MAZEBROKER_DATASET")
	if dataset == "" {
		dataset = "mazebroker" // default dataset name
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_HEADERS") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
