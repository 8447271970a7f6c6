// Package main implements the entry point for the WaveForge server, which
// accepts free-text music descriptions, renders audio for them in background
// tasks, and serves the finished tracks over HTTP.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/rgoodwin/waveforge/internal/config"
	"github.com/rgoodwin/waveforge/internal/platform/logger"
	"github.com/rgoodwin/waveforge/internal/store"
	"github.com/rgoodwin/waveforge/internal/synth"
	"github.com/rgoodwin/waveforge/internal/task"
)

// application bundles the long-lived dependencies the server hands between
// its initialization, routing and shutdown phases.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	manager *task.Manager
	janitor *task.Janitor
}

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.serve(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and wires up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"audio_dir", cfg.Storage.AudioDir)

	artifacts, err := store.NewArtifactStore(cfg.Storage.AudioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to set up artifact store: %w", err)
	}

	manager, err := task.NewManager(
		synth.NewToneProducer(),
		artifacts,
		task.ManagerConfig{
			MinDuration:   cfg.Generation.MinDuration,
			MaxDuration:   cfg.Generation.MaxDuration,
			StepInterval:  cfg.Generation.StepInterval,
			MaxConcurrent: cfg.Generation.MaxConcurrent,
		},
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up task manager: %w", err)
	}

	janitor := task.NewJanitor(manager, cfg.Cleanup.Retention, cfg.Cleanup.Interval, appLogger)

	return &application{
		config:  cfg,
		logger:  appLogger,
		manager: manager,
		janitor: janitor,
	}, nil
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	app.logger.Info("stopping task manager")
	app.manager.Close()
}
