// Package main implements the entry point for the fermentation station API
// server, which tracks fermentation projects, their reminder schedules, and
// their tasting logs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/MonksterFX/fermentation-station/internal/config"
	"github.com/MonksterFX/fermentation-station/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the application together, and serves until
// shutdown. Kept separate from main so the exit path stays in one place.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	slog.SetDefault(log)

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"persistence", cfg.Database.URL != "",
		"blob_driver", cfg.Blob.Driver,
		"dispatch_enabled", cfg.Dispatch.Enabled)

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(ctx)
}
