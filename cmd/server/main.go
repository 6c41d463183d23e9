package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"kwbrand/internal/config"
	"kwbrand/internal/jobs"
	"kwbrand/internal/metrics"
	"kwbrand/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	setupLogging(cfg)

	settings, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	log.Printf("Columns: keyword=%q volume=%q brand=%q provenance=%q, skip rows %d, coverage %.2f, %d preset rules",
		settings.Columns.Keyword, settings.Columns.Volume, settings.Columns.Brand, settings.Columns.Provenance,
		settings.SkipRows(), settings.Coverage, len(settings.PresetRules))

	srv := server.New(cfg, settings)
	if err := srv.RegisterRoutes(ctx); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	reaper := jobs.NewReaper(srv.Store, cfg.ReaperInterval, metrics.RecordEvictions)
	go reaper.Start(ctx)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// setupLogging routes slog (and the standard logger through it) to JSON
// when LOG_FORMAT=json.
func setupLogging(cfg *config.Config) {
	if cfg.LogFormat != "json" {
		return
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
}
