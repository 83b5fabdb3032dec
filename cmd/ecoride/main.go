package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ecoride-backend/internal/bootstrap"
	"ecoride-backend/internal/config"
	"ecoride-backend/internal/console"
	"ecoride-backend/internal/logger"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to configuration file (built-in defaults when empty)")
	logLevel := flag.String("log-level", "warn", "Log level written to stderr")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Logs go to stderr so the menu on stdout stays readable
	logger.InitializeWithWriter(os.Stderr, *logLevel, cfg.Log.Format)

	app, err := bootstrap.New(cfg, nil)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Seed.SampleFleet {
		if err := bootstrap.Seed(ctx, app.Catalog); err != nil {
			log.Fatalf("Failed to load sample fleet: %v", err)
		}
	}

	if err := console.New(os.Stdin, os.Stdout, app.Catalog, app.Booking).Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Console stopped", "error", err)
		os.Exit(1)
	}
}
