package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ecoride-backend/internal/bootstrap"
	"ecoride-backend/internal/config"
	"ecoride-backend/internal/jobs"
	"ecoride-backend/internal/logger"
	"ecoride-backend/internal/scheduler"
	"ecoride-backend/internal/service"
)

// The standalone runner shares state with the server only through a sqlite
// file; cmd/server runs the same jobs in-process for the memory driver.
func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'complete-finished-reservations', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EcoRide Cronjob Runner...", "log_level", cfg.Log.Level)

	if cfg.Storage.Driver != config.StorageSQLite || cfg.Storage.DSN == "" || cfg.Storage.DSN == ":memory:" {
		log.Fatalf("Cronjob runner needs storage.driver=sqlite with a database file, got driver=%q dsn=%q", cfg.Storage.Driver, cfg.Storage.DSN)
	}

	// Initialize repositories and services
	app, err := bootstrap.New(cfg, service.SystemClock())
	if err != nil {
		logger.Error("Failed to initialize services", "error", err)
		log.Fatalf("Failed to initialize services: %v", err)
	}
	defer app.Close()

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(&jobs.Services{Booking: app.Booking}, service.SystemClock(), cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !runJobOnce(jobRunner, *runOnce) {
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and reports whether the name was known
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) bool {
	switch jobName {
	case "complete-finished-reservations":
		jobRunner.CompleteFinishedReservations()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - complete-finished-reservations\n")
		fmt.Printf("  - all-nightly\n")
		return false
	}
	return true
}
