// Package bootstrap builds the repositories and services shared by the
// binaries from a loaded configuration.
package bootstrap

import (
	"fmt"

	"ecoride-backend/internal/config"
	"ecoride-backend/internal/logger"
	"ecoride-backend/internal/pricing"
	"ecoride-backend/internal/repository"
	"ecoride-backend/internal/repository/memory"
	"ecoride-backend/internal/repository/sqlite"
	"ecoride-backend/internal/service"
)

// App holds everything a binary needs to serve requests.
type App struct {
	Store   *repository.Store
	Catalog service.CatalogService
	Booking service.BookingService
	Email   service.EmailService

	close func() error
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// OpenStore opens the repository implementation named by the storage driver.
func OpenStore(cfg config.StorageConfig) (*repository.Store, func() error, error) {
	switch cfg.Driver {
	case config.StorageSQLite:
		logger.Info("Opening sqlite storage", "dsn", cfg.DSN)
		db, err := sqlite.OpenDB(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewStore(db), db.Close, nil
	case config.StorageMemory, "":
		logger.Info("Using in-memory storage")
		return memory.NewStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// NewEmailService sends through SendGrid when an API key is configured and
// only logs otherwise.
func NewEmailService(cfg config.EmailConfig) service.EmailService {
	if cfg.SendGridAPIKey == "" {
		logger.Info("SendGrid API key not set, reservation emails will be logged only")
		return service.NewLogEmailService()
	}
	logger.Info("SendGrid email enabled", "from", cfg.From)
	return service.NewEmailService(cfg.SendGridAPIKey, cfg.From, cfg.FromName)
}

// New wires storage, pricing, email and the two services.
func New(cfg *config.Config, clock service.Clock) (*App, error) {
	store, closeFn, err := OpenStore(cfg.Storage)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = service.SystemClock()
	}

	table := pricing.DefaultTable()
	emailSvc := NewEmailService(cfg.Email)
	minLead, grace := cfg.Booking.Rules()
	rules := service.BookingRules{
		MinLeadDays: minLead,
		GraceDays:   grace,
	}

	return &App{
		Store:   store,
		Catalog: service.NewCatalogService(store.CarRepository, table),
		Booking: service.NewBookingService(
			store.CarRepository,
			store.ReservationRepository,
			store.CustomerRepository,
			table,
			emailSvc,
			clock,
			rules,
		),
		Email: emailSvc,
		close: closeFn,
	}, nil
}
