package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Booking   BookingConfig   `yaml:"booking"`
	Email     EmailConfig     `yaml:"email"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Seed      SeedConfig      `yaml:"seed"`
}

// ServerConfig contains gRPC and HTTP listener settings
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`      // gRPC
	HTTPPort int    `yaml:"http_port"` // REST
}

// StorageConfig selects the repository implementation
type StorageConfig struct {
	Driver string `yaml:"driver"` // "memory" or "sqlite"
	DSN    string `yaml:"dsn"`    // sqlite only, defaults to :memory:
}

const (
	defaultMinLeadDays = 3
	defaultGraceDays   = 2
)

// BookingConfig holds the reservation date rules. A nil field is unset and
// takes the default; an explicit 0 is kept.
type BookingConfig struct {
	MinLeadDays *int `yaml:"min_lead_days"`
	GraceDays   *int `yaml:"grace_days"`
}

// Rules returns the configured windows with defaults for unset fields.
func (b BookingConfig) Rules() (minLeadDays, graceDays int) {
	minLeadDays, graceDays = defaultMinLeadDays, defaultGraceDays
	if b.MinLeadDays != nil {
		minLeadDays = *b.MinLeadDays
	}
	if b.GraceDays != nil {
		graceDays = *b.GraceDays
	}
	return minLeadDays, graceDays
}

// EmailConfig contains SendGrid settings. Without an API key notices are
// only logged.
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	From           string `yaml:"from"`
	FromName       string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	Enabled                      bool   `yaml:"enabled"`
	CompleteFinishedReservations string `yaml:"complete_finished_reservations"`
}

// SeedConfig controls sample data loaded at startup
type SeedConfig struct {
	SampleFleet bool `yaml:"sample_fleet"`
}

// Load reads configuration from a YAML file. An empty path starts from the
// built-in defaults.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		cfg = Default()
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server:    ServerConfig{Host: "0.0.0.0", Port: 50051, HTTPPort: 8080},
		Storage:   StorageConfig{Driver: StorageMemory},
		Booking:   BookingConfig{MinLeadDays: intPtr(defaultMinLeadDays), GraceDays: intPtr(defaultGraceDays)},
		Email:     EmailConfig{From: "bookings@ecoride.lk", FromName: "EcoRide"},
		Log:       LogConfig{Level: "info", Format: "text"},
		Scheduler: SchedulerConfig{Enabled: true},
		Seed:      SeedConfig{SampleFleet: true},
	}
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.HTTPPort)
	}

	// Storage
	if val := os.Getenv("STORAGE_DRIVER"); val != "" {
		c.Storage.Driver = val
	}
	if val := os.Getenv("STORAGE_DSN"); val != "" {
		c.Storage.DSN = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.From = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.HTTPPort == c.Server.Port {
		return fmt.Errorf("HTTP port and gRPC port must differ: %d", c.Server.Port)
	}

	// Storage validation
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = StorageMemory
	case StorageMemory, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}
	if c.Storage.Driver == StorageSQLite && c.Storage.DSN == "" {
		c.Storage.DSN = ":memory:"
	}

	// Booking defaults
	minLead, grace := c.Booking.Rules()
	if minLead < 0 || grace < 0 {
		return fmt.Errorf("booking windows must not be negative")
	}
	c.Booking.MinLeadDays = intPtr(minLead)
	c.Booking.GraceDays = intPtr(grace)

	// Email defaults
	if c.Email.SendGridAPIKey != "" && c.Email.From == "" {
		return fmt.Errorf("email sender address is required when SendGrid is enabled")
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "EcoRide"
	}

	// Scheduler defaults
	if c.Scheduler.CompleteFinishedReservations == "" {
		c.Scheduler.CompleteFinishedReservations = "0 0 1 * * *" // 1 AM UTC
	}

	return nil
}

// GetServerAddress returns the gRPC server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetHTTPAddress returns the REST server address
func (c *Config) GetHTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

func intPtr(v int) *int {
	return &v
}
