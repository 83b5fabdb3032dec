// Package sqlite implements the repositories on top of sqlx and the pure-Go
// SQLite driver. The default DSN is an in-memory database, so nothing
// survives a restart.
package sqlite

import (
	"fmt"
	"time"

	"ecoride-backend/internal/repository"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverName = "sqlite"
	MemoryDSN  = ":memory:"

	timestampLayout = time.RFC3339Nano
)

const schema = `
CREATE TABLE IF NOT EXISTS cars(
  id TEXT PRIMARY KEY,
  model TEXT NOT NULL,
  category TEXT NOT NULL,
  daily_rate TEXT NOT NULL,
  availability TEXT NOT NULL CHECK (availability IN ('AVAILABLE','RESERVED')),
  created_on TEXT NOT NULL,
  updated_on TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cars_category ON cars(category, availability);

CREATE TABLE IF NOT EXISTS customers(
  id_document TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  contact_number TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS reservation_seq(
  n INTEGER PRIMARY KEY AUTOINCREMENT
);

CREATE TABLE IF NOT EXISTS reservations(
  id TEXT PRIMARY KEY,
  customer_id_document TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_name_folded TEXT NOT NULL,
  customer_contact_number TEXT NOT NULL DEFAULT '',
  customer_email TEXT NOT NULL DEFAULT '',
  car_id TEXT NOT NULL,
  category TEXT NOT NULL,
  daily_rate TEXT NOT NULL,
  booking_date TEXT NOT NULL,
  rental_start_date TEXT NOT NULL,
  num_days INTEGER NOT NULL CHECK (num_days >= 1),
  expected_total_km INTEGER NOT NULL CHECK (expected_total_km >= 0),
  refundable_deposit TEXT NOT NULL,
  status TEXT NOT NULL CHECK (status IN ('ACTIVE','CANCELLED','COMPLETED')),
  created_on TEXT NOT NULL,
  updated_on TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reservations_customer ON reservations(customer_name_folded);
CREATE INDEX IF NOT EXISTS idx_reservations_start ON reservations(rental_start_date);
`

// OpenDB opens the database and creates the schema. A single connection is
// kept open so every caller sees the same in-memory database.
func OpenDB(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func NewStore(db *sqlx.DB) *repository.Store {
	return &repository.Store{
		CarRepository:         NewCarRepository(db),
		ReservationRepository: NewReservationRepository(db),
		CustomerRepository:    NewCustomerRepository(db),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timestampLayout, s)
}
