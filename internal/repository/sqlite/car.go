package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/logger"
	"ecoride-backend/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const carColumns = `id, model, category, daily_rate, availability, created_on, updated_on`

type carRow struct {
	ID           string          `db:"id"`
	Model        string          `db:"model"`
	Category     string          `db:"category"`
	DailyRate    decimal.Decimal `db:"daily_rate"`
	Availability string          `db:"availability"`
	CreatedOn    string          `db:"created_on"`
	UpdatedOn    string          `db:"updated_on"`
}

func (row carRow) toDomain() (domain.Car, error) {
	created, err := parseTimestamp(row.CreatedOn)
	if err != nil {
		return domain.Car{}, fmt.Errorf("car %s created_on: %w", row.ID, err)
	}
	updated, err := parseTimestamp(row.UpdatedOn)
	if err != nil {
		return domain.Car{}, fmt.Errorf("car %s updated_on: %w", row.ID, err)
	}
	return domain.Car{
		ID:           row.ID,
		Model:        row.Model,
		Category:     domain.Category(row.Category),
		DailyRate:    row.DailyRate,
		Availability: domain.Availability(row.Availability),
		CreatedOn:    created,
		UpdatedOn:    updated,
	}, nil
}

type carRepository struct {
	db *sqlx.DB
}

func NewCarRepository(db *sqlx.DB) repository.CarRepository {
	return &carRepository{db: db}
}

// Add upserts on id. The row keeps its rowid on conflict, so catalog order is
// preserved when a car is replaced.
func (r *carRepository) Add(ctx context.Context, car *domain.Car) error {
	if car == nil || car.ID == "" {
		return fmt.Errorf("car id is required")
	}
	availability := car.Availability
	if availability == "" {
		availability = domain.AvailabilityAvailable
	}
	now := formatTimestamp(time.Now())
	query := `INSERT INTO cars (` + carColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)
	          ON CONFLICT(id) DO UPDATE SET model = excluded.model, category = excluded.category,
	          daily_rate = excluded.daily_rate, availability = excluded.availability, updated_on = excluded.updated_on`

	logger.DatabaseCall("cars.Add", query, "carID", car.ID)
	res, err := r.db.ExecContext(ctx, query, car.ID, car.Model, string(car.Category), car.DailyRate.String(), string(availability), now, now)
	if err != nil {
		logger.DatabaseResult("cars.Add", 0, err)
		return fmt.Errorf("failed to add car %s: %w", car.ID, err)
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("cars.Add", n, nil)
	return nil
}

func (r *carRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM cars WHERE id = ?`
	logger.DatabaseCall("cars.Remove", query, "carID", id)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult("cars.Remove", 0, err)
		return fmt.Errorf("failed to remove car %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("cars.Remove", n, nil)
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	var row carRow
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = ?`
	logger.DatabaseCall("cars.GetByID", query, "carID", id)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.DatabaseResult("cars.GetByID", 0, nil)
			return nil, fmt.Errorf("%w: %s", domain.ErrCarNotFound, id)
		}
		logger.DatabaseResult("cars.GetByID", 0, err)
		return nil, err
	}
	logger.DatabaseResult("cars.GetByID", 1, nil)
	car, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	return r.selectCars(ctx, "cars.List", `SELECT `+carColumns+` FROM cars ORDER BY rowid`)
}

func (r *carRepository) ListAvailable(ctx context.Context) ([]domain.Car, error) {
	return r.selectCars(ctx, "cars.ListAvailable",
		`SELECT `+carColumns+` FROM cars WHERE availability = ? ORDER BY rowid`,
		string(domain.AvailabilityAvailable))
}

func (r *carRepository) ListAvailableByCategory(ctx context.Context, category domain.Category) ([]domain.Car, error) {
	return r.selectCars(ctx, "cars.ListAvailableByCategory",
		`SELECT `+carColumns+` FROM cars WHERE category = ? AND availability = ? ORDER BY rowid`,
		string(category), string(domain.AvailabilityAvailable))
}

// Reserve flips an AVAILABLE car to RESERVED in one conditional update.
func (r *carRepository) Reserve(ctx context.Context, id string) error {
	query := `UPDATE cars SET availability = ?, updated_on = ? WHERE id = ? AND availability = ?`
	logger.DatabaseCall("cars.Reserve", query, "carID", id)
	res, err := r.db.ExecContext(ctx, query, string(domain.AvailabilityReserved), formatTimestamp(time.Now()), id, string(domain.AvailabilityAvailable))
	if err != nil {
		logger.DatabaseResult("cars.Reserve", 0, err)
		return fmt.Errorf("failed to reserve car %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult("cars.Reserve", n, nil)
	if n == 1 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", domain.ErrCarUnavailable, id)
}

func (r *carRepository) Release(ctx context.Context, id string) error {
	query := `UPDATE cars SET availability = ?, updated_on = ? WHERE id = ?`
	logger.DatabaseCall("cars.Release", query, "carID", id)
	res, err := r.db.ExecContext(ctx, query, string(domain.AvailabilityAvailable), formatTimestamp(time.Now()), id)
	if err != nil {
		logger.DatabaseResult("cars.Release", 0, err)
		return fmt.Errorf("failed to release car %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult("cars.Release", n, nil)
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCarNotFound, id)
	}
	return nil
}

func (r *carRepository) selectCars(ctx context.Context, op, query string, args ...any) ([]domain.Car, error) {
	var rows []carRow
	logger.DatabaseCall(op, query)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.DatabaseResult(op, 0, err)
		return nil, err
	}
	logger.DatabaseResult(op, int64(len(rows)), nil)

	cars := make([]domain.Car, 0, len(rows))
	for _, row := range rows {
		car, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, nil
}
