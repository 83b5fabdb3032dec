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
	"ecoride-backend/internal/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const reservationColumns = `id, customer_id_document, customer_name, customer_contact_number, customer_email,
  car_id, category, daily_rate, booking_date, rental_start_date, num_days, expected_total_km,
  refundable_deposit, status, created_on, updated_on`

// customer_name_folded is written on insert and only read by searches.
const reservationInsertColumns = reservationColumns + `, customer_name_folded`

type reservationRow struct {
	ID                    string          `db:"id"`
	CustomerIDDocument    string          `db:"customer_id_document"`
	CustomerName          string          `db:"customer_name"`
	CustomerContactNumber string          `db:"customer_contact_number"`
	CustomerEmail         string          `db:"customer_email"`
	CarID                 string          `db:"car_id"`
	Category              string          `db:"category"`
	DailyRate             decimal.Decimal `db:"daily_rate"`
	BookingDate           string          `db:"booking_date"`
	RentalStartDate       string          `db:"rental_start_date"`
	NumDays               int             `db:"num_days"`
	ExpectedTotalKm       int             `db:"expected_total_km"`
	RefundableDeposit     decimal.Decimal `db:"refundable_deposit"`
	Status                string          `db:"status"`
	CreatedOn             string          `db:"created_on"`
	UpdatedOn             string          `db:"updated_on"`
}

func (row reservationRow) toDomain() (domain.Reservation, error) {
	booking, err := time.Parse(utils.DateLayout, row.BookingDate)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("reservation %s booking_date: %w", row.ID, err)
	}
	start, err := time.Parse(utils.DateLayout, row.RentalStartDate)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("reservation %s rental_start_date: %w", row.ID, err)
	}
	created, err := parseTimestamp(row.CreatedOn)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("reservation %s created_on: %w", row.ID, err)
	}
	updated, err := parseTimestamp(row.UpdatedOn)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("reservation %s updated_on: %w", row.ID, err)
	}
	return domain.Reservation{
		ID: row.ID,
		Customer: domain.Customer{
			IDDocument:    row.CustomerIDDocument,
			Name:          row.CustomerName,
			ContactNumber: row.CustomerContactNumber,
			Email:         row.CustomerEmail,
		},
		CarID:             row.CarID,
		Category:          domain.Category(row.Category),
		DailyRate:         row.DailyRate,
		BookingDate:       booking,
		RentalStartDate:   start,
		NumDays:           row.NumDays,
		ExpectedTotalKm:   row.ExpectedTotalKm,
		RefundableDeposit: row.RefundableDeposit,
		Status:            domain.ReservationStatus(row.Status),
		CreatedOn:         created,
		UpdatedOn:         updated,
	}, nil
}

type reservationRepository struct {
	db *sqlx.DB
}

func NewReservationRepository(db *sqlx.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

// NextID draws from an AUTOINCREMENT table, so ids are never handed out twice.
func (r *reservationRepository) NextID(ctx context.Context) (string, error) {
	query := `INSERT INTO reservation_seq DEFAULT VALUES`
	logger.DatabaseCall("reservations.NextID", query)
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("reservations.NextID", 0, err)
		return "", fmt.Errorf("failed to allocate reservation id: %w", err)
	}
	n, err := res.LastInsertId()
	if err != nil {
		logger.DatabaseResult("reservations.NextID", 0, err)
		return "", fmt.Errorf("failed to allocate reservation id: %w", err)
	}
	logger.DatabaseResult("reservations.NextID", 1, nil)
	return domain.FormatReservationID(int(n)), nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	if res == nil || res.ID == "" {
		return fmt.Errorf("reservation id is required")
	}
	now := time.Now()
	stamp := formatTimestamp(now)
	query := `INSERT INTO reservations (` + reservationInsertColumns + `)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	logger.DatabaseCall("reservations.Create", query, "reservationID", res.ID)
	result, err := r.db.ExecContext(ctx, query,
		res.ID, res.Customer.IDDocument, res.Customer.Name, res.Customer.ContactNumber, res.Customer.Email,
		res.CarID, string(res.Category), res.DailyRate.String(),
		utils.FormatDate(res.BookingDate), utils.FormatDate(res.RentalStartDate),
		res.NumDays, res.ExpectedTotalKm, res.RefundableDeposit.String(), string(res.Status),
		stamp, stamp, domain.FoldName(res.Customer.Name))
	if err != nil {
		logger.DatabaseResult("reservations.Create", 0, err)
		return fmt.Errorf("failed to create reservation %s: %w", res.ID, err)
	}
	n, _ := result.RowsAffected()
	logger.DatabaseResult("reservations.Create", n, nil)
	res.CreatedOn = now
	res.UpdatedOn = now
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var row reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	logger.DatabaseCall("reservations.GetByID", query, "reservationID", id)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.DatabaseResult("reservations.GetByID", 0, nil)
			return nil, fmt.Errorf("%w: %s", domain.ErrReservationNotFound, id)
		}
		logger.DatabaseResult("reservations.GetByID", 0, err)
		return nil, err
	}
	logger.DatabaseResult("reservations.GetByID", 1, nil)
	res, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Update writes the mutable fields: duration, distance and status.
func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	now := time.Now()
	query := `UPDATE reservations SET num_days = ?, expected_total_km = ?, status = ?, updated_on = ? WHERE id = ?`
	logger.DatabaseCall("reservations.Update", query, "reservationID", res.ID)
	result, err := r.db.ExecContext(ctx, query, res.NumDays, res.ExpectedTotalKm, string(res.Status), formatTimestamp(now), res.ID)
	if err != nil {
		logger.DatabaseResult("reservations.Update", 0, err)
		return fmt.Errorf("failed to update reservation %s: %w", res.ID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult("reservations.Update", n, nil)
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrReservationNotFound, res.ID)
	}
	res.UpdatedOn = now
	return nil
}

func (r *reservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.selectReservations(ctx, "reservations.List",
		`SELECT `+reservationColumns+` FROM reservations ORDER BY rowid`)
}

func (r *reservationRepository) SearchByCustomerName(ctx context.Context, name string) ([]domain.Reservation, error) {
	return r.selectReservations(ctx, "reservations.SearchByCustomerName",
		`SELECT `+reservationColumns+` FROM reservations WHERE customer_name_folded = ? ORDER BY rowid`,
		domain.FoldName(name))
}

func (r *reservationRepository) ListByStartDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	return r.selectReservations(ctx, "reservations.ListByStartDate",
		`SELECT `+reservationColumns+` FROM reservations WHERE rental_start_date = ? ORDER BY rowid`,
		utils.FormatDate(utils.DateOf(date)))
}

func (r *reservationRepository) selectReservations(ctx context.Context, op, query string, args ...any) ([]domain.Reservation, error) {
	var rows []reservationRow
	logger.DatabaseCall(op, query)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.DatabaseResult(op, 0, err)
		return nil, err
	}
	logger.DatabaseResult(op, int64(len(rows)), nil)

	out := make([]domain.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
