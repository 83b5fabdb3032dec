package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "ACTIVE"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

// Terminal reports whether no further transition is possible from s.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusCompleted
}

type Reservation struct {
	ID       string   `json:"id"`
	Customer Customer `json:"customer"`
	CarID    string   `json:"car_id"`
	// Price snapshot fields, captured from the car at creation time.
	// Invoices use these, not the live catalog entry.
	Category          Category          `json:"category"`
	DailyRate         decimal.Decimal   `json:"daily_rate"`
	BookingDate       time.Time         `json:"booking_date"`
	RentalStartDate   time.Time         `json:"rental_start_date"`
	NumDays           int               `json:"num_days"`
	ExpectedTotalKm   int               `json:"expected_total_km"`
	RefundableDeposit decimal.Decimal   `json:"refundable_deposit"`
	Status            ReservationStatus `json:"status"`
	CreatedOn         time.Time         `json:"created_on"`
	UpdatedOn         time.Time         `json:"updated_on"`
}

// RentalEndDate is the first day after the rental period.
func (r *Reservation) RentalEndDate() time.Time {
	return r.RentalStartDate.AddDate(0, 0, r.NumDays)
}

// FormatReservationID renders the n-th ledger id, e.g. R001.
func FormatReservationID(n int) string {
	return fmt.Sprintf("R%03d", n)
}
