package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Breakdown is the priced result for one reservation. Monetary fields are
// rounded to two decimal places.
type Breakdown struct {
	Currency      string          `json:"currency"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
	NumDays       int             `json:"num_days"`
	FreeKmTotal   int             `json:"free_km_total"`
	ExtraKm       int             `json:"extra_km"`
	BasePrice     decimal.Decimal `json:"base_price"`
	ExtraKmCharge decimal.Decimal `json:"extra_km_charge"`
	Discount      decimal.Decimal `json:"discount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Deposit       decimal.Decimal `json:"deposit"`
	Payable       decimal.Decimal `json:"payable"`
}

// Invoice is a printable document built on demand; it is never stored.
type Invoice struct {
	ID              string    `json:"id"`
	ReservationID   string    `json:"reservation_id"`
	IssueDate       time.Time `json:"issue_date"`
	Car             Car       `json:"car"`
	Customer        Customer  `json:"customer"`
	RentalStartDate time.Time `json:"rental_start_date"`
	NumDays         int       `json:"num_days"`
	ExpectedTotalKm int       `json:"expected_total_km"`
	Breakdown       Breakdown `json:"breakdown"`
}

// InvoiceID derives the printable invoice number from a reservation id.
func InvoiceID(reservationID string) string {
	n := len(reservationID)
	if n > 6 {
		n = 6
	}
	return "INV-" + reservationID[:n]
}
