package pricing

import (
	"fmt"

	"ecoride-backend/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	// BulkDiscountMinDays is the rental length from which the bulk discount applies.
	BulkDiscountMinDays = 7
	// MaxRentalDays is the longest rental that can be booked or priced.
	MaxRentalDays = 365
	moneyPlaces   = 2
)

// BulkDiscountRate is taken off the base price for long rentals.
var BulkDiscountRate = decimal.RequireFromString("0.10")

// Calculate derives the invoice breakdown of a reservation. It does not
// mutate the reservation and returns the same values for the same input.
func Calculate(r *domain.Reservation, t *Table) (domain.Breakdown, error) {
	if r == nil {
		return domain.Breakdown{}, fmt.Errorf("reservation is required")
	}
	e, err := t.Entry(r.Category)
	if err != nil {
		return domain.Breakdown{}, err
	}
	if r.NumDays < 1 || r.NumDays > MaxRentalDays {
		return domain.Breakdown{}, fmt.Errorf("reservation %s has invalid day count %d", r.ID, r.NumDays)
	}
	if r.ExpectedTotalKm < 0 {
		return domain.Breakdown{}, fmt.Errorf("reservation %s has negative expected km %d", r.ID, r.ExpectedTotalKm)
	}

	days := decimal.NewFromInt(int64(r.NumDays))
	basePrice := e.DailyRate.Mul(days)

	freeKmTotal := e.FreeKmPerDay * r.NumDays
	extraKm := r.ExpectedTotalKm - freeKmTotal
	if extraKm < 0 {
		extraKm = 0
	}
	extraKmCharge := e.ExtraKmRate.Mul(decimal.NewFromInt(int64(extraKm)))

	discount := decimal.Zero
	if r.NumDays >= BulkDiscountMinDays {
		discount = basePrice.Mul(BulkDiscountRate)
	}

	subtotal := basePrice.Add(extraKmCharge).Sub(discount)
	tax := subtotal.Mul(e.TaxRate)
	deposit := r.RefundableDeposit

	payable := subtotal.Add(tax).Sub(deposit)
	if payable.IsNegative() {
		payable = decimal.Zero
	}

	return domain.Breakdown{
		Currency:      t.Currency(),
		DailyRate:     roundMoney(e.DailyRate),
		NumDays:       r.NumDays,
		FreeKmTotal:   freeKmTotal,
		ExtraKm:       extraKm,
		BasePrice:     roundMoney(basePrice),
		ExtraKmCharge: roundMoney(extraKmCharge),
		Discount:      roundMoney(discount),
		Subtotal:      roundMoney(subtotal),
		Tax:           roundMoney(tax),
		Deposit:       roundMoney(deposit),
		Payable:       roundMoney(payable),
	}, nil
}

// roundMoney rounds half away from zero to two places, which is half-up for
// the non-negative amounts produced here.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}
