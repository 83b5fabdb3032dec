package pricing

import (
	"fmt"

	"ecoride-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Entry holds the pricing parameters of one category.
type Entry struct {
	DailyRate    decimal.Decimal
	FreeKmPerDay int
	ExtraKmRate  decimal.Decimal
	TaxRate      decimal.Decimal
}

// Table is the static per-category pricing lookup. It is built once at
// startup and only read afterwards.
type Table struct {
	currency string
	deposit  decimal.Decimal
	entries  map[domain.Category]Entry
}

// NewTable builds a table and checks that every category has an entry.
func NewTable(currency string, deposit decimal.Decimal, entries map[domain.Category]Entry) (*Table, error) {
	copied := make(map[domain.Category]Entry, len(entries))
	for _, c := range domain.Categories() {
		e, ok := entries[c]
		if !ok {
			return nil, fmt.Errorf("missing pricing entry for %s", c)
		}
		if e.DailyRate.IsNegative() || e.ExtraKmRate.IsNegative() || e.TaxRate.IsNegative() || e.FreeKmPerDay < 0 {
			return nil, fmt.Errorf("negative pricing value for %s", c)
		}
		copied[c] = e
	}
	if deposit.IsNegative() {
		return nil, fmt.Errorf("refundable deposit must not be negative")
	}
	return &Table{currency: currency, deposit: deposit, entries: copied}, nil
}

// DefaultTable returns the EcoRide rate card (LKR).
func DefaultTable() *Table {
	t, err := NewTable("LKR", decimal.NewFromInt(5000), map[domain.Category]Entry{
		domain.CategoryCompactPetrol: {
			DailyRate:    decimal.NewFromInt(5000),
			FreeKmPerDay: 100,
			ExtraKmRate:  decimal.NewFromInt(50),
			TaxRate:      decimal.RequireFromString("0.10"),
		},
		domain.CategoryHybrid: {
			DailyRate:    decimal.NewFromInt(7500),
			FreeKmPerDay: 150,
			ExtraKmRate:  decimal.NewFromInt(60),
			TaxRate:      decimal.RequireFromString("0.12"),
		},
		domain.CategoryElectric: {
			DailyRate:    decimal.NewFromInt(10000),
			FreeKmPerDay: 200,
			ExtraKmRate:  decimal.NewFromInt(40),
			TaxRate:      decimal.RequireFromString("0.08"),
		},
		domain.CategoryLuxurySUV: {
			DailyRate:    decimal.NewFromInt(15000),
			FreeKmPerDay: 250,
			ExtraKmRate:  decimal.NewFromInt(75),
			TaxRate:      decimal.RequireFromString("0.15"),
		},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Entry returns the pricing parameters for a category.
func (t *Table) Entry(c domain.Category) (Entry, error) {
	e, ok := t.entries[c]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	return e, nil
}

// DailyRate is a shortcut used when a car is added or re-categorised.
func (t *Table) DailyRate(c domain.Category) (decimal.Decimal, error) {
	e, err := t.Entry(c)
	if err != nil {
		return decimal.Zero, err
	}
	return e.DailyRate, nil
}

// RefundableDeposit is the flat deposit taken for every reservation.
func (t *Table) RefundableDeposit() decimal.Decimal {
	return t.deposit
}

// Currency is the label printed next to amounts.
func (t *Table) Currency() string {
	return t.currency
}
