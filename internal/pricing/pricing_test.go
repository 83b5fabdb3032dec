package pricing

import (
	"errors"
	"testing"

	"ecoride-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, want.Equal(actual), "%s: expected %s, got %s", field, want.StringFixed(2), actual.StringFixed(2))
}

func reservation(c domain.Category, days, km int) *domain.Reservation {
	return &domain.Reservation{
		ID:                "R001",
		Category:          c,
		NumDays:           days,
		ExpectedTotalKm:   km,
		RefundableDeposit: decimal.NewFromInt(5000),
		Status:            domain.ReservationStatusActive,
	}
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		category  domain.Category
		daily     string
		freeKm    int
		extraRate string
		taxRate   string
	}{
		{domain.CategoryCompactPetrol, "5000", 100, "50", "0.10"},
		{domain.CategoryHybrid, "7500", 150, "60", "0.12"},
		{domain.CategoryElectric, "10000", 200, "40", "0.08"},
		{domain.CategoryLuxurySUV, "15000", 250, "75", "0.15"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			e, err := table.Entry(tt.category)
			require.NoError(t, err)
			assertMoney(t, tt.daily, e.DailyRate, "daily rate")
			assert.Equal(t, tt.freeKm, e.FreeKmPerDay)
			assertMoney(t, tt.extraRate, e.ExtraKmRate, "extra km rate")
			assertMoney(t, tt.taxRate, e.TaxRate, "tax rate")
		})
	}

	t.Run("Every category resolves", func(t *testing.T) {
		for _, c := range domain.Categories() {
			_, err := table.Entry(c)
			assert.NoError(t, err)
		}
	})

	t.Run("Deposit and currency", func(t *testing.T) {
		assertMoney(t, "5000", table.RefundableDeposit(), "deposit")
		assert.Equal(t, "LKR", table.Currency())
	})

	t.Run("Unknown category", func(t *testing.T) {
		_, err := table.Entry(domain.Category("TRUCK"))
		assert.True(t, errors.Is(err, domain.ErrUnknownCategory))
		_, err = table.DailyRate(domain.Category("TRUCK"))
		assert.Error(t, err)
	})
}

func TestNewTable_Validation(t *testing.T) {
	t.Run("Missing category", func(t *testing.T) {
		_, err := NewTable("LKR", decimal.Zero, map[domain.Category]Entry{
			domain.CategoryHybrid: {DailyRate: decimal.NewFromInt(1)},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "missing pricing entry")
	})

	t.Run("Negative deposit", func(t *testing.T) {
		entries := map[domain.Category]Entry{}
		for _, c := range domain.Categories() {
			entries[c] = Entry{DailyRate: decimal.NewFromInt(1)}
		}
		_, err := NewTable("LKR", decimal.NewFromInt(-1), entries)
		assert.Error(t, err)
	})
}

func TestCalculate_Scenarios(t *testing.T) {
	table := DefaultTable()

	t.Run("Electric 5 days with extra km", func(t *testing.T) {
		b, err := Calculate(reservation(domain.CategoryElectric, 5, 1200), table)
		require.NoError(t, err)
		assert.Equal(t, 1000, b.FreeKmTotal)
		assert.Equal(t, 200, b.ExtraKm)
		assertMoney(t, "50000", b.BasePrice, "base")
		assertMoney(t, "8000", b.ExtraKmCharge, "extra")
		assertMoney(t, "0", b.Discount, "discount")
		assertMoney(t, "58000", b.Subtotal, "subtotal")
		assertMoney(t, "4640", b.Tax, "tax")
		assertMoney(t, "5000", b.Deposit, "deposit")
		assertMoney(t, "57640.00", b.Payable, "payable")
		assert.Equal(t, "57640.00", b.Payable.StringFixed(2))
	})

	t.Run("Electric 10 days triggers bulk discount", func(t *testing.T) {
		b, err := Calculate(reservation(domain.CategoryElectric, 10, 0), table)
		require.NoError(t, err)
		assertMoney(t, "100000", b.BasePrice, "base")
		assertMoney(t, "0", b.ExtraKmCharge, "extra")
		assertMoney(t, "10000", b.Discount, "discount")
		assertMoney(t, "90000", b.Subtotal, "subtotal")
		assertMoney(t, "7200", b.Tax, "tax")
		assertMoney(t, "92200", b.Payable, "payable")
	})

	t.Run("Luxury SUV with fractional tax", func(t *testing.T) {
		b, err := Calculate(reservation(domain.CategoryLuxurySUV, 3, 1000), table)
		require.NoError(t, err)
		assertMoney(t, "45000", b.BasePrice, "base")
		assert.Equal(t, 250, b.ExtraKm)
		assertMoney(t, "18750", b.ExtraKmCharge, "extra")
		assertMoney(t, "9562.50", b.Tax, "tax")
		assertMoney(t, "68312.50", b.Payable, "payable")
	})

	t.Run("Hybrid", func(t *testing.T) {
		b, err := Calculate(reservation(domain.CategoryHybrid, 2, 500), table)
		require.NoError(t, err)
		assertMoney(t, "15000", b.BasePrice, "base")
		assertMoney(t, "12000", b.ExtraKmCharge, "extra")
		assertMoney(t, "3240", b.Tax, "tax")
		assertMoney(t, "25240", b.Payable, "payable")
	})
}

func TestCalculate_DiscountBoundary(t *testing.T) {
	table := DefaultTable()

	t.Run("6 days has no discount", func(t *testing.T) {
		b, err := Calculate(reservation(domain.CategoryCompactPetrol, 6, 0), table)
		require.NoError(t, err)
		assert.True(t, b.Discount.IsZero())
	})

	t.Run("7 days gets exactly 10 percent of base", func(t *testing.T) {
		b, err := Calculate(reservation(domain.CategoryCompactPetrol, 7, 700), table)
		require.NoError(t, err)
		assertMoney(t, "35000", b.BasePrice, "base")
		assertMoney(t, "3500", b.Discount, "discount")
		assert.Equal(t, 0, b.ExtraKm)
		assertMoney(t, "31500", b.Subtotal, "subtotal")
		assertMoney(t, "3150", b.Tax, "tax")
		assertMoney(t, "29650", b.Payable, "payable")
	})
}

func TestCalculate_PayableIdentity(t *testing.T) {
	table := DefaultTable()
	for _, c := range domain.Categories() {
		for _, days := range []int{1, 3, 7, 14} {
			for _, km := range []int{0, 150, 999, 4321} {
				b, err := Calculate(reservation(c, days, km), table)
				require.NoError(t, err)

				expected := b.BasePrice.Add(b.ExtraKmCharge).Sub(b.Discount).Add(b.Tax).Sub(b.Deposit)
				if expected.IsNegative() {
					expected = decimal.Zero
				}
				assert.True(t, expected.Round(2).Equal(b.Payable), "%s/%d/%d", c, days, km)
			}
		}
	}
}

func TestCalculate_DepositExceedsTotal(t *testing.T) {
	r := reservation(domain.CategoryCompactPetrol, 1, 0)
	r.RefundableDeposit = decimal.NewFromInt(10000)

	b, err := Calculate(r, DefaultTable())
	require.NoError(t, err)
	assertMoney(t, "5500", b.Subtotal.Add(b.Tax), "total before deposit")
	assertMoney(t, "0", b.Payable, "payable")
}

func TestCalculate_RoundsHalfUp(t *testing.T) {
	entries := map[domain.Category]Entry{}
	for _, c := range domain.Categories() {
		entries[c] = Entry{
			DailyRate:    decimal.RequireFromString("10.005"),
			FreeKmPerDay: 0,
			ExtraKmRate:  decimal.Zero,
			TaxRate:      decimal.RequireFromString("0.10"),
		}
	}
	table, err := NewTable("LKR", decimal.Zero, entries)
	require.NoError(t, err)

	r := reservation(domain.CategoryHybrid, 1, 0)
	r.RefundableDeposit = decimal.Zero

	b, err := Calculate(r, table)
	require.NoError(t, err)
	assertMoney(t, "10.01", b.BasePrice, "base")
	assertMoney(t, "1.00", b.Tax, "tax")
	assertMoney(t, "11.01", b.Payable, "payable")
}

func TestCalculate_Idempotent(t *testing.T) {
	table := DefaultTable()
	r := reservation(domain.CategoryElectric, 8, 2500)

	first, err := Calculate(r, table)
	require.NoError(t, err)
	second, err := Calculate(r, table)
	require.NoError(t, err)

	assert.True(t, first.Payable.Equal(second.Payable))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.Equal(t, first.ExtraKm, second.ExtraKm)
	assert.Equal(t, 8, r.NumDays)
	assert.Equal(t, 2500, r.ExpectedTotalKm)
}

func TestCalculate_Errors(t *testing.T) {
	table := DefaultTable()

	t.Run("Nil reservation", func(t *testing.T) {
		_, err := Calculate(nil, table)
		assert.Error(t, err)
	})

	t.Run("Unknown category", func(t *testing.T) {
		_, err := Calculate(reservation(domain.Category("VAN"), 2, 0), table)
		assert.True(t, errors.Is(err, domain.ErrUnknownCategory))
	})

	t.Run("Zero days", func(t *testing.T) {
		_, err := Calculate(reservation(domain.CategoryHybrid, 0, 0), table)
		assert.Error(t, err)
	})
	t.Run("Day count past the maximum", func(t *testing.T) {
		_, err := Calculate(reservation(domain.CategoryElectric, 1<<61, 1000), table)
		assert.Error(t, err)

		_, err = Calculate(reservation(domain.CategoryElectric, MaxRentalDays+1, 1000), table)
		assert.Error(t, err)
	})

	t.Run("Negative km", func(t *testing.T) {
		_, err := Calculate(reservation(domain.CategoryCompactPetrol, 2, -1), table)
		assert.Error(t, err)
	})
}

func TestCalculate_MaxRentalDays(t *testing.T) {
	b, err := Calculate(reservation(domain.CategoryElectric, MaxRentalDays, 1000), DefaultTable())
	require.NoError(t, err)

	assert.Equal(t, 200*MaxRentalDays, b.FreeKmTotal)
	assert.Equal(t, 0, b.ExtraKm)
	assertMoney(t, "0", b.ExtraKmCharge, "extra km charge")
	assertMoney(t, "3285000", b.BasePrice, "base price")
}
