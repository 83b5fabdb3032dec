package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"ecoride-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCar(id string, c domain.Category) *domain.Car {
	return &domain.Car{ID: id, Model: "Model " + id, Category: c, DailyRate: decimal.NewFromInt(5000)}
}

func TestCarRepository_AddAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewCarRepository()

	require.NoError(t, repo.Add(ctx, newCar("C001", domain.CategoryCompactPetrol)))
	require.NoError(t, repo.Add(ctx, newCar("C002", domain.CategoryElectric)))
	require.NoError(t, repo.Add(ctx, newCar("C003", domain.CategoryCompactPetrol)))

	t.Run("Insertion order", func(t *testing.T) {
		cars, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, cars, 3)
		assert.Equal(t, "C001", cars[0].ID)
		assert.Equal(t, "C002", cars[1].ID)
		assert.Equal(t, "C003", cars[2].ID)
		assert.Equal(t, domain.AvailabilityAvailable, cars[0].Availability)
	})

	t.Run("Replace keeps position", func(t *testing.T) {
		replaced := newCar("C001", domain.CategoryHybrid)
		replaced.Model = "Toyota Prius"
		require.NoError(t, repo.Add(ctx, replaced))

		cars, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, cars, 3)
		assert.Equal(t, "C001", cars[0].ID)
		assert.Equal(t, "Toyota Prius", cars[0].Model)
		assert.Equal(t, domain.CategoryHybrid, cars[0].Category)
	})

	t.Run("Returned values are copies", func(t *testing.T) {
		car, err := repo.GetByID(ctx, "C002")
		require.NoError(t, err)
		car.Availability = domain.AvailabilityReserved

		again, err := repo.GetByID(ctx, "C002")
		require.NoError(t, err)
		assert.True(t, again.IsAvailable())
	})

	t.Run("Missing id", func(t *testing.T) {
		err := repo.Add(ctx, &domain.Car{})
		assert.Error(t, err)
	})
}

func TestCarRepository_Remove(t *testing.T) {
	ctx := context.Background()
	repo := NewCarRepository()
	require.NoError(t, repo.Add(ctx, newCar("C001", domain.CategoryCompactPetrol)))
	require.NoError(t, repo.Add(ctx, newCar("C002", domain.CategoryCompactPetrol)))

	require.NoError(t, repo.Remove(ctx, "C001"))
	require.NoError(t, repo.Remove(ctx, "missing"))

	_, err := repo.GetByID(ctx, "C001")
	assert.ErrorIs(t, err, domain.ErrCarNotFound)

	cars, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "C002", cars[0].ID)
}

func TestCarRepository_ReserveRelease(t *testing.T) {
	ctx := context.Background()
	repo := NewCarRepository()
	require.NoError(t, repo.Add(ctx, newCar("C001", domain.CategoryCompactPetrol)))
	require.NoError(t, repo.Add(ctx, newCar("C002", domain.CategoryCompactPetrol)))
	require.NoError(t, repo.Add(ctx, newCar("C003", domain.CategoryElectric)))

	require.NoError(t, repo.Reserve(ctx, "C001"))

	t.Run("Reserved car is excluded", func(t *testing.T) {
		available, err := repo.ListAvailableByCategory(ctx, domain.CategoryCompactPetrol)
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "C002", available[0].ID)

		all, err := repo.ListAvailable(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("Double reserve fails", func(t *testing.T) {
		err := repo.Reserve(ctx, "C001")
		assert.ErrorIs(t, err, domain.ErrCarUnavailable)
	})

	t.Run("Unknown car", func(t *testing.T) {
		assert.ErrorIs(t, repo.Reserve(ctx, "X"), domain.ErrCarNotFound)
		assert.ErrorIs(t, repo.Release(ctx, "X"), domain.ErrCarNotFound)
	})

	t.Run("Release restores availability", func(t *testing.T) {
		require.NoError(t, repo.Release(ctx, "C001"))
		car, err := repo.GetByID(ctx, "C001")
		require.NoError(t, err)
		assert.True(t, car.IsAvailable())
	})
}

func TestCarRepository_ConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	repo := NewCarRepository()
	require.NoError(t, repo.Add(ctx, newCar("C001", domain.CategoryCompactPetrol)))

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.Reserve(ctx, "C001") == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func sampleReservation(id, name string, start time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		Customer:        domain.Customer{IDDocument: "NIC-" + id, Name: name},
		CarID:           "C001",
		Category:        domain.CategoryCompactPetrol,
		DailyRate:       decimal.NewFromInt(5000),
		BookingDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		RentalStartDate: start,
		NumDays:         3,
		ExpectedTotalKm: 250,
		Status:          domain.ReservationStatusActive,
	}
}

func TestReservationRepository_NextID(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository()

	first, err := repo.NextID(ctx)
	require.NoError(t, err)
	second, err := repo.NextID(ctx)
	require.NoError(t, err)

	assert.Equal(t, "R001", first)
	assert.Equal(t, "R002", second)
	assert.Equal(t, "R1000", domain.FormatReservationID(1000))
}

func TestReservationRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository()
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	res := sampleReservation("R001", "Nimal Perera", start)
	require.NoError(t, repo.Create(ctx, res))
	assert.False(t, res.CreatedOn.IsZero())

	t.Run("Duplicate create", func(t *testing.T) {
		assert.Error(t, repo.Create(ctx, sampleReservation("R001", "Other", start)))
	})

	t.Run("Get", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "R001")
		require.NoError(t, err)
		assert.Equal(t, "Nimal Perera", got.Customer.Name)
		assert.Equal(t, 3, got.NumDays)
	})

	t.Run("Get missing", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "R999")
		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		res.NumDays = 7
		res.ExpectedTotalKm = 900
		res.Status = domain.ReservationStatusCancelled
		require.NoError(t, repo.Update(ctx, res))

		got, err := repo.GetByID(ctx, "R001")
		require.NoError(t, err)
		assert.Equal(t, 7, got.NumDays)
		assert.Equal(t, 900, got.ExpectedTotalKm)
		assert.Equal(t, domain.ReservationStatusCancelled, got.Status)
	})

	t.Run("Update missing", func(t *testing.T) {
		err := repo.Update(ctx, sampleReservation("R404", "Ghost", start))
		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	})
}

func TestReservationRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository()
	jan10 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	jan11 := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, sampleReservation("R001", "Nimal Perera", jan10)))
	require.NoError(t, repo.Create(ctx, sampleReservation("R002", "Kamala Silva", jan11)))
	require.NoError(t, repo.Create(ctx, sampleReservation("R003", "nimal perera", jan11)))

	t.Run("Search is case insensitive exact", func(t *testing.T) {
		found, err := repo.SearchByCustomerName(ctx, "NIMAL PERERA")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "R001", found[0].ID)
		assert.Equal(t, "R003", found[1].ID)

		partial, err := repo.SearchByCustomerName(ctx, "Nimal")
		require.NoError(t, err)
		assert.Empty(t, partial)
	})

	t.Run("By start date", func(t *testing.T) {
		found, err := repo.ListByStartDate(ctx, jan11.Add(15*time.Hour))
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "R002", found[0].ID)
	})

	t.Run("List in ledger order", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "R001", all[0].ID)
		assert.Equal(t, "R003", all[2].ID)
	})
}

func TestReservationRepository_SearchNonASCII(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository()
	feb10 := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, sampleReservation("R001", "Émile Zoë", feb10)))
	require.NoError(t, repo.Create(ctx, sampleReservation("R002", "Emile Zoe", feb10)))

	for _, query := range []string{"ÉMILE ZOË", "émile zoë", "  Émile Zoë "} {
		t.Run(query, func(t *testing.T) {
			found, err := repo.SearchByCustomerName(ctx, query)
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, "R001", found[0].ID)
		})
	}
}

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	require.NoError(t, repo.Upsert(ctx, &domain.Customer{IDDocument: "N1", Name: "Nimal"}))
	require.NoError(t, repo.Upsert(ctx, &domain.Customer{IDDocument: "N2", Name: "Kamala"}))
	require.NoError(t, repo.Upsert(ctx, &domain.Customer{IDDocument: "N1", Name: "Nimal Perera", Email: "nimal@example.com"}))

	got, err := repo.GetByIDDocument(ctx, "N1")
	require.NoError(t, err)
	assert.Equal(t, "Nimal Perera", got.Name)
	assert.Equal(t, "nimal@example.com", got.Email)

	_, err = repo.GetByIDDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "N1", all[0].IDDocument)

	assert.Error(t, repo.Upsert(ctx, &domain.Customer{Name: "No document"}))
}

func TestNewStore(t *testing.T) {
	store := NewStore()
	assert.NotNil(t, store.CarRepository)
	assert.NotNil(t, store.ReservationRepository)
	assert.NotNil(t, store.CustomerRepository)
}
