package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/repository"
	"ecoride-backend/internal/utils"
)

type reservationRepository struct {
	mu           sync.RWMutex
	counter      int
	reservations map[string]*domain.Reservation
	order        []string
}

// NewReservationRepository creates an empty ledger whose id counter starts at 1.
func NewReservationRepository() repository.ReservationRepository {
	return &reservationRepository{reservations: make(map[string]*domain.Reservation)}
}

func (r *reservationRepository) NextID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return domain.FormatReservationID(r.counter), nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	if res == nil || res.ID == "" {
		return fmt.Errorf("reservation id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reservations[res.ID]; exists {
		return fmt.Errorf("reservation %s already exists", res.ID)
	}
	stored := *res
	now := time.Now()
	stored.CreatedOn = now
	stored.UpdatedOn = now
	r.reservations[res.ID] = &stored
	r.order = append(r.order, res.ID)

	res.CreatedOn = now
	res.UpdatedOn = now
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReservationNotFound, id)
	}
	out := *res
	return &out, nil
}

func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.reservations[res.ID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrReservationNotFound, res.ID)
	}
	existing.NumDays = res.NumDays
	existing.ExpectedTotalKm = res.ExpectedTotalKm
	existing.Status = res.Status
	existing.UpdatedOn = time.Now()
	res.UpdatedOn = existing.UpdatedOn
	return nil
}

func (r *reservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.filter(func(*domain.Reservation) bool { return true }), nil
}

func (r *reservationRepository) SearchByCustomerName(ctx context.Context, name string) ([]domain.Reservation, error) {
	folded := domain.FoldName(name)
	return r.filter(func(res *domain.Reservation) bool {
		return domain.FoldName(res.Customer.Name) == folded
	}), nil
}

func (r *reservationRepository) ListByStartDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	day := utils.DateOf(date)
	return r.filter(func(res *domain.Reservation) bool {
		return utils.DateOf(res.RentalStartDate).Equal(day)
	}), nil
}

func (r *reservationRepository) filter(keep func(*domain.Reservation) bool) []domain.Reservation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Reservation, 0)
	for _, id := range r.order {
		res := r.reservations[id]
		if keep(res) {
			out = append(out, *res)
		}
	}
	return out
}
