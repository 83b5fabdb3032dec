package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/logger"
	"ecoride-backend/internal/repository"
)

type carRepository struct {
	mu    sync.RWMutex
	cars  map[string]*domain.Car
	order []string
}

func NewCarRepository() repository.CarRepository {
	return &carRepository{cars: make(map[string]*domain.Car)}
}

func (r *carRepository) Add(ctx context.Context, car *domain.Car) error {
	if car == nil || car.ID == "" {
		return fmt.Errorf("car id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *car
	now := time.Now()
	if existing, ok := r.cars[car.ID]; ok {
		stored.CreatedOn = existing.CreatedOn
	} else {
		r.order = append(r.order, car.ID)
		if stored.CreatedOn.IsZero() {
			stored.CreatedOn = now
		}
	}
	if stored.Availability == "" {
		stored.Availability = domain.AvailabilityAvailable
	}
	stored.UpdatedOn = now
	r.cars[car.ID] = &stored
	return nil
}

func (r *carRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cars[id]; !ok {
		return nil
	}
	delete(r.cars, id)
	for i, carID := range r.order {
		if carID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	car, ok := r.cars[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCarNotFound, id)
	}
	c := *car
	return &c, nil
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	return r.filter(func(*domain.Car) bool { return true }), nil
}

func (r *carRepository) ListAvailable(ctx context.Context) ([]domain.Car, error) {
	return r.filter(func(c *domain.Car) bool { return c.IsAvailable() }), nil
}

func (r *carRepository) ListAvailableByCategory(ctx context.Context, category domain.Category) ([]domain.Car, error) {
	return r.filter(func(c *domain.Car) bool {
		return c.Category == category && c.IsAvailable()
	}), nil
}

func (r *carRepository) Reserve(ctx context.Context, id string) error {
	logger.EnterMethod("memory.carRepository.Reserve", "carID", id)
	r.mu.Lock()
	defer r.mu.Unlock()

	car, ok := r.cars[id]
	if !ok {
		err := fmt.Errorf("%w: %s", domain.ErrCarNotFound, id)
		logger.ExitMethodWithError("memory.carRepository.Reserve", err, "carID", id)
		return err
	}
	if !car.IsAvailable() {
		err := fmt.Errorf("%w: %s", domain.ErrCarUnavailable, id)
		logger.ExitMethodWithError("memory.carRepository.Reserve", err, "carID", id)
		return err
	}
	car.Availability = domain.AvailabilityReserved
	car.UpdatedOn = time.Now()
	logger.ExitMethod("memory.carRepository.Reserve", "carID", id)
	return nil
}

func (r *carRepository) Release(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	car, ok := r.cars[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrCarNotFound, id)
	}
	car.Availability = domain.AvailabilityAvailable
	car.UpdatedOn = time.Now()
	return nil
}

// filter walks the catalog in insertion order.
func (r *carRepository) filter(keep func(*domain.Car) bool) []domain.Car {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cars := make([]domain.Car, 0, len(r.order))
	for _, id := range r.order {
		c := r.cars[id]
		if keep(c) {
			cars = append(cars, *c)
		}
	}
	return cars
}
