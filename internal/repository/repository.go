package repository

import (
	"context"
	"time"

	"ecoride-backend/internal/domain"
)

// CarRepository is the vehicle catalog. Availability only changes through
// Reserve and Release.
type CarRepository interface {
	Add(ctx context.Context, car *domain.Car) error
	Remove(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
	ListAvailable(ctx context.Context) ([]domain.Car, error)
	ListAvailableByCategory(ctx context.Context, category domain.Category) ([]domain.Car, error)
	Reserve(ctx context.Context, id string) error
	Release(ctx context.Context, id string) error
}

// ReservationRepository is the reservation ledger. It also owns id generation.
type ReservationRepository interface {
	NextID(ctx context.Context) (string, error)
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	List(ctx context.Context) ([]domain.Reservation, error)
	SearchByCustomerName(ctx context.Context, name string) ([]domain.Reservation, error)
	ListByStartDate(ctx context.Context, date time.Time) ([]domain.Reservation, error)
}

type CustomerRepository interface {
	Upsert(ctx context.Context, c *domain.Customer) error
	GetByIDDocument(ctx context.Context, idDocument string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}

// Store bundles one implementation of every repository.
type Store struct {
	CarRepository
	ReservationRepository
	CustomerRepository
}
