package service

import (
	"context"
	"time"

	"ecoride-backend/internal/domain"
)

type CatalogService interface {
	AddCar(ctx context.Context, id, model string, category domain.Category) (*domain.Car, error)
	UpdateCar(ctx context.Context, id, model string, category domain.Category) (*domain.Car, error)
	RemoveCar(ctx context.Context, id string) error
	GetCar(ctx context.Context, id string) (*domain.Car, error)
	ListAllCars(ctx context.Context) ([]domain.Car, error)
	ListAvailableCars(ctx context.Context) ([]domain.Car, error)
	ListAvailableByCategory(ctx context.Context, category domain.Category) ([]domain.Car, error)
}

type BookingService interface {
	CreateReservation(ctx context.Context, customer domain.Customer, category domain.Category, startDate time.Time, numDays, expectedKm int) (string, error)
	CancelReservation(ctx context.Context, id string) error
	UpdateReservation(ctx context.Context, id string, numDays, expectedKm int) error
	CompleteReservation(ctx context.Context, id string) error
	FindReservation(ctx context.Context, id string) (*domain.Reservation, error)
	SearchByCustomerName(ctx context.Context, name string) ([]domain.Reservation, error)
	ListReservationsByStartDate(ctx context.Context, date time.Time) ([]domain.Reservation, error)
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	GetCustomer(ctx context.Context, idDocument string) (*domain.Customer, error)
	CalculateInvoice(ctx context.Context, id string) (domain.Breakdown, error)
	IssueInvoice(ctx context.Context, id string) (*domain.Invoice, error)
}

type EmailService interface {
	SendReservationConfirmation(ctx context.Context, r *domain.Reservation, car *domain.Car) error
	SendReservationCancellation(ctx context.Context, r *domain.Reservation) error
	SendReservationCompletion(ctx context.Context, r *domain.Reservation) error
}

// BookingRules holds the two date windows of the reservation lifecycle.
type BookingRules struct {
	// MinLeadDays is how many days ahead of today a rental must start.
	MinLeadDays int
	// GraceDays is how long after booking a reservation may still be
	// cancelled or changed.
	GraceDays int
}

func DefaultBookingRules() BookingRules {
	return BookingRules{MinLeadDays: 3, GraceDays: 2}
}

// Clock is the time source for every date rule.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
func SystemClock() Clock { return systemClock{} }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
