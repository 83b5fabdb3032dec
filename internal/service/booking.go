package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/logger"
	"ecoride-backend/internal/pricing"
	"ecoride-backend/internal/repository"
	"ecoride-backend/internal/utils"
)

type bookingService struct {
	// mu serializes every mutation so that picking an available car and
	// reserving it happen as one step.
	mu sync.Mutex

	carRepo         repository.CarRepository
	reservationRepo repository.ReservationRepository
	customerRepo    repository.CustomerRepository
	table           *pricing.Table
	emailSvc        EmailService
	clock           Clock
	rules           BookingRules
}

func NewBookingService(
	carRepo repository.CarRepository,
	reservationRepo repository.ReservationRepository,
	customerRepo repository.CustomerRepository,
	table *pricing.Table,
	emailSvc EmailService,
	clock Clock,
	rules BookingRules,
) BookingService {
	if clock == nil {
		clock = SystemClock()
	}
	return &bookingService{
		carRepo:         carRepo,
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
		table:           table,
		emailSvc:        emailSvc,
		clock:           clock,
		rules:           rules,
	}
}

func (s *bookingService) today() time.Time {
	return utils.DateOf(s.clock.Now())
}

func (s *bookingService) CreateReservation(ctx context.Context, customer domain.Customer, category domain.Category, startDate time.Time, numDays, expectedKm int) (string, error) {
	logger.EnterMethod("bookingService.CreateReservation", "customer", customer.Name, "category", category, "startDate", utils.FormatDate(startDate))

	customer.Name = strings.TrimSpace(customer.Name)
	customer.IDDocument = strings.TrimSpace(customer.IDDocument)
	if err := validateBooking(customer, category, numDays, expectedKm); err != nil {
		logger.ExitMethodWithError("bookingService.CreateReservation", err)
		return "", err
	}

	today := s.today()
	start := utils.DateOf(startDate)
	earliest := utils.AddDays(today, s.rules.MinLeadDays)
	if start.Before(earliest) {
		err := domain.NewValidationError(domain.RuleBookingWindow,
			fmt.Sprintf("rental must start on or after %s, at least %d days after booking", utils.FormatDate(earliest), s.rules.MinLeadDays))
		logger.ExitMethodWithError("bookingService.CreateReservation", err)
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	available, err := s.carRepo.ListAvailableByCategory(ctx, category)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CreateReservation", err)
		return "", err
	}
	if len(available) == 0 {
		err := domain.NewValidationError(domain.RuleNoAvailability,
			fmt.Sprintf("no %s car is available", category.Label()))
		logger.ExitMethodWithError("bookingService.CreateReservation", err)
		return "", err
	}
	car := available[0]

	if err := s.carRepo.Reserve(ctx, car.ID); err != nil {
		logger.ExitMethodWithError("bookingService.CreateReservation", err, "carID", car.ID)
		return "", err
	}

	if err := s.customerRepo.Upsert(ctx, &customer); err != nil {
		s.releaseAfterFailure(ctx, car.ID)
		logger.ExitMethodWithError("bookingService.CreateReservation", err)
		return "", fmt.Errorf("failed to register customer: %w", err)
	}

	id, err := s.reservationRepo.NextID(ctx)
	if err != nil {
		s.releaseAfterFailure(ctx, car.ID)
		logger.ExitMethodWithError("bookingService.CreateReservation", err, "carID", car.ID)
		return "", err
	}

	res := &domain.Reservation{
		ID:                id,
		Customer:          customer,
		CarID:             car.ID,
		Category:          car.Category,
		DailyRate:         car.DailyRate,
		BookingDate:       today,
		RentalStartDate:   start,
		NumDays:           numDays,
		ExpectedTotalKm:   expectedKm,
		RefundableDeposit: s.table.RefundableDeposit(),
		Status:            domain.ReservationStatusActive,
	}
	if err := s.reservationRepo.Create(ctx, res); err != nil {
		s.releaseAfterFailure(ctx, car.ID)
		logger.ExitMethodWithError("bookingService.CreateReservation", err, "reservationID", id)
		return "", err
	}

	car.Availability = domain.AvailabilityReserved
	if s.emailSvc != nil {
		if err := s.emailSvc.SendReservationConfirmation(ctx, res, &car); err != nil {
			logger.Warn("Failed to send reservation confirmation", "reservationID", id, "error", err)
		}
	}

	logger.Info("Reservation created", "reservationID", id, "carID", car.ID, "customer", customer.Name)
	logger.ExitMethod("bookingService.CreateReservation", "reservationID", id)
	return id, nil
}

func (s *bookingService) CancelReservation(ctx context.Context, id string) error {
	logger.EnterMethod("bookingService.CancelReservation", "reservationID", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.modifiable(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CancelReservation", err, "reservationID", id)
		return err
	}

	res.Status = domain.ReservationStatusCancelled
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		logger.ExitMethodWithError("bookingService.CancelReservation", err, "reservationID", id)
		return err
	}
	s.releaseCar(ctx, res)

	if s.emailSvc != nil {
		if err := s.emailSvc.SendReservationCancellation(ctx, res); err != nil {
			logger.Warn("Failed to send cancellation notice", "reservationID", id, "error", err)
		}
	}

	logger.Info("Reservation cancelled", "reservationID", id, "carID", res.CarID)
	logger.ExitMethod("bookingService.CancelReservation", "reservationID", id)
	return nil
}

// UpdateReservation changes duration and expected distance in place. The
// start date is not re-checked against the booking window.
func (s *bookingService) UpdateReservation(ctx context.Context, id string, numDays, expectedKm int) error {
	logger.EnterMethod("bookingService.UpdateReservation", "reservationID", id, "numDays", numDays, "expectedKm", expectedKm)

	if err := validateTrip(numDays, expectedKm); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateReservation", err, "reservationID", id)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.modifiable(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.UpdateReservation", err, "reservationID", id)
		return err
	}

	res.NumDays = numDays
	res.ExpectedTotalKm = expectedKm
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateReservation", err, "reservationID", id)
		return err
	}

	logger.Info("Reservation updated", "reservationID", id, "numDays", numDays, "expectedKm", expectedKm)
	logger.ExitMethod("bookingService.UpdateReservation", "reservationID", id)
	return nil
}

// CompleteReservation closes an ACTIVE reservation and frees its car. It is
// not bound by the grace window.
func (s *bookingService) CompleteReservation(ctx context.Context, id string) error {
	logger.EnterMethod("bookingService.CompleteReservation", "reservationID", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CompleteReservation", err, "reservationID", id)
		return err
	}
	if res.Status != domain.ReservationStatusActive {
		err := fmt.Errorf("%w: %s is %s", domain.ErrReservationNotActive, id, res.Status)
		logger.ExitMethodWithError("bookingService.CompleteReservation", err, "reservationID", id)
		return err
	}

	res.Status = domain.ReservationStatusCompleted
	if err := s.reservationRepo.Update(ctx, res); err != nil {
		logger.ExitMethodWithError("bookingService.CompleteReservation", err, "reservationID", id)
		return err
	}
	s.releaseCar(ctx, res)

	if s.emailSvc != nil {
		if err := s.emailSvc.SendReservationCompletion(ctx, res); err != nil {
			logger.Warn("Failed to send completion notice", "reservationID", id, "error", err)
		}
	}

	logger.Info("Reservation completed", "reservationID", id, "carID", res.CarID)
	logger.ExitMethod("bookingService.CompleteReservation", "reservationID", id)
	return nil
}

func (s *bookingService) FindReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

func (s *bookingService) SearchByCustomerName(ctx context.Context, name string) ([]domain.Reservation, error) {
	return s.reservationRepo.SearchByCustomerName(ctx, strings.TrimSpace(name))
}

func (s *bookingService) ListReservationsByStartDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	return s.reservationRepo.ListByStartDate(ctx, date)
}

func (s *bookingService) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservationRepo.List(ctx)
}

func (s *bookingService) GetCustomer(ctx context.Context, idDocument string) (*domain.Customer, error) {
	return s.customerRepo.GetByIDDocument(ctx, strings.TrimSpace(idDocument))
}

func (s *bookingService) CalculateInvoice(ctx context.Context, id string) (domain.Breakdown, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Breakdown{}, err
	}
	return pricing.Calculate(res, s.table)
}

// IssueInvoice builds the printable invoice. If the car has left the catalog
// since booking, the reservation's price snapshot stands in for it.
func (s *bookingService) IssueInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	breakdown, err := pricing.Calculate(res, s.table)
	if err != nil {
		return nil, err
	}

	car, err := s.carRepo.GetByID(ctx, res.CarID)
	switch {
	case errors.Is(err, domain.ErrCarNotFound):
		car = &domain.Car{ID: res.CarID, Category: res.Category, DailyRate: res.DailyRate}
	case err != nil:
		return nil, err
	}

	return &domain.Invoice{
		ID:              domain.InvoiceID(res.ID),
		ReservationID:   res.ID,
		IssueDate:       s.today(),
		Car:             *car,
		Customer:        res.Customer,
		RentalStartDate: res.RentalStartDate,
		NumDays:         res.NumDays,
		ExpectedTotalKm: res.ExpectedTotalKm,
		Breakdown:       breakdown,
	}, nil
}

// modifiable loads a reservation that may still be cancelled or updated.
// Checks run in order: existence, status, grace window.
func (s *bookingService) modifiable(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != domain.ReservationStatusActive {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrReservationNotActive, id, res.Status)
	}
	elapsed := utils.DaysBetween(res.BookingDate, s.today())
	if elapsed > s.rules.GraceDays {
		return nil, fmt.Errorf("%w: %s was booked %d days ago, limit is %d", domain.ErrWindowExpired, id, elapsed, s.rules.GraceDays)
	}
	return res, nil
}

// releaseCar frees the car of a closed reservation. A car that was removed
// from the catalog in the meantime is not an error.
func (s *bookingService) releaseCar(ctx context.Context, res *domain.Reservation) {
	if err := s.carRepo.Release(ctx, res.CarID); err != nil {
		if errors.Is(err, domain.ErrCarNotFound) {
			logger.Debug("Car no longer in catalog", "carID", res.CarID, "reservationID", res.ID)
			return
		}
		logger.Error("Failed to release car", "carID", res.CarID, "reservationID", res.ID, "error", err)
	}
}

func (s *bookingService) releaseAfterFailure(ctx context.Context, carID string) {
	if err := s.carRepo.Release(ctx, carID); err != nil {
		logger.Error("Failed to roll back car reservation", "carID", carID, "error", err)
	}
}

func validateBooking(customer domain.Customer, category domain.Category, numDays, expectedKm int) error {
	if customer.Name == "" {
		return domain.NewValidationError(domain.RuleInvalidInput, "customer name is required")
	}
	if customer.IDDocument == "" {
		return domain.NewValidationError(domain.RuleInvalidInput, "customer id document is required")
	}
	if !category.Valid() {
		return domain.NewValidationError(domain.RuleInvalidInput, "unknown category "+string(category))
	}
	return validateTrip(numDays, expectedKm)
}

func validateTrip(numDays, expectedKm int) error {
	if numDays < 1 {
		return domain.NewValidationError(domain.RuleInvalidInput, "number of days must be at least 1")
	}
	if numDays > pricing.MaxRentalDays {
		return domain.NewValidationError(domain.RuleInvalidInput,
			fmt.Sprintf("number of days must not exceed %d", pricing.MaxRentalDays))
	}
	if expectedKm < 0 {
		return domain.NewValidationError(domain.RuleInvalidInput, "expected km must not be negative")
	}
	return nil
}
