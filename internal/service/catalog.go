package service

import (
	"context"
	"errors"
	"strings"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/logger"
	"ecoride-backend/internal/pricing"
	"ecoride-backend/internal/repository"
)

type catalogService struct {
	carRepo repository.CarRepository
	table   *pricing.Table
}

func NewCatalogService(carRepo repository.CarRepository, table *pricing.Table) CatalogService {
	return &catalogService{carRepo: carRepo, table: table}
}

// AddCar registers a car, or replaces one with the same id. The daily rate
// comes from the pricing table. A new car starts out AVAILABLE; a replaced
// one keeps its availability so a car held by a reservation stays RESERVED.
func (s *catalogService) AddCar(ctx context.Context, id, model string, category domain.Category) (*domain.Car, error) {
	logger.EnterMethod("catalogService.AddCar", "carID", id, "category", category)

	car, err := s.buildCar(id, model, category)
	if err != nil {
		logger.ExitMethodWithError("catalogService.AddCar", err, "carID", id)
		return nil, err
	}
	car.Availability = domain.AvailabilityAvailable
	existing, err := s.carRepo.GetByID(ctx, car.ID)
	switch {
	case err == nil:
		car.Availability = existing.Availability
	case !errors.Is(err, domain.ErrCarNotFound):
		logger.ExitMethodWithError("catalogService.AddCar", err, "carID", id)
		return nil, err
	}

	if err := s.carRepo.Add(ctx, car); err != nil {
		logger.ExitMethodWithError("catalogService.AddCar", err, "carID", id)
		return nil, err
	}

	logger.Info("Car added to catalog", "carID", car.ID, "model", car.Model, "category", car.Category)
	logger.ExitMethod("catalogService.AddCar", "carID", id)
	return s.carRepo.GetByID(ctx, car.ID)
}

// UpdateCar changes model and category of an existing car. Availability is
// left as is. The daily rate is re-derived only when the category changes.
func (s *catalogService) UpdateCar(ctx context.Context, id, model string, category domain.Category) (*domain.Car, error) {
	logger.EnterMethod("catalogService.UpdateCar", "carID", id)

	existing, err := s.carRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		logger.ExitMethodWithError("catalogService.UpdateCar", err, "carID", id)
		return nil, err
	}
	car, err := s.buildCar(id, model, category)
	if err != nil {
		logger.ExitMethodWithError("catalogService.UpdateCar", err, "carID", id)
		return nil, err
	}
	if existing.Category == car.Category {
		car.DailyRate = existing.DailyRate
	}
	car.Availability = existing.Availability
	car.CreatedOn = existing.CreatedOn

	if err := s.carRepo.Add(ctx, car); err != nil {
		logger.ExitMethodWithError("catalogService.UpdateCar", err, "carID", id)
		return nil, err
	}
	logger.ExitMethod("catalogService.UpdateCar", "carID", id)
	return s.carRepo.GetByID(ctx, car.ID)
}

func (s *catalogService) RemoveCar(ctx context.Context, id string) error {
	logger.Info("Removing car from catalog", "carID", id)
	return s.carRepo.Remove(ctx, id)
}

func (s *catalogService) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *catalogService) ListAllCars(ctx context.Context) ([]domain.Car, error) {
	return s.carRepo.List(ctx)
}

func (s *catalogService) ListAvailableCars(ctx context.Context) ([]domain.Car, error) {
	return s.carRepo.ListAvailable(ctx)
}

func (s *catalogService) ListAvailableByCategory(ctx context.Context, category domain.Category) ([]domain.Car, error) {
	if !category.Valid() {
		return nil, domain.NewValidationError(domain.RuleInvalidInput, "unknown category "+string(category))
	}
	return s.carRepo.ListAvailableByCategory(ctx, category)
}

func (s *catalogService) buildCar(id, model string, category domain.Category) (*domain.Car, error) {
	id = strings.TrimSpace(id)
	model = strings.TrimSpace(model)
	if id == "" {
		return nil, domain.NewValidationError(domain.RuleInvalidInput, "car id is required")
	}
	if model == "" {
		return nil, domain.NewValidationError(domain.RuleInvalidInput, "car model is required")
	}
	if !category.Valid() {
		return nil, domain.NewValidationError(domain.RuleInvalidInput, "unknown category "+string(category))
	}
	rate, err := s.table.DailyRate(category)
	if err != nil {
		return nil, err
	}
	return &domain.Car{ID: id, Model: model, Category: category, DailyRate: rate}, nil
}
