package bootstrap

import (
	"context"
	"fmt"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/logger"
	"ecoride-backend/internal/service"
)

// SampleCar is one entry of the demo fleet.
type SampleCar struct {
	ID       string
	Model    string
	Category domain.Category
}

// SampleFleet is loaded at startup when seeding is enabled.
var SampleFleet = []SampleCar{
	{ID: "C001", Model: "Toyota Aqua", Category: domain.CategoryCompactPetrol},
	{ID: "C002", Model: "Nissan Leaf", Category: domain.CategoryElectric},
	{ID: "C003", Model: "Toyota Prius", Category: domain.CategoryHybrid},
	{ID: "C004", Model: "BMW X5", Category: domain.CategoryLuxurySUV},
}

// Seed adds the sample fleet to an empty catalog. A catalog that already
// holds cars is left alone so reserved cars keep their state.
func Seed(ctx context.Context, catalog service.CatalogService) error {
	existing, err := catalog.ListAllCars(ctx)
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Catalog already populated, skipping sample fleet", "cars", len(existing))
		return nil
	}
	for _, c := range SampleFleet {
		if _, err := catalog.AddCar(ctx, c.ID, c.Model, c.Category); err != nil {
			return fmt.Errorf("failed to seed car %s: %w", c.ID, err)
		}
	}
	logger.Info("Sample fleet loaded", "cars", len(SampleFleet))
	return nil
}
