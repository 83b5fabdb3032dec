package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryCompactPetrol Category = "COMPACT_PETROL"
	CategoryHybrid        Category = "HYBRID"
	CategoryElectric      Category = "ELECTRIC"
	CategoryLuxurySUV     Category = "LUXURY_SUV"
)

// Categories returns the closed set of vehicle classes in menu order.
func Categories() []Category {
	return []Category{CategoryCompactPetrol, CategoryHybrid, CategoryElectric, CategoryLuxurySUV}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns a human readable name, e.g. "Luxury SUV".
func (c Category) Label() string {
	switch c {
	case CategoryCompactPetrol:
		return "Compact Petrol"
	case CategoryHybrid:
		return "Hybrid"
	case CategoryElectric:
		return "Electric"
	case CategoryLuxurySUV:
		return "Luxury SUV"
	default:
		return string(c)
	}
}

// ParseCategory accepts either the enum name (any case, spaces or dashes for
// underscores) or the menu digit 1-4.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "1":
		return CategoryCompactPetrol, nil
	case "2":
		return CategoryHybrid, nil
	case "3":
		return CategoryElectric, nil
	case "4":
		return CategoryLuxurySUV, nil
	}

	normalized := strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_").Replace(s))
	c := Category(normalized)
	if !c.Valid() {
		return "", NewValidationError(RuleInvalidInput, fmt.Sprintf("unknown category %q", s))
	}
	return c, nil
}

type Availability string

const (
	AvailabilityAvailable Availability = "AVAILABLE"
	AvailabilityReserved  Availability = "RESERVED"
)

type Car struct {
	ID       string   `json:"id" db:"id"`
	Model    string   `json:"model" db:"model"`
	Category Category `json:"category" db:"category"`
	// DailyRate is copied from the pricing table when the car is added or its
	// category changes. It is not recomputed afterwards.
	DailyRate    decimal.Decimal `json:"daily_rate" db:"daily_rate"`
	Availability Availability    `json:"availability" db:"availability"`
	CreatedOn    time.Time       `json:"created_on" db:"created_on"`
	UpdatedOn    time.Time       `json:"updated_on" db:"updated_on"`
}

func (c *Car) IsAvailable() bool {
	return c.Availability == AvailabilityAvailable
}
