package memory

import (
	"context"
	"fmt"
	"sync"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/repository"
)

type customerRepository struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
	order     []string
}

func NewCustomerRepository() repository.CustomerRepository {
	return &customerRepository{customers: make(map[string]domain.Customer)}
}

func (r *customerRepository) Upsert(ctx context.Context, c *domain.Customer) error {
	if c == nil || c.IDDocument == "" {
		return fmt.Errorf("customer id document is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[c.IDDocument]; !ok {
		r.order = append(r.order, c.IDDocument)
	}
	r.customers[c.IDDocument] = *c
	return nil
}

func (r *customerRepository) GetByIDDocument(ctx context.Context, idDocument string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[idDocument]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, idDocument)
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.customers[id])
	}
	return out, nil
}
