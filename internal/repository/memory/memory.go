// Package memory keeps the catalog, ledger and customer registry in process
// memory. Every repository is safe for concurrent use.
package memory

import "ecoride-backend/internal/repository"

func NewStore() *repository.Store {
	return &repository.Store{
		CarRepository:         NewCarRepository(),
		ReservationRepository: NewReservationRepository(),
		CustomerRepository:    NewCustomerRepository(),
	}
}
