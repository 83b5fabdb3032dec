package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/logger"
	"ecoride-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

type customerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Upsert(ctx context.Context, c *domain.Customer) error {
	if c == nil || c.IDDocument == "" {
		return fmt.Errorf("customer id document is required")
	}
	query := `INSERT INTO customers (id_document, name, contact_number, email) VALUES (:id_document, :name, :contact_number, :email)
	          ON CONFLICT(id_document) DO UPDATE SET name = excluded.name, contact_number = excluded.contact_number, email = excluded.email`
	logger.DatabaseCall("customers.Upsert", query, "idDocument", c.IDDocument)
	res, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		logger.DatabaseResult("customers.Upsert", 0, err)
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("customers.Upsert", n, nil)
	return nil
}

func (r *customerRepository) GetByIDDocument(ctx context.Context, idDocument string) (*domain.Customer, error) {
	var c domain.Customer
	query := `SELECT id_document, name, contact_number, email FROM customers WHERE id_document = ?`
	logger.DatabaseCall("customers.GetByIDDocument", query)
	if err := r.db.GetContext(ctx, &c, query, idDocument); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.DatabaseResult("customers.GetByIDDocument", 0, nil)
			return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, idDocument)
		}
		logger.DatabaseResult("customers.GetByIDDocument", 0, err)
		return nil, err
	}
	logger.DatabaseResult("customers.GetByIDDocument", 1, nil)
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	query := `SELECT id_document, name, contact_number, email FROM customers ORDER BY rowid`
	logger.DatabaseCall("customers.List", query)
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		logger.DatabaseResult("customers.List", 0, err)
		return nil, err
	}
	logger.DatabaseResult("customers.List", int64(len(customers)), nil)
	return customers, nil
}
