package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petrodist/fuel-orders/internal/domain/customer"
)

const (
	// The insert is a conditional write: a duplicate ID inserts nothing,
	// which closes the register check-then-write race at the store level.
	createCustomerSQL = `INSERT INTO customers (id, name, email, tax_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`

	getCustomerByIDSQL = `SELECT id, name, email, tax_id, created_at
		FROM customers WHERE id = $1`

	getCustomerByEmailSQL = `SELECT id, name, email, tax_id, created_at
		FROM customers WHERE email = $1`

	existsCustomerByEmailSQL = `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`

	listCustomersSQL = `SELECT id, name, email, tax_id, created_at
		FROM customers ORDER BY created_at, id`
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create persists a new customer. It returns customer.ErrAlreadyExists on an
// ID collision and customer.ErrDuplicateEmail when the email unique index
// rejects the row.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	tag, err := r.pool.Exec(ctx, createCustomerSQL,
		c.ID, c.Name, c.Email.String(), c.TaxID.String(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return customer.ErrDuplicateEmail
		}
		return fmt.Errorf("creating customer %q: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrAlreadyExists
	}
	return nil
}

// GetByID returns a single customer by identifier.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	rows, err := r.pool.Query(ctx, getCustomerByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting customer %q: %w", id, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("getting customer %q: %w", id, err)
	}
	return &c, nil
}

// GetByEmail returns a single customer by normalized email.
func (r *CustomerRepository) GetByEmail(ctx context.Context, email customer.Email) (*customer.Customer, error) {
	rows, err := r.pool.Query(ctx, getCustomerByEmailSQL, email.String())
	if err != nil {
		return nil, fmt.Errorf("getting customer by email: %w", err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("getting customer by email: %w", err)
	}
	return &c, nil
}

// ExistsByEmail reports whether a customer with the normalized email exists.
func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email customer.Email) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, existsCustomerByEmailSQL, email.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}
	return exists, nil
}

// List returns all customers in creation order.
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	rows, err := r.pool.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return pgx.CollectRows(rows, scanCustomer)
}

func scanCustomer(row pgx.CollectableRow) (customer.Customer, error) {
	var (
		c     customer.Customer
		email string
		taxID string
	)
	err := row.Scan(&c.ID, &c.Name, &email, &taxID, &c.CreatedAt)
	c.Email = customer.Email(email)
	c.TaxID = customer.TaxID(taxID)
	return c, err
}
