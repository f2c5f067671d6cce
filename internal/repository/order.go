package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petrodist/fuel-orders/internal/domain/order"
	"github.com/petrodist/fuel-orders/internal/domain/product"
)

const (
	createOrderSQL = `INSERT INTO orders (id, customer_id, product_kind, quantity, coupon_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`

	getOrderByIDSQL = `SELECT id, customer_id, product_kind, quantity, coupon_code, created_at
		FROM orders WHERE id = $1`

	listOrdersByCustomerSQL = `SELECT id, customer_id, product_kind, quantity, coupon_code, created_at
		FROM orders WHERE customer_id = $1 ORDER BY created_at, id`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. It returns order.ErrAlreadyExists when an
// order with the same ID is already stored.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	tag, err := r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.CustomerID, string(o.Kind), o.Quantity, o.CouponCode,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrAlreadyExists
	}
	return nil
}

// GetByID returns a single order by identifier.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}
	return &o, nil
}

// ListByCustomer returns all orders for the given customer in creation order.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersByCustomerSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("listing orders for customer %q: %w", customerID, err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o    order.Order
		kind string
	)
	err := row.Scan(&o.ID, &o.CustomerID, &kind, &o.Quantity, &o.CouponCode, &o.CreatedAt)
	o.Kind = product.Kind(kind)
	return o, err
}
