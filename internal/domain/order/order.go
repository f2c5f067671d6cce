package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/petrodist/fuel-orders/internal/domain/product"
)

// Sentinel errors for order validation and persistence.
var (
	ErrEmptyID         = errors.New("order ID required")
	ErrEmptyCustomerID = errors.New("customer ID required")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	ErrNotFound        = errors.New("order not found")
	ErrAlreadyExists   = errors.New("order already exists")
)

// Order is a processed fuel or lubricant order. The computed price is a
// pipeline output, not a field: it is returned alongside the order and
// never stored on the entity. Instances are immutable once persisted.
type Order struct {
	ID         string
	CustomerID string
	Kind       product.Kind
	Quantity   int
	CouponCode string
	CreatedAt  time.Time
}

// New validates the identity fields and constructs an Order.
func New(id, customerID string, kind product.Kind, quantity int, couponCode string) (*Order, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if customerID == "" {
		return nil, ErrEmptyCustomerID
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Kind:       kind,
		Quantity:   quantity,
		CouponCode: couponCode,
	}, nil
}

// Repository defines persistence operations for orders. Create must return
// ErrAlreadyExists when an order with the same ID is already stored.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
}
