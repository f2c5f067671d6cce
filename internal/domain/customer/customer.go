package customer

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// Sentinel errors for customer lookup and persistence.
var (
	ErrNotFound       = errors.New("customer not found")
	ErrAlreadyExists  = errors.New("customer already exists")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrEmptyName      = errors.New("customer name required")
)

// Customer is a registered buyer. Instances are immutable once persisted.
type Customer struct {
	ID        string
	Name      string
	Email     Email
	TaxID     TaxID
	CreatedAt time.Time
}

// New validates the identity fields and constructs a Customer. Email and
// TaxID are expected to be already-validated value objects.
func New(id, name string, email Email, taxID TaxID) (*Customer, error) {
	if id == "" {
		return nil, errors.New("customer ID required")
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Customer{
		ID:    id,
		Name:  name,
		Email: email,
		TaxID: taxID,
	}, nil
}

// Repository defines persistence operations for customers. Create must
// return ErrAlreadyExists on an ID collision and ErrDuplicateEmail when the
// email uniqueness constraint is violated.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByEmail(ctx context.Context, email Email) (*Customer, error)
	ExistsByEmail(ctx context.Context, email Email) (bool, error)
	List(ctx context.Context) ([]Customer, error)
}

// Notifier delivers customer-facing messages. Delivery is best-effort: the
// boolean result is informational and callers never fail on it.
type Notifier interface {
	SendWelcome(ctx context.Context, c *Customer) bool
	SendOrderConfirmation(ctx context.Context, c *Customer, orderID, total string) bool
}
