package customer

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// RegisterRequest holds the input for registering a customer. ID is
// optional; one is generated when the caller leaves it empty.
type RegisterRequest struct {
	ID    string
	Name  string
	Email string
	TaxID string
}

// Service encapsulates the customer registration pipeline.
type Service struct {
	customers Repository
	notifier  Notifier
	newID     func() string
}

// NewService creates a customer Service. notifier may be nil, in which case
// no welcome message is sent.
func NewService(customers Repository, notifier Notifier) *Service {
	return &Service{
		customers: customers,
		notifier:  notifier,
		newID:     func() string { return uuid.New().String() },
	}
}

// Register validates and normalizes the request, enforces email uniqueness,
// persists the customer, and sends a best-effort welcome notification.
// Nothing is written when any validation step fails.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Customer, error) {
	email, err := NewEmail(req.Email)
	if err != nil {
		return nil, err
	}

	taxID, err := NewTaxID(req.TaxID)
	if err != nil {
		return nil, err
	}

	exists, err := s.customers.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "check email uniqueness")
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	id := req.ID
	if id == "" {
		id = s.newID()
	}

	c, err := New(id, req.Name, email, taxID)
	if err != nil {
		return nil, err
	}

	if err := s.customers.Create(ctx, c); err != nil {
		if errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrDuplicateEmail) {
			return nil, err
		}
		return nil, errors.Wrap(err, "create customer")
	}

	// Fire-and-forget: a failed welcome message never rolls back the
	// registration.
	if s.notifier != nil {
		s.notifier.SendWelcome(ctx, c)
	}

	return c, nil
}
