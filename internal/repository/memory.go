package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/petrodist/fuel-orders/internal/domain/customer"
	"github.com/petrodist/fuel-orders/internal/domain/order"
)

// MemoryCustomerStore is an in-memory customer.Repository for development
// and tests. Create is a mutex-guarded test-and-set, so the same conflict
// guarantees hold as for the PostgreSQL implementation.
type MemoryCustomerStore struct {
	mu      sync.RWMutex
	byID    map[string]customer.Customer
	byEmail map[customer.Email]string
}

var _ customer.Repository = (*MemoryCustomerStore)(nil)

// NewMemoryCustomerStore returns an empty in-memory customer store.
func NewMemoryCustomerStore() *MemoryCustomerStore {
	return &MemoryCustomerStore{
		byID:    make(map[string]customer.Customer),
		byEmail: make(map[customer.Email]string),
	}
}

// Create stores a copy of c. It returns customer.ErrAlreadyExists on an ID
// collision and customer.ErrDuplicateEmail on an email collision.
func (s *MemoryCustomerStore) Create(_ context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[c.ID]; ok {
		return customer.ErrAlreadyExists
	}
	if _, ok := s.byEmail[c.Email]; ok {
		return customer.ErrDuplicateEmail
	}

	stored := *c
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.byID[c.ID] = stored
	s.byEmail[c.Email] = c.ID
	return nil
}

func (s *MemoryCustomerStore) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return &c, nil
}

func (s *MemoryCustomerStore) GetByEmail(_ context.Context, email customer.Email) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, customer.ErrNotFound
	}
	c := s.byID[id]
	return &c, nil
}

func (s *MemoryCustomerStore) ExistsByEmail(_ context.Context, email customer.Email) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *MemoryCustomerStore) List(_ context.Context) ([]customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]customer.Customer, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryOrderStore is an in-memory order.Repository for development and
// tests.
type MemoryOrderStore struct {
	mu   sync.RWMutex
	byID map[string]order.Order
}

var _ order.Repository = (*MemoryOrderStore)(nil)

// NewMemoryOrderStore returns an empty in-memory order store.
func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{byID: make(map[string]order.Order)}
}

// Create stores a copy of o. It returns order.ErrAlreadyExists on an ID
// collision.
func (s *MemoryOrderStore) Create(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[o.ID]; ok {
		return order.ErrAlreadyExists
	}

	stored := *o
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.byID[o.ID] = stored
	return nil
}

func (s *MemoryOrderStore) GetByID(_ context.Context, id string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return &o, nil
}

func (s *MemoryOrderStore) ListByCustomer(_ context.Context, customerID string) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []order.Order
	for _, o := range s.byID {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
