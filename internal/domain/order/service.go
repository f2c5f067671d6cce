package order

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/petrodist/fuel-orders/internal/domain/coupon"
	"github.com/petrodist/fuel-orders/internal/domain/customer"
	"github.com/petrodist/fuel-orders/internal/domain/product"
)

// CustomerNotFoundError indicates the referenced customer does not exist.
type CustomerNotFoundError struct {
	CustomerID string
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer %s not found", e.CustomerID)
}

// ProcessRequest holds the input for processing an order. Kind is the raw
// product tag; it is validated inside the pipeline.
type ProcessRequest struct {
	ID         string
	CustomerID string
	Kind       string
	Quantity   int
	CouponCode string
}

// ProcessResult holds the output of a successfully processed order.
type ProcessResult struct {
	Order      *Order
	Customer   *customer.Customer
	FinalPrice decimal.Decimal
}

// Service encapsulates the order pricing pipeline.
type Service struct {
	customers customer.Repository
	prices    *product.PriceList
	coupons   *coupon.Engine
	orders    Repository
	notifier  customer.Notifier
}

// NewService creates an order Service. notifier may be nil, in which case no
// confirmation message is sent.
func NewService(
	customers customer.Repository,
	prices *product.PriceList,
	coupons *coupon.Engine,
	orders Repository,
	notifier customer.Notifier,
) *Service {
	return &Service{
		customers: customers,
		prices:    prices,
		coupons:   coupons,
		orders:    orders,
		notifier:  notifier,
	}
}

// Process runs the order pricing pipeline: resolve the customer, validate
// the product and quantity, compute the volume-adjusted total, apply the
// coupon, round, and persist. Every step short-circuits on failure and the
// single write happens only after the price is fully computed.
func (s *Service) Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	cust, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return nil, &CustomerNotFoundError{CustomerID: req.CustomerID}
		}
		return nil, errors.Wrap(err, "resolve customer")
	}

	kind, err := product.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}

	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	o, err := New(req.ID, req.CustomerID, kind, req.Quantity, req.CouponCode)
	if err != nil {
		return nil, err
	}

	total, err := s.prices.VolumeAdjustedTotal(kind, req.Quantity)
	if err != nil {
		return nil, err
	}

	total = s.coupons.Apply(total, req.CouponCode, kind)
	final := Round(total, kind)

	if err := s.orders.Create(ctx, o); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, err
		}
		return nil, errors.Wrap(err, "create order")
	}

	// Fire-and-forget confirmation; a failed send never undoes the order.
	if s.notifier != nil {
		s.notifier.SendOrderConfirmation(ctx, cust, o.ID, final.String())
	}

	return &ProcessResult{
		Order:      o,
		Customer:   cust,
		FinalPrice: final,
	}, nil
}
