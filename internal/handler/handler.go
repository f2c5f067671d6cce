// Package handler exposes the customer and order pipelines over HTTP.
package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/petrodist/fuel-orders/internal/domain/customer"
	"github.com/petrodist/fuel-orders/internal/domain/order"
	"github.com/petrodist/fuel-orders/internal/domain/product"
)

// Handler holds the domain services and read repositories behind the API.
type Handler struct {
	customers     *customer.Service
	customerStore customer.Repository
	orders        *order.Service
	orderStore    order.Repository
	prices        *product.PriceList
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	customers *customer.Service,
	customerStore customer.Repository,
	orders *order.Service,
	orderStore order.Repository,
	prices *product.PriceList,
) *Handler {
	return &Handler{
		customers:     customers,
		customerStore: customerStore,
		orders:        orders,
		orderStore:    orderStore,
		prices:        prices,
	}
}

// Routes returns the API router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/customers", h.handleRegisterCustomer)
	r.Get("/customers/{id}", h.handleGetCustomer)
	r.Get("/customers/{id}/orders", h.handleListCustomerOrders)
	r.Post("/orders", h.handleProcessOrder)
	r.Get("/orders/{id}", h.handleGetOrder)
	r.Get("/products", h.handleListProducts)

	return r
}
