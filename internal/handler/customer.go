package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/petrodist/fuel-orders/internal/domain/customer"
)

type registerCustomerRequest struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	TaxID string `json:"tax_id"`
}

type customerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	TaxID string `json:"tax_id"`
}

func toCustomerResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email.String(),
		TaxID: c.TaxID.String(),
	}
}

func (h *Handler) handleRegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req registerCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.customers.Register(r.Context(), customer.RegisterRequest{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		TaxID: req.TaxID,
	})
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toCustomerResponse(c))
}

func (h *Handler) writeRegisterError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, customer.ErrInvalidEmail),
		errors.Is(err, customer.ErrInvalidTaxID),
		errors.Is(err, customer.ErrEmptyName):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, customer.ErrDuplicateEmail),
		errors.Is(err, customer.ErrAlreadyExists):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		writeInternalError(w, r, err)
	}
}

func (h *Handler) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.customerStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toCustomerResponse(c))
}

func (h *Handler) handleListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.customerStore.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		writeInternalError(w, r, err)
		return
	}

	orders, err := h.orderStore.ListByCustomer(r.Context(), id)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	out := make([]orderRecord, len(orders))
	for i := range orders {
		out[i] = toOrderRecord(&orders[i])
	}
	writeJSON(w, r, http.StatusOK, out)
}
