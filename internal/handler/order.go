package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/petrodist/fuel-orders/internal/domain/order"
	"github.com/petrodist/fuel-orders/internal/domain/product"
)

type processOrderRequest struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Product    string `json:"product"`
	Quantity   int    `json:"quantity"`
	CouponCode string `json:"coupon_code,omitempty"`
}

type orderRecord struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Product    string `json:"product"`
	Quantity   int    `json:"quantity"`
	CouponCode string `json:"coupon_code,omitempty"`
}

type processOrderResponse struct {
	orderRecord
	FinalPrice string `json:"final_price"`
}

func toOrderRecord(o *order.Order) orderRecord {
	return orderRecord{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Product:    string(o.Kind),
		Quantity:   o.Quantity,
		CouponCode: o.CouponCode,
	}
}

func (h *Handler) handleProcessOrder(w http.ResponseWriter, r *http.Request) {
	var req processOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.orders.Process(r.Context(), order.ProcessRequest{
		ID:         req.ID,
		CustomerID: req.CustomerID,
		Kind:       req.Product,
		Quantity:   req.Quantity,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		h.writeProcessError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, processOrderResponse{
		orderRecord: toOrderRecord(result.Order),
		FinalPrice:  result.FinalPrice.String(),
	})
}

// writeProcessError converts pipeline errors to HTTP responses. Bad request
// shapes map to 400/422, missing references to 404, duplicate IDs to 409,
// and anything else to 500.
func (h *Handler) writeProcessError(w http.ResponseWriter, r *http.Request, err error) {
	var cnfErr *order.CustomerNotFoundError
	if errors.As(err, &cnfErr) {
		writeError(w, r, http.StatusNotFound, cnfErr.Error())
		return
	}

	var ukErr *product.UnknownKindError
	if errors.As(err, &ukErr) {
		writeError(w, r, http.StatusUnprocessableEntity, ukErr.Error())
		return
	}

	switch {
	case errors.Is(err, order.ErrInvalidQuantity):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, order.ErrEmptyID),
		errors.Is(err, order.ErrEmptyCustomerID):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrAlreadyExists):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		writeInternalError(w, r, err)
	}
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, err := h.orderStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toOrderRecord(o))
}

type productTier struct {
	Threshold int    `json:"threshold"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

type productResponse struct {
	Kind      string        `json:"kind"`
	BasePrice string        `json:"base_price"`
	Tiers     []productTier `json:"tiers,omitempty"`
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	kinds := product.Kinds()
	out := make([]productResponse, 0, len(kinds))
	for _, kind := range kinds {
		base, err := h.prices.BasePrice(kind)
		if err != nil {
			writeInternalError(w, r, err)
			return
		}

		resp := productResponse{
			Kind:      string(kind),
			BasePrice: base.StringFixed(2),
		}
		for _, t := range h.prices.Tiers(kind) {
			resp.Tiers = append(resp.Tiers, productTier{
				Threshold: t.Threshold,
				Type:      string(t.Type),
				Value:     t.Value.String(),
			})
		}
		out = append(out, resp)
	}

	writeJSON(w, r, http.StatusOK, out)
}
