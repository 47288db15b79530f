package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mgrech/go_sales/internal/service"
)

type AddProductHandler interface {
	Handle(ctx context.Context, cmd service.AddProductCommand) error
}

type ReservationHandler struct {
	addProduct AddProductHandler
	timeout    time.Duration
}

func NewReservationHandler(addProduct AddProductHandler, timeout time.Duration) *ReservationHandler {
	return &ReservationHandler{
		addProduct: addProduct,
		timeout:    timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *ReservationHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	reservationID, err := uuid.Parse(chi.URLParam(r, "reservation_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_reservation_id", "reservation_id must be a uuid")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a uuid")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	cmd := service.AddProductCommand{
		ReservationID: reservationID,
		ProductID:     productID,
		Quantity:      req.Quantity,
	}
	if err := h.addProduct.Handle(ctx, cmd); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
