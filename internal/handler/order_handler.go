package handler

import (
	"net/http"

	"kuse-store/internal/model"
	"kuse-store/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var order model.Order
	if err := decodeBody(w, r, &order); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	id, err := h.service.Create(r.Context(), &order)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, IDResponse{Message: "Order received", ID: id})
}
