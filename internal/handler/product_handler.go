package handler

import (
	"net/http"

	"kuse-store/internal/model"
	"kuse-store/internal/serialize"
	"kuse-store/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /products. The size and ptype query parameters narrow
// the result; absent parameters impose no filter.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := service.ProductFilter{
		Size: query.Get("size"),
		Type: query.Get("ptype"),
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, serialize.Documents(products))
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := decodeBody(w, r, &product); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	id, err := h.service.Create(r.Context(), &product)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}
