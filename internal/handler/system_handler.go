package handler

import (
	"net/http"

	"kuse-store/internal/service"

	"github.com/rs/zerolog"
)

// SystemHandler serves the liveness, status and seed routes.
type SystemHandler struct {
	products service.ProductService
	status   service.StatusService
	logger   zerolog.Logger
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(products service.ProductService, status service.StatusService, logger zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		products: products,
		status:   status,
		logger:   logger.With().Str("handler", "system").Logger(),
	}
}

// Root handles GET / without touching the store.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Kuse Shoes Store API is running"})
}

// Test handles GET /test. It always answers 200; store failures are
// reported in the body.
func (h *SystemHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.status.Status(r.Context()))
}

// Seed handles POST /seed.
func (h *SystemHandler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.products.Seed(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
