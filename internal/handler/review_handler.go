package handler

import (
	"net/http"

	"kuse-store/internal/model"
	"kuse-store/internal/serialize"
	"kuse-store/internal/service"

	"github.com/rs/zerolog"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// List handles GET /reviews, optionally narrowed by product_id.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context(), r.URL.Query().Get("product_id"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, serialize.Documents(reviews))
}

// Create handles POST /reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var review model.Review
	if err := decodeBody(w, r, &review); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	id, err := h.service.Create(r.Context(), &review)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}
