package service

import (
	"context"
	"fmt"

	"kuse-store/internal/model"
	"kuse-store/internal/store"

	"github.com/rs/zerolog"
)

type reviewService struct {
	store      store.Store
	validation *model.Validation
	logger     zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(st store.Store, validation *model.Validation, logger zerolog.Logger) ReviewService {
	return &reviewService{
		store:      st,
		validation: validation,
		logger:     logger.With().Str("service", "review").Logger(),
	}
}

func (s *reviewService) List(ctx context.Context, productID string) ([]store.Document, error) {
	query := store.Filter{}
	if productID != "" {
		query["product_id"] = productID
	}

	reviews, err := s.store.Query(ctx, store.ReviewCollection, query, ReviewListLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

func (s *reviewService) Create(ctx context.Context, review *model.Review) (string, error) {
	if review == nil {
		return "", fmt.Errorf("review is nil")
	}
	return createEntity(ctx, s.store, s.validation, review, s.logger)
}
