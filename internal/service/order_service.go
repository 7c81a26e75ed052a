package service

import (
	"context"
	"fmt"

	"kuse-store/internal/model"
	"kuse-store/internal/store"

	"github.com/rs/zerolog"
)

// orderService implements OrderService. Item names and prices are stored as
// the client sent them; nothing is re-derived from the catalog.
type orderService struct {
	store      store.Store
	validation *model.Validation
	logger     zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(st store.Store, validation *model.Validation, logger zerolog.Logger) OrderService {
	return &orderService{
		store:      st,
		validation: validation,
		logger:     logger.With().Str("service", "order").Logger(),
	}
}

// Create validates and stores an order as a single document.
func (s *orderService) Create(ctx context.Context, order *model.Order) (string, error) {
	if order == nil {
		return "", fmt.Errorf("order is nil")
	}

	id, err := createEntity(ctx, s.store, s.validation, order, s.logger)
	if err != nil {
		return "", err
	}

	s.logger.Info().
		Str("order_id", id).
		Int("item_count", len(order.Items)).
		Msg("order received")

	return id, nil
}
