package service

import (
	"context"
	"fmt"

	"kuse-store/internal/model"
	"kuse-store/internal/store"

	"github.com/rs/zerolog"
)

// List caps applied to every list query.
const (
	ProductListLimit = 100
	ReviewListLimit  = 200
)

// ProductFilter narrows a product listing. Empty fields impose no constraint.
type ProductFilter struct {
	// Size keeps products whose sizes list contains this label.
	Size string
	// Type keeps products of exactly this type.
	Type string
}

// SeedResult reports the outcome of seeding the sample catalog.
type SeedResult struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// StatusReport describes store connectivity. It is always produced, even
// when the store cannot be reached.
type StatusReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Status           string   `json:"status,omitempty"`
	Message          string   `json:"message,omitempty"`
}

// ProductService defines operations on the product catalog.
type ProductService interface {
	// List returns up to ProductListLimit products matching filter.
	List(ctx context.Context, filter ProductFilter) ([]store.Document, error)

	// Create validates and stores a product, returning its identifier.
	Create(ctx context.Context, product *model.Product) (string, error)

	// Seed inserts the sample catalog when no product exists yet.
	Seed(ctx context.Context) (*SeedResult, error)
}

// ReviewService defines operations on product reviews.
type ReviewService interface {
	// List returns up to ReviewListLimit reviews, optionally of one product.
	List(ctx context.Context, productID string) ([]store.Document, error)

	// Create validates and stores a review, returning its identifier.
	Create(ctx context.Context, review *model.Review) (string, error)
}

// OrderService defines operations on customer orders.
type OrderService interface {
	// Create validates and stores an order, returning its identifier.
	Create(ctx context.Context, order *model.Order) (string, error)
}

// StatusService reports on the document store.
type StatusService interface {
	Status(ctx context.Context) *StatusReport
}

// createEntity validates e and inserts it. Nothing is written when
// validation fails.
func createEntity(
	ctx context.Context,
	st store.Store,
	validation *model.Validation,
	e model.Entity,
	logger zerolog.Logger,
) (string, error) {
	if err := validation.Validate(e); err != nil {
		logger.Debug().Err(err).Str("collection", e.Collection()).Msg("rejected invalid payload")
		return "", err
	}

	id, err := st.Create(ctx, e.Collection(), e.Document())
	if err != nil {
		logger.Error().Err(err).Str("collection", e.Collection()).Msg("failed to create document")
		return "", fmt.Errorf("failed to create %s: %w", e.Collection(), err)
	}

	logger.Info().Str("collection", e.Collection()).Str("id", id).Msg("document created")

	return id, nil
}
