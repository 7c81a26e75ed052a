package service

import (
	"context"
	"fmt"

	"kuse-store/internal/catalog"
	"kuse-store/internal/model"
	"kuse-store/internal/store"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	store      store.Store
	validation *model.Validation
	catalog    catalog.Source
	logger     zerolog.Logger
}

// NewProductService creates a new product service. source supplies the
// products inserted by Seed.
func NewProductService(
	st store.Store,
	validation *model.Validation,
	source catalog.Source,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		store:      st,
		validation: validation,
		catalog:    source,
		logger:     logger.With().Str("service", "product").Logger(),
	}
}

// List returns up to ProductListLimit products matching filter.
func (s *productService) List(ctx context.Context, filter ProductFilter) ([]store.Document, error) {
	query := store.Filter{}
	if filter.Size != "" {
		query["sizes"] = store.In{filter.Size}
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	products, err := s.store.Query(ctx, store.ProductCollection, query, ProductListLimit)
	if err != nil {
		s.logger.Error().Err(err).
			Str("size", filter.Size).
			Str("type", filter.Type).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// Create validates and stores a product.
func (s *productService) Create(ctx context.Context, product *model.Product) (string, error) {
	if product == nil {
		return "", fmt.Errorf("product is nil")
	}
	product.ApplyDefaults()
	return createEntity(ctx, s.store, s.validation, product, s.logger)
}

// Seed inserts the sample catalog unless a product already exists. Two
// concurrent calls on an empty store may both insert.
func (s *productService) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.store.Query(ctx, store.ProductCollection, store.Filter{}, 1)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to check for existing products")
		return nil, fmt.Errorf("failed to check existing products: %w", err)
	}

	if len(existing) > 0 {
		s.logger.Info().Msg("catalog already seeded")
		return &SeedResult{Message: "Products already seeded"}, nil
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load sample catalog")
		return nil, fmt.Errorf("failed to load sample catalog: %w", err)
	}

	for i := range products {
		products[i].ApplyDefaults()
		if err := s.validation.Validate(&products[i]); err != nil {
			return nil, fmt.Errorf("invalid sample product %d: %w", i, err)
		}
	}

	for i := range products {
		if _, err := s.store.Create(ctx, store.ProductCollection, products[i].Document()); err != nil {
			s.logger.Error().Err(err).Int("inserted", i).Msg("failed to seed product")
			return nil, fmt.Errorf("failed to seed products: %w", err)
		}
	}

	s.logger.Info().Int("count", len(products)).Msg("sample catalog seeded")

	return &SeedResult{Message: "Seeded sample products", Count: len(products)}, nil
}
