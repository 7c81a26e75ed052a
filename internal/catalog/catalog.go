// Package catalog supplies the sample products used to seed an empty store.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"kuse-store/internal/model"

	"github.com/klauspost/pgzip"
)

// Source supplies sample products.
type Source interface {
	// Products returns the sample products. Callers may modify the result.
	Products(ctx context.Context) ([]model.Product, error)
}

// Loader reads a product list from a location such as a file path or an S3 key.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// Builtin returns the fixed three-product sample catalog.
func Builtin() Source {
	return builtinSource{}
}

type builtinSource struct{}

func (builtinSource) Products(context.Context) ([]model.Product, error) {
	return []model.Product{
		sample(
			"Royal Red Khussa",
			"Handcrafted leather khussa with gold embroidery",
			59.99,
			"https://images.unsplash.com/photo-1593032457862-bc35e5ad9d1d?q=80&w=1600&auto=format&fit=crop",
			[]string{"6", "7", "8", "9", "10"},
			"Bridal",
		),
		sample(
			"Classic Gold Khussa",
			"Traditional gold-stitched khussa for festive wear",
			49.99,
			"https://images.unsplash.com/photo-1520975916090-3105956dac38?q=80&w=1600&auto=format&fit=crop",
			[]string{"5", "6", "7", "8"},
			"Festive",
		),
		sample(
			"Everyday Comfort Khussa",
			"Soft sole, perfect for daily wear with subtle gold accent",
			39.99,
			"https://images.unsplash.com/photo-1528701800489-20be3c2ea1b3?q=80&w=1600&auto=format&fit=crop",
			[]string{"6", "7", "8", "9"},
			"Casual",
		),
	}, nil
}

func sample(name, description string, price float64, imageURL string, sizes []string, kind string) model.Product {
	inStock := true
	return model.Product{
		Name:        &name,
		Description: &description,
		Price:       &price,
		ImageURL:    &imageURL,
		Sizes:       sizes,
		Type:        &kind,
		InStock:     &inStock,
	}
}

// NewSource returns a Source reading path through loader on every call.
func NewSource(loader Loader, path string) Source {
	return &loaderSource{loader: loader, path: path}
}

type loaderSource struct {
	loader Loader
	path   string
}

func (s *loaderSource) Products(ctx context.Context) ([]model.Product, error) {
	return s.loader.Load(ctx, s.path)
}

// decodeProducts reads a JSON array of products from r, gunzipping it when
// name ends in ".gz".
func decodeProducts(r io.Reader, name string) ([]model.Product, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := pgzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}

	var products []model.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", name, err)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("catalog %s contains no products", name)
	}

	return products, nil
}
