package model

import (
	"encoding/json"
	"fmt"

	"kuse-store/internal/store"
)

// Product is the write schema of a catalog product.
type Product struct {
	Name        *string  `json:"name" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	ImageURL    *string  `json:"image_url" validate:"required"`
	Sizes       []string `json:"sizes" validate:"dive,required"`
	// Type is the style of the shoe, e.g. Khussa, Bridal, Casual.
	Type    *string `json:"type" validate:"required"`
	InStock *bool   `json:"in_stock"`
}

// UnmarshalJSON decodes a product and rejects an explicit null on the
// optional fields, so only an absent field takes its default.
func (p *Product) UnmarshalJSON(data []byte) error {
	type product Product
	if err := json.Unmarshal(data, (*product)(p)); err != nil {
		return err
	}

	var fields struct {
		Sizes   json.RawMessage `json:"sizes"`
		InStock json.RawMessage `json:"in_stock"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var verrs ValidationErrors
	if isNull(fields.Sizes) {
		verrs = append(verrs, nullValue("sizes", "array"))
	} else if len(fields.Sizes) > 0 {
		var sizes []json.RawMessage
		if err := json.Unmarshal(fields.Sizes, &sizes); err != nil {
			return err
		}
		for i, size := range sizes {
			if isNull(size) {
				verrs = append(verrs, nullValue(fmt.Sprintf("sizes[%d]", i), "string"))
			}
		}
	}
	if isNull(fields.InStock) {
		verrs = append(verrs, nullValue("in_stock", "boolean"))
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// ApplyDefaults fills the optional fields that were omitted.
func (p *Product) ApplyDefaults() {
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.InStock == nil {
		inStock := true
		p.InStock = &inStock
	}
}

// Collection implements Entity.
func (p *Product) Collection() string { return store.ProductCollection }

// Document implements Entity. Call after a successful Validate.
func (p *Product) Document() store.Document {
	p.ApplyDefaults()
	return store.Document{
		"name":        deref(p.Name),
		"description": deref(p.Description),
		"price":       deref(p.Price),
		"image_url":   deref(p.ImageURL),
		"sizes":       append([]string{}, p.Sizes...),
		"type":        deref(p.Type),
		"in_stock":    deref(p.InStock),
	}
}
