package model

import "kuse-store/internal/store"

// Review is the write schema of a product review. ProductID is not checked
// against existing products.
type Review struct {
	ProductID *string `json:"product_id" validate:"required"`
	Name      *string `json:"name" validate:"required"`
	Rating    *int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment" validate:"required"`
}

// Collection implements Entity.
func (r *Review) Collection() string { return store.ReviewCollection }

// Document implements Entity.
func (r *Review) Document() store.Document {
	return store.Document{
		"product_id": deref(r.ProductID),
		"name":       deref(r.Name),
		"rating":     deref(r.Rating),
		"comment":    deref(r.Comment),
	}
}
