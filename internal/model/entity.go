package model

import "kuse-store/internal/store"

// Entity is one of the writable entities: *Product, *Review or *Order.
type Entity interface {
	// Collection names the collection the entity is stored in.
	Collection() string

	// Document converts the entity into a schema-less store document.
	Document() store.Document
}

var (
	_ Entity = (*Product)(nil)
	_ Entity = (*Review)(nil)
	_ Entity = (*Order)(nil)
)

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
