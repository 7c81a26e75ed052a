// Package store executes create and query operations against named
// collections of a document database. It is schema-agnostic: documents are
// plain field maps and the store never sees typed entities.
package store

import (
	"context"
	"errors"
)

// Collection names.
const (
	ProductCollection = "product"
	ReviewCollection  = "review"
	OrderCollection   = "order"
)

// ErrUnavailable is returned (wrapped) when the backing database cannot be reached.
var ErrUnavailable = errors.New("document store unavailable")

// Document is a stored record: field name to dynamically typed value.
type Document map[string]any

// Filter maps a field name to either an exact value or an In constraint.
// An empty filter matches every document.
type Filter map[string]any

// In matches when the field value is one of the listed values. For a
// list-valued field it matches when any element is one of them.
type In []any

// Store is a document database holding independent collections.
type Store interface {
	// Create inserts doc into collection and returns the store-assigned identifier.
	Create(ctx context.Context, collection string, doc Document) (string, error)

	// Query returns up to limit documents of collection matching filter, in the
	// store's natural order.
	Query(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error)

	// Collections lists the collection names present in the database.
	Collections(ctx context.Context) ([]string, error)

	// Name returns the database name.
	Name() string

	// Close releases the underlying connections.
	Close(ctx context.Context) error
}

// Unavailable returns a Store whose every operation fails with ErrUnavailable.
// It stands in when no connection URL is configured.
func Unavailable() Store {
	return unavailableStore{}
}

type unavailableStore struct{}

func (unavailableStore) Create(context.Context, string, Document) (string, error) {
	return "", ErrUnavailable
}

func (unavailableStore) Query(context.Context, string, Filter, int64) ([]Document, error) {
	return nil, ErrUnavailable
}

func (unavailableStore) Collections(context.Context) ([]string, error) {
	return nil, ErrUnavailable
}

func (unavailableStore) Name() string { return "" }

func (unavailableStore) Close(context.Context) error { return nil }
