package service

import (
	"context"

	"kuse-store/internal/model"
	"kuse-store/internal/store"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of store.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, collection string, doc store.Document) (string, error) {
	args := m.Called(ctx, collection, doc)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Query(ctx context.Context, collection string, filter store.Filter, limit int64) ([]store.Document, error) {
	args := m.Called(ctx, collection, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Document), args.Error(1)
}

func (m *MockStore) Collections(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) Name() string {
	return m.Called().String(0)
}

func (m *MockStore) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockSource is a mock implementation of catalog.Source.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Products(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func validProduct() *model.Product {
	return &model.Product{
		Name:        ptr("Royal Red Khussa"),
		Description: ptr("Handcrafted"),
		Price:       ptr(59.99),
		ImageURL:    ptr("https://img"),
		Sizes:       []string{"7", "8"},
		Type:        ptr("Bridal"),
	}
}
