package store

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore keeps collections in process memory. Identifiers are Mongo
// ObjectIDs so documents have the same shape as the mongo backend's.
type memoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
	logger      zerolog.Logger
}

// NewMemoryStore creates an empty in-process document store.
func NewMemoryStore(logger zerolog.Logger) Store {
	return &memoryStore{
		collections: make(map[string][]Document),
		logger:      logger.With().Str("store", "memory").Logger(),
	}
}

func (s *memoryStore) Create(ctx context.Context, collection string, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := primitive.NewObjectID()
	stored := make(Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored["_id"] = id

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], stored)
	s.mu.Unlock()

	s.logger.Debug().Str("collection", collection).Str("id", id.Hex()).Msg("document created")

	return id.Hex(), nil
}

func (s *memoryStore) Query(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0)
	for _, doc := range s.collections[collection] {
		if limit > 0 && int64(len(docs)) >= limit {
			break
		}
		if !matches(doc, filter) {
			continue
		}
		out := make(Document, len(doc))
		for k, v := range doc {
			out[k] = v
		}
		docs = append(docs, out)
	}

	return docs, nil
}

func (s *memoryStore) Collections(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

func (s *memoryStore) Name() string { return "memory" }

func (s *memoryStore) Close(context.Context) error { return nil }

// matches reports whether doc satisfies every constraint of filter.
func matches(doc Document, filter Filter) bool {
	for field, want := range filter {
		got, ok := doc[field]
		if !ok {
			return false
		}

		if set, isIn := want.(In); isIn {
			if !matchesAny(got, set) {
				return false
			}
			continue
		}

		if !valueEqual(got, want) {
			return false
		}
	}
	return true
}

// matchesAny applies In semantics: a scalar must be in the set, a list must
// share at least one element with it.
func matchesAny(got any, set In) bool {
	rv := reflect.ValueOf(got)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if inSet(rv.Index(i).Interface(), set) {
				return true
			}
		}
		return false
	}
	return inSet(got, set)
}

func inSet(v any, set In) bool {
	for _, candidate := range set {
		if valueEqual(v, candidate) {
			return true
		}
	}
	return false
}

func valueEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	return okA && okB && fa == fb
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
