// Package serialize converts stored documents into JSON-safe maps.
//
// Store-assigned identifiers (Mongo ObjectIDs, UUIDs) become strings and the
// internal "_id" field is exposed as "id", at any nesting depth. Everything
// else passes through unchanged, so serializing twice gives the same result
// as serializing once.
package serialize

import (
	"kuse-store/internal/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	internalIDField = "_id"
	publicIDField   = "id"
)

// Document returns a JSON-safe copy of doc. A nil or empty document is
// returned as is.
func Document(doc map[string]any) map[string]any {
	if len(doc) == 0 {
		return doc
	}

	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == internalIDField {
			continue
		}
		out[k] = Value(v)
	}
	if id, ok := doc[internalIDField]; ok {
		out[publicIDField] = Value(id)
	}
	return out
}

// Documents serializes every document of docs. The result is never nil.
func Documents(docs []store.Document) []map[string]any {
	out := make([]map[string]any, len(docs))
	for i, d := range docs {
		out[i] = Document(d)
	}
	return out
}

// Value serializes a single field value.
func Value(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case uuid.UUID:
		return t.String()
	case store.Document:
		return Document(t)
	case primitive.M:
		return Document(t)
	case map[string]any:
		return Document(t)
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return Document(m)
	case primitive.A:
		return list(t)
	case []any:
		return list(t)
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = Document(m)
		}
		return out
	default:
		return v
	}
}

func list(items []any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = Value(item)
	}
	return out
}
