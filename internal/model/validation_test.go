package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAndValidate(t *testing.T, body string, e Entity) error {
	t.Helper()
	if err := Decode(strings.NewReader(body), e); err != nil {
		return err
	}
	return NewValidation().Validate(e)
}

func fieldErrors(t *testing.T, err error) ValidationErrors {
	t.Helper()
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

const validProduct = `{
	"name": "Royal Red Khussa",
	"description": "Handcrafted leather khussa",
	"price": 59.99,
	"image_url": "https://example.com/k.jpg",
	"sizes": ["6", "7"],
	"type": "Bridal",
	"in_stock": false
}`

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectField string
		expectWords string
	}{
		{name: "Valid product", body: validProduct},
		{
			name:        "Zero price",
			body:        `{"name":"a","description":"b","price":0,"image_url":"c","type":"d"}`,
			expectField: "price",
			expectWords: "greater than 0",
		},
		{
			name:        "Negative price",
			body:        `{"name":"a","description":"b","price":-1.5,"image_url":"c","type":"d"}`,
			expectField: "price",
			expectWords: "greater than 0",
		},
		{
			name:        "Missing name",
			body:        `{"description":"b","price":1,"image_url":"c","type":"d"}`,
			expectField: "name",
			expectWords: "required",
		},
		{
			name:        "Missing price",
			body:        `{"name":"a","description":"b","image_url":"c","type":"d"}`,
			expectField: "price",
			expectWords: "required",
		},
		{
			name:        "Price of wrong type",
			body:        `{"name":"a","description":"b","price":"cheap","image_url":"c","type":"d"}`,
			expectField: "price",
			expectWords: "expected number",
		},
		{
			name:        "Sizes of wrong type",
			body:        `{"name":"a","description":"b","price":1,"image_url":"c","type":"d","sizes":"7"}`,
			expectField: "sizes",
			expectWords: "expected array",
		},
		{
			name:        "Null sizes",
			body:        `{"name":"a","description":"b","price":1,"image_url":"c","type":"d","sizes":null}`,
			expectField: "sizes",
			expectWords: "expected array, got null",
		},
		{
			name:        "Null size label",
			body:        `{"name":"a","description":"b","price":1,"image_url":"c","type":"d","sizes":["7",null]}`,
			expectField: "sizes[1]",
			expectWords: "expected string, got null",
		},
		{
			name:        "Empty size label",
			body:        `{"name":"a","description":"b","price":1,"image_url":"c","type":"d","sizes":[""]}`,
			expectField: "sizes[0]",
			expectWords: "required",
		},
		{
			name:        "Null in_stock",
			body:        `{"name":"a","description":"b","price":1,"image_url":"c","type":"d","in_stock":null}`,
			expectField: "in_stock",
			expectWords: "expected boolean, got null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeAndValidate(t, tt.body, &Product{})

			if tt.expectField == "" {
				require.NoError(t, err)
				return
			}

			verrs := fieldErrors(t, err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.expectField, verrs[0].Field)
			assert.Contains(t, verrs[0].Reason, tt.expectWords)
		})
	}
}

func TestProduct_Defaults(t *testing.T) {
	var p Product
	err := decodeAndValidate(t, `{"name":"a","description":"b","price":10,"image_url":"c","type":"Casual"}`, &p)
	require.NoError(t, err)

	doc := p.Document()

	assert.Equal(t, []string{}, doc["sizes"])
	assert.Equal(t, true, doc["in_stock"])
	assert.Equal(t, 10.0, doc["price"])
	assert.Equal(t, "Casual", doc["type"])
	assert.Equal(t, "product", p.Collection())
}

func TestProduct_ExplicitValuesKept(t *testing.T) {
	var p Product
	require.NoError(t, decodeAndValidate(t, validProduct, &p))

	doc := p.Document()

	assert.Equal(t, []string{"6", "7"}, doc["sizes"])
	assert.Equal(t, false, doc["in_stock"])
	assert.Equal(t, "https://example.com/k.jpg", doc["image_url"])
}

func TestReview_RatingBounds(t *testing.T) {
	tests := []struct {
		rating      string
		expectValid bool
	}{
		{"0", false},
		{"1", true},
		{"3", true},
		{"5", true},
		{"6", false},
		{"-2", false},
	}

	for _, tt := range tests {
		t.Run("rating "+tt.rating, func(t *testing.T) {
			body := `{"product_id":"p1","name":"Sana","rating":` + tt.rating + `,"comment":"Lovely"}`
			err := decodeAndValidate(t, body, &Review{})

			if tt.expectValid {
				assert.NoError(t, err)
				return
			}
			verrs := fieldErrors(t, err)
			assert.Equal(t, "rating", verrs[0].Field)
		})
	}
}

func TestReview_FractionalRatingRejected(t *testing.T) {
	err := decodeAndValidate(t, `{"product_id":"p1","name":"Sana","rating":4.5,"comment":"ok"}`, &Review{})

	verrs := fieldErrors(t, err)
	assert.Equal(t, "rating", verrs[0].Field)
	assert.Contains(t, verrs[0].Reason, "expected integer")
}

func TestReview_Document(t *testing.T) {
	var r Review
	require.NoError(t, decodeAndValidate(t, `{"product_id":"p1","name":"Sana","rating":4,"comment":"ok"}`, &r))

	assert.Equal(t, "review", r.Collection())
	assert.Equal(t, map[string]any{
		"product_id": "p1",
		"name":       "Sana",
		"rating":     4,
		"comment":    "ok",
	}, map[string]any(r.Document()))
}

const validCustomer = `{"name":"Ayesha","email":"a@example.com","phone":"123","address":"Lahore"}`

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectFields []string
	}{
		{
			name: "Valid order",
			body: `{"items":[{"product_id":"p1","name":"Khussa","size":"7","qty":1,"price":59.99}],
				"customer":` + validCustomer + `,"total":0}`,
		},
		{
			name:         "Empty items",
			body:         `{"items":[],"customer":` + validCustomer + `,"total":10}`,
			expectFields: []string{"items"},
		},
		{
			name:         "Missing items",
			body:         `{"customer":` + validCustomer + `,"total":10}`,
			expectFields: []string{"items"},
		},
		{
			name: "Zero quantity",
			body: `{"items":[{"product_id":"p1","name":"Khussa","size":"7","qty":0,"price":59.99}],
				"customer":` + validCustomer + `,"total":10}`,
			expectFields: []string{"items[0].qty"},
		},
		{
			name: "Negative total",
			body: `{"items":[{"product_id":"p1","name":"Khussa","size":"7","qty":1,"price":59.99}],
				"customer":` + validCustomer + `,"total":-0.01}`,
			expectFields: []string{"total"},
		},
		{
			name: "Missing customer",
			body: `{"items":[{"product_id":"p1","name":"Khussa","size":"7","qty":1,"price":59.99}],
				"total":10}`,
			expectFields: []string{"customer"},
		},
		{
			name: "Customer without email",
			body: `{"items":[{"product_id":"p1","name":"Khussa","size":"7","qty":1,"price":59.99}],
				"customer":{"name":"A","phone":"1","address":"x"},"total":10}`,
			expectFields: []string{"customer.email"},
		},
		{
			name: "Quantity of wrong type",
			body: `{"items":[{"product_id":"p1","name":"Khussa","size":"7","qty":1,"price":59.99},
				{"product_id":"p2","name":"Chappal","size":"8","qty":"two","price":20}],
				"customer":` + validCustomer + `,"total":10}`,
			expectFields: []string{"items[1].qty"},
		},
		{
			name:         "Item that is not an object",
			body:         `{"items":[7],"customer":` + validCustomer + `,"total":10}`,
			expectFields: []string{"items[0]"},
		},
		{
			name:         "Items of wrong type",
			body:         `{"items":"many","customer":` + validCustomer + `,"total":10}`,
			expectFields: []string{"items"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeAndValidate(t, tt.body, &Order{})

			if len(tt.expectFields) == 0 {
				require.NoError(t, err)
				return
			}

			verrs := fieldErrors(t, err)
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fe.Field
			}
			assert.ElementsMatch(t, tt.expectFields, fields)
		})
	}
}

func TestOrder_Document(t *testing.T) {
	var o Order
	body := `{"items":[{"product_id":"p1","name":"Khussa","size":"7","qty":2,"price":49.99}],
		"customer":` + validCustomer + `,"total":99.98}`
	require.NoError(t, decodeAndValidate(t, body, &o))

	doc := o.Document()

	assert.Equal(t, "order", o.Collection())
	assert.Equal(t, 99.98, doc["total"])
	assert.Equal(t, []any{map[string]any{
		"product_id": "p1",
		"name":       "Khussa",
		"size":       "7",
		"qty":        2,
		"price":      49.99,
	}}, doc["items"])
	assert.Equal(t, "Ayesha", doc["customer"].(map[string]any)["name"])
}

func TestDecode_InvalidJSON(t *testing.T) {
	trailing := `{"name":"a","description":"b","price":1,"image_url":"c","type":"d"}`
	for _, body := range []string{"", "{", "not json", trailing + " this is not json", trailing + ` {}`} {
		err := Decode(strings.NewReader(body), &Product{})
		assert.ErrorIs(t, err, ErrInvalidJSON, "body %q", body)
	}
}

func TestDecode_TrailingWhitespaceAccepted(t *testing.T) {
	var p Product
	err := Decode(strings.NewReader(`{"name":"a","description":"b","price":1,"image_url":"c","type":"d"}`+"\n\t "), &p)

	require.NoError(t, err)
	assert.Equal(t, "a", *p.Name)
}

func TestValidationErrors_Error(t *testing.T) {
	err := ValidationErrors{{Field: "price", Reason: "must be greater than 0"}}
	assert.Equal(t, "validation failed: price: must be greater than 0", err.Error())
}
