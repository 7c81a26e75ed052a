package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"kuse-store/internal/store"
)

// Order is the write schema of a customer order. Total is taken as given and
// not checked against the items.
type Order struct {
	Items    []OrderItem   `json:"items" validate:"required,min=1,dive"`
	Customer *CustomerInfo `json:"customer" validate:"required"`
	Total    *float64      `json:"total" validate:"required,gte=0"`
}

// OrderItem is a line of an order. Name and Price are snapshots taken by the
// client when the order was placed.
type OrderItem struct {
	ProductID *string  `json:"product_id" validate:"required"`
	Name      *string  `json:"name" validate:"required"`
	Size      *string  `json:"size" validate:"required"`
	Qty       *int     `json:"qty" validate:"required,min=1"`
	Price     *float64 `json:"price" validate:"required"`
}

// CustomerInfo holds the contact details of the ordering customer.
type CustomerInfo struct {
	Name    *string `json:"name" validate:"required"`
	Email   *string `json:"email" validate:"required"`
	Phone   *string `json:"phone" validate:"required"`
	Address *string `json:"address" validate:"required"`
}

// UnmarshalJSON decodes an order item by item so a type mismatch inside an
// item is reported as "items[i].field", the same path Validate uses.
func (o *Order) UnmarshalJSON(data []byte) error {
	type order Order
	var raw struct {
		order
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Order(raw.order)

	if len(raw.Items) == 0 || isNull(raw.Items) {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw.Items, &elems); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ValidationErrors{typeMismatch("items", typeErr)}
		}
		return err
	}

	var verrs ValidationErrors
	o.Items = make([]OrderItem, len(elems))
	for i, elem := range elems {
		err := json.Unmarshal(elem, &o.Items[i])
		if err == nil {
			continue
		}
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return err
		}
		verrs = append(verrs, typeMismatch(fmt.Sprintf("items[%d]", i), typeErr))
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// Collection implements Entity.
func (o *Order) Collection() string { return store.OrderCollection }

// Document implements Entity.
func (o *Order) Document() store.Document {
	items := make([]any, len(o.Items))
	for i, item := range o.Items {
		items[i] = map[string]any{
			"product_id": deref(item.ProductID),
			"name":       deref(item.Name),
			"size":       deref(item.Size),
			"qty":        deref(item.Qty),
			"price":      deref(item.Price),
		}
	}

	var customer map[string]any
	if o.Customer != nil {
		customer = map[string]any{
			"name":    deref(o.Customer.Name),
			"email":   deref(o.Customer.Email),
			"phone":   deref(o.Customer.Phone),
			"address": deref(o.Customer.Address),
		}
	}

	return store.Document{
		"items":    items,
		"customer": customer,
		"total":    deref(o.Total),
	}
}
