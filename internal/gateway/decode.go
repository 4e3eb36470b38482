package gateway

import (
	"encoding/json"

	"kitstore/internal/domain"
)

// envelopeKeys is the priority order for unwrapping a product list that
// arrives inside an object instead of as a bare array.
var envelopeKeys = []string{"results", "items", "products", "data"}

// DecodeProducts parses a product-list payload. Accepted shapes: a bare
// array, or an object wrapping the array under one of envelopeKeys. Anything
// else decodes to an empty list rather than an error.
func DecodeProducts(data []byte) []domain.Product {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err == nil {
		if products == nil {
			products = []domain.Product{}
		}
		return products
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return []domain.Product{}
	}
	for _, key := range envelopeKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var wrapped []domain.Product
		if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped != nil {
			return wrapped
		}
	}
	return []domain.Product{}
}
