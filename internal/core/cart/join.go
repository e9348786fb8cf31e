// Package cart reconciles backend cart records with the product catalog and
// prices the result.
package cart

import "github.com/niksmo/qkart/internal/core/domain"

// Join returns the catalog products referenced by records, each annotated
// with the quantity of its record.
//
// The output follows catalog order. When a product id appears in several
// records the first one wins. Records that reference a product absent from
// the catalog are dropped. Neither input is modified.
func Join(
	records []domain.CartRecord, catalog []domain.Product,
) []domain.CartItem {
	if len(records) == 0 || len(catalog) == 0 {
		return []domain.CartItem{}
	}

	quantities := make(map[string]int, len(records))
	for _, r := range records {
		if _, ok := quantities[r.ProductID]; ok {
			continue
		}
		quantities[r.ProductID] = r.Quantity
	}

	items := make([]domain.CartItem, 0, len(quantities))
	for _, p := range catalog {
		qty, ok := quantities[p.ID]
		if !ok {
			continue
		}
		items = append(items, domain.CartItem{Product: p, Quantity: qty})
	}
	return items
}

// Find returns the item with the given product id.
func Find(items []domain.CartItem, productID string) (domain.CartItem, bool) {
	for _, it := range items {
		if it.ID == productID {
			return it, true
		}
	}
	return domain.CartItem{}, false
}

func Contains(items []domain.CartItem, productID string) bool {
	_, ok := Find(items, productID)
	return ok
}
