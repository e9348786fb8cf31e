package domain

import "github.com/shopspring/decimal"

type (
	Product struct {
		ID       string
		Name     string
		Category string
		Cost     decimal.Decimal
		Rating   int
		Image    string
	}

	// A CartRecord is one line of the user's cart as the backend stores it.
	// ProductID is not guaranteed to resolve against the catalog.
	CartRecord struct {
		ProductID string
		Quantity  int
	}

	// A CartItem is a product joined with the quantity of its cart record.
	CartItem struct {
		Product
		Quantity int
	}
)

// LineTotal returns Cost * Quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Cost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type OrderSummary struct {
	Items    int
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}
