package cart

import (
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/shopspring/decimal"
)

var shippingCharge = decimal.Zero

// Shipping is the charge added to every order summary.
func Shipping() decimal.Decimal {
	return shippingCharge
}

// TotalValue sums cost * quantity over items. A nil slice totals to zero.
func TotalValue(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// TotalCount sums the quantities of items.
func TotalCount(items []domain.CartItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func Summarize(
	items []domain.CartItem, shipping decimal.Decimal,
) domain.OrderSummary {
	subtotal := TotalValue(items)
	return domain.OrderSummary{
		Items:    TotalCount(items),
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
