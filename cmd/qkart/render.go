package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/niksmo/qkart/internal/core/cartview"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/shopspring/decimal"
)

const emptyCart = "Cart is empty. Add more items to the cart to checkout."

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func printProducts(w io.Writer, ps []domain.Product) {
	if len(ps) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}
	t := newTable("ID", "Name", "Category", "Cost", "Rating")
	for _, p := range ps {
		t.Row(p.ID, p.Name, p.Category, money(p.Cost), strconv.Itoa(p.Rating))
	}
	fmt.Fprintln(w, t.Render())
}

func printCart(w io.Writer, v *cartview.View) {
	if v.State() == cartview.Empty {
		fmt.Fprintln(w, emptyCart)
		return
	}
	t := newTable("ID", "Name", "Cost", "Qty", "Total")
	for _, l := range v.Lines() {
		t.Row(l.ProductID, l.Name, money(l.Cost),
			strconv.Itoa(l.Quantity), money(l.LineTotal))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Order total %s\n", money(v.Total()))
}

func printSummary(w io.Writer, s domain.OrderSummary) {
	t := newTable("Order details", "").
		Row("Products", strconv.Itoa(s.Items)).
		Row("Subtotal", money(s.Subtotal)).
		Row("Shipping Charges", money(s.Shipping)).
		Row("Total", money(s.Total))
	fmt.Fprintln(w, t.Render())
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
