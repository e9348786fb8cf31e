package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/niksmo/qkart/internal/core/cartview"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/shopspring/decimal"
)

const emptyCart = "Cart is empty. Add more items to the cart to checkout."

func (m Model) View() string {
	var body, help string
	switch m.page {
	case domain.RouteLogin:
		body = m.formView("Login", m.login)
		help = "tab next field • enter login • esc back"
	case domain.RouteRegister:
		body = m.formView("Register", m.register)
		help = "tab next field • enter register now • esc back"
	case domain.RouteCheckout:
		body = m.checkoutView()
		help = "esc back to products"
	default:
		body = m.productsView()
		help = m.productsHelp()
	}

	parts := []string{m.headerView(), body}
	if m.notice != nil {
		parts = append(parts, m.styles.notice[m.notice.Level].Render(m.notice.Message))
	}
	parts = append(parts, m.styles.help.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) headerView() string {
	title := m.styles.title.Render("QKart")

	sess := m.sf.Session()
	var user string
	if sess.IsZero() {
		user = m.styles.muted.Render("login (l) • register (r)")
	} else {
		user = fmt.Sprintf("%s • balance $%s • logout (o)",
			sess.Username, sess.Balance.StringFixed(2))
	}

	left := title
	if m.page == domain.RouteProducts {
		left = lipgloss.JoinHorizontal(lipgloss.Center,
			title, m.styles.header.Render(m.search.View()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		left, m.styles.header.Render(user))
}

func (m Model) productsView() string {
	productsPanel := m.styles.panel
	cartPanel := m.styles.panel
	switch m.focus {
	case focusProducts:
		productsPanel = m.styles.focused
	case focusCart:
		cartPanel = m.styles.focused
	}

	var products string
	if len(m.shown) == 0 {
		products = m.styles.muted.Render("No products found")
	} else {
		products = m.products.View()
	}

	left := productsPanel.Render(products)
	if m.sf.Session().IsZero() {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		left, cartPanel.Render(m.cartView(m.sf.Cart(), m.focus == focusCart)))
}

func (m Model) productsHelp() string {
	switch m.focus {
	case focusSearch:
		return "type to search • enter/esc done"
	case focusCart:
		return "↑/↓ select • + add one • - remove one • c checkout • tab products • q quit"
	}
	return "↑/↓ select • enter add to cart • / search • tab cart • q quit"
}

func (m Model) cartView(v *cartview.View, focused bool) string {
	if v.State() == cartview.Empty {
		return m.styles.muted.Render(emptyCart)
	}

	var b strings.Builder
	for i, l := range v.Lines() {
		line := fmt.Sprintf("%-24s $%s", truncate(l.Name, 24), l.Cost.StringFixed(2))
		if l.Controls {
			line += fmt.Sprintf("  [-] %d [+]", l.Quantity)
		} else {
			line += fmt.Sprintf("  Qty: %d", l.Quantity)
		}
		if focused && i == m.cursor {
			line = m.styles.selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.styles.total.Render(
		fmt.Sprintf("Order total  $%s", v.Total().StringFixed(2))))
	return b.String()
}

func (m Model) checkoutView() string {
	if m.summary == nil || m.summary.State() == cartview.Empty {
		return m.styles.panel.Render(m.styles.muted.Render(emptyCart))
	}

	s := m.summary.Summary()
	rows := []struct {
		label string
		value string
	}{
		{"Products", fmt.Sprint(s.Items)},
		{"Subtotal", money(s.Subtotal)},
		{"Shipping Charges", money(s.Shipping)},
		{"Total", money(s.Total)},
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Order details"))
	b.WriteString("\n\n")
	for i, r := range rows {
		line := fmt.Sprintf("%-20s %10s", r.label, r.value)
		if i == len(rows)-1 {
			line = m.styles.total.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.panel.Render(m.cartView(m.summary, false)),
		m.styles.panel.Render(b.String()),
	)
}

func (m Model) formView(title string, fs fields) string {
	return m.styles.panel.Render(
		m.styles.title.Render(title) + "\n\n" + fs.view(m.styles),
	)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
