// Package tui is the terminal storefront: the products page with its search
// bar and cart, the login and register forms and the checkout summary.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/qkart/internal/core/cartview"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/form"
	"github.com/niksmo/qkart/internal/core/service"
)

const noticeTTL = 4 * time.Second

// A Storefront is what the terminal UI drives.
type Storefront interface {
	Products() []domain.Product
	Session() domain.Session
	Cart() *cartview.View
	Refresh(context.Context) ([]domain.CartItem, error)
	QueueSearch(ctx context.Context, text string, done func([]domain.Product, error))
	AddToCart(ctx context.Context, productID string) ([]domain.CartItem, error)
	Increment(ctx context.Context, productID string) error
	Decrement(ctx context.Context, productID string) error
	Checkout(context.Context) error
	Login(context.Context, form.Login) (domain.Session, error)
	Register(context.Context, form.Register) error
	Logout(context.Context) error
}

var _ Storefront = (*service.Storefront)(nil)

type focus int

const (
	focusProducts focus = iota
	focusSearch
	focusCart
)

type (
	refreshedMsg struct{ err error }
	searchedMsg  struct{ err error }
	actionMsg    struct{ err error }
	clearNotice  struct{ seq int }
)

type Model struct {
	ctx    context.Context
	sf     Storefront
	send   func(tea.Msg)
	styles styles

	page     domain.Route
	focus    focus
	search   textinput.Model
	products table.Model
	shown    []domain.Product
	cursor   int
	summary  *cartview.View
	login    fields
	register fields

	notice    *domain.Notice
	noticeSeq int
	width     int
	height    int
}

// New returns the products page. send delivers messages from goroutines
// the program does not own, usually (*Bridge).Send.
func New(ctx context.Context, sf Storefront, send func(tea.Msg)) Model {
	search := textinput.New()
	search.Placeholder = "Search for items/categories"
	search.CharLimit = 64
	search.Width = 40

	products := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 34},
			{Title: "Category", Width: 14},
			{Title: "Cost", Width: 8},
			{Title: "Rating", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return Model{
		ctx:      ctx,
		sf:       sf,
		send:     send,
		styles:   defaultStyles(),
		page:     domain.RouteProducts,
		search:   search,
		products: products,
		login:    newFields("Username", "Password"),
		register: newFields("Username", "Password", "Confirm Password"),
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) Page() domain.Route {
	return m.page
}

func (m Model) refresh() tea.Cmd {
	ctx, sf := m.ctx, m.sf
	return func() tea.Msg {
		_, err := sf.Refresh(ctx)
		return refreshedMsg{err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case noticeMsg:
		n := domain.Notice(msg)
		m.notice = &n
		m.noticeSeq++
		seq := m.noticeSeq
		return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
			return clearNotice{seq}
		})

	case clearNotice:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case navigateMsg:
		return m.navigate(domain.Navigation(msg))

	case refreshedMsg, searchedMsg:
		m.syncProducts()
		return m, nil

	case actionMsg:
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.page {
		case domain.RouteLogin:
			return m.updateLogin(msg)
		case domain.RouteRegister:
			return m.updateRegister(msg)
		case domain.RouteCheckout:
			return m.updateCheckout(msg)
		}
		return m.updateProducts(msg)
	}
	return m, nil
}

func (m Model) navigate(nav domain.Navigation) (tea.Model, tea.Cmd) {
	m.page = nav.To
	switch nav.To {
	case domain.RouteProducts:
		// the refresh shows the full catalog
		m.search.Reset()
		m.search.Blur()
		m.focus = focusProducts
		m.products.Focus()
		return m, m.refresh()
	case domain.RouteLogin:
		m.login.reset()
		return m, m.login.focus()
	case domain.RouteRegister:
		m.register.reset()
		return m, m.register.focus()
	case domain.RouteCheckout:
		m.summary = cartview.NewSummary(m.sf.Cart().Items())
	}
	return m, nil
}

func (m Model) updateProducts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusSearch {
		return m.updateSearch(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.focus = focusSearch
		m.products.Blur()
		return m, m.search.Focus()
	case "tab":
		if m.focus == focusCart {
			m.focus = focusProducts
			m.products.Focus()
		} else {
			m.focus = focusCart
			m.products.Blur()
			m.clampCursor()
		}
		return m, nil
	case "l":
		return m.navigate(domain.Navigation{To: domain.RouteLogin})
	case "r":
		return m.navigate(domain.Navigation{To: domain.RouteRegister})
	case "o":
		return m, m.action(func(ctx context.Context) error {
			return m.sf.Logout(ctx)
		})
	}

	if m.focus == focusCart {
		return m.updateCart(msg)
	}

	switch msg.String() {
	case "enter", "a":
		row := m.products.SelectedRow()
		i := m.products.Cursor()
		if row == nil || i < 0 || i >= len(m.shown) {
			return m, nil
		}
		id := m.shown[i].ID
		return m, m.action(func(ctx context.Context) error {
			_, err := m.sf.AddToCart(ctx, id)
			return err
		})
	}

	var cmd tea.Cmd
	m.products, cmd = m.products.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab":
		m.focus = focusProducts
		m.search.Blur()
		m.products.Focus()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if text := m.search.Value(); text != before {
		send := m.send
		m.sf.QueueSearch(m.ctx, text, func(_ []domain.Product, err error) {
			send(searchedMsg{err})
		})
	}
	return m, cmd
}

func (m Model) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.sf.Cart().Lines()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(lines)-1 {
			m.cursor++
		}
	case "+", "=":
		if m.cursor < len(lines) {
			id := lines[m.cursor].ProductID
			return m, m.action(func(ctx context.Context) error {
				return m.sf.Increment(ctx, id)
			})
		}
	case "-":
		if m.cursor < len(lines) {
			id := lines[m.cursor].ProductID
			return m, m.action(func(ctx context.Context) error {
				return m.sf.Decrement(ctx, id)
			})
		}
	case "c":
		return m, m.action(func(ctx context.Context) error {
			return m.sf.Checkout(ctx)
		})
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(domain.Navigation{To: domain.RouteProducts})
	case "tab", "down":
		return m, m.login.next()
	case "shift+tab", "up":
		return m, m.login.prev()
	case "enter":
		f := form.Login{
			Username: m.login.value(0),
			Password: m.login.value(1),
		}
		return m, m.action(func(ctx context.Context) error {
			_, err := m.sf.Login(ctx, f)
			return err
		})
	}
	return m, m.login.update(msg)
}

func (m Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(domain.Navigation{To: domain.RouteProducts})
	case "tab", "down":
		return m, m.register.next()
	case "shift+tab", "up":
		return m, m.register.prev()
	case "enter":
		f := form.Register{
			Username:        m.register.value(0),
			Password:        m.register.value(1),
			ConfirmPassword: m.register.value(2),
		}
		return m, m.action(func(ctx context.Context) error {
			return m.sf.Register(ctx, f)
		})
	}
	return m, m.register.update(msg)
}

func (m Model) updateCheckout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m.navigate(domain.Navigation{To: domain.RouteProducts})
	}
	return m, nil
}

// action runs fn off the update loop. Failures are already reported as
// notices by the storefront.
func (m Model) action(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := fn(ctx)
		if errors.Is(err, cartview.ErrCheckoutUnavailable) {
			return noticeMsg(domain.Notice{
				Level:   domain.NoticeInfo,
				Message: "Cart is empty. Add more items to the cart to checkout.",
			})
		}
		return actionMsg{err}
	}
}

func (m *Model) syncProducts() {
	m.shown = m.sf.Products()
	rows := make([]table.Row, len(m.shown))
	for i, p := range m.shown {
		rows[i] = table.Row{
			p.Name,
			p.Category,
			"$" + p.Cost.StringFixed(2),
			stars(p.Rating),
		}
	}
	m.products.SetRows(rows)
	if m.products.Cursor() >= len(rows) {
		m.products.SetCursor(max(len(rows)-1, 0))
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.sf.Cart().Lines())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func stars(rating int) string {
	rating = min(max(rating, 0), 5)
	s := make([]rune, 5)
	for i := range s {
		if i < rating {
			s[i] = '★'
		} else {
			s[i] = '☆'
		}
	}
	return string(s)
}
