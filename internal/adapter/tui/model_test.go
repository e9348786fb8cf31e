package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/niksmo/qkart/internal/core/cartview"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/form"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStorefront struct {
	mock.Mock
	products []domain.Product
	session  domain.Session
	view     *cartview.View
}

func (s *MockStorefront) Products() []domain.Product { return s.products }
func (s *MockStorefront) Session() domain.Session    { return s.session }
func (s *MockStorefront) Cart() *cartview.View       { return s.view }

func (s *MockStorefront) Refresh(ctx context.Context) ([]domain.CartItem, error) {
	args := s.Called(ctx)
	return nil, args.Error(0)
}

func (s *MockStorefront) QueueSearch(
	ctx context.Context, text string, done func([]domain.Product, error),
) {
	s.Called(ctx, text)
	done(s.products, nil)
}

func (s *MockStorefront) AddToCart(
	ctx context.Context, productID string,
) ([]domain.CartItem, error) {
	args := s.Called(ctx, productID)
	return nil, args.Error(0)
}

func (s *MockStorefront) Increment(ctx context.Context, productID string) error {
	return s.Called(ctx, productID).Error(0)
}

func (s *MockStorefront) Decrement(ctx context.Context, productID string) error {
	return s.Called(ctx, productID).Error(0)
}

func (s *MockStorefront) Checkout(ctx context.Context) error {
	return s.Called(ctx).Error(0)
}

func (s *MockStorefront) Login(
	ctx context.Context, f form.Login,
) (domain.Session, error) {
	args := s.Called(ctx, f)
	return domain.Session{}, args.Error(0)
}

func (s *MockStorefront) Register(ctx context.Context, f form.Register) error {
	return s.Called(ctx, f).Error(0)
}

func (s *MockStorefront) Logout(ctx context.Context) error {
	return s.Called(ctx).Error(0)
}

func (s *MockStorefront) SetQuantity(
	ctx context.Context, productID string, qty int,
) error {
	return s.Called(ctx, productID, qty).Error(0)
}

func (s *MockStorefront) Navigate(domain.Navigation) {}

var (
	bag = domain.Product{
		ID: "A", Name: "Leather Bag", Category: "Fashion",
		Cost: decimal.NewFromInt(100), Rating: 4,
	}
	ball = domain.Product{
		ID: "B", Name: "Basketball", Category: "Sports",
		Cost: decimal.NewFromInt(50), Rating: 3,
	}
)

type sink struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *sink) send(msg tea.Msg) {
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
}

func newModel(t *testing.T, loggedIn bool) (Model, *MockStorefront, *sink) {
	t.Helper()
	sf := &MockStorefront{products: []domain.Product{bag, ball}}
	sf.view = editableView(t, sf)
	if loggedIn {
		sf.session = domain.Session{
			Token: "tkn", Username: "crio-user", Balance: decimal.NewFromInt(5000),
		}
	}
	s := new(sink)
	m := New(t.Context(), sf, s.send)

	next, _ := m.Update(refreshedMsg{})
	return next.(Model), sf, s
}

func editableView(t *testing.T, sf *MockStorefront) *cartview.View {
	t.Helper()
	v, err := cartview.New(cartview.Editable, sf, sf)
	require.NoError(t, err)
	return v
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

func TestInitRefreshes(t *testing.T) {
	sf := &MockStorefront{}
	sf.view = editableView(t, sf)
	sf.On("Refresh", mock.Anything).Return(nil)

	m := New(t.Context(), sf, func(tea.Msg) {})
	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, refreshedMsg{}, cmd())
	sf.AssertExpectations(t)
}

func TestProductsPage(t *testing.T) {
	t.Run("ListsProducts", func(t *testing.T) {
		m, _, _ := newModel(t, false)
		out := m.View()
		assert.Contains(t, out, "Leather Bag")
		assert.Contains(t, out, "Basketball")
		assert.Contains(t, out, "login (l)")
		assert.NotContains(t, out, emptyCart)
	})

	t.Run("AddSelected", func(t *testing.T) {
		m, sf, _ := newModel(t, true)
		sf.On("AddToCart", mock.Anything, "B").Return(nil)

		_, cmd := press(t, m, "down", "enter")
		require.NotNil(t, cmd)
		assert.Equal(t, actionMsg{}, cmd())
		sf.AssertExpectations(t)
	})

	t.Run("Search", func(t *testing.T) {
		m, sf, s := newModel(t, false)
		sf.On("QueueSearch", mock.Anything, "b").Once()
		sf.On("QueueSearch", mock.Anything, "ba").Once()

		m, _ = press(t, m, "/", "b", "a")
		assert.Equal(t, focusSearch, m.focus)
		sf.AssertExpectations(t)
		assert.Len(t, s.msgs, 2)
		assert.IsType(t, searchedMsg{}, s.msgs[0])

		m, _ = press(t, m, "esc")
		assert.Equal(t, focusProducts, m.focus)
	})

	t.Run("ProductsPageClearsSearch", func(t *testing.T) {
		m, sf, _ := newModel(t, false)
		sf.On("QueueSearch", mock.Anything, mock.Anything)
		sf.On("Refresh", mock.Anything).Return(nil)

		m, _ = press(t, m, "/", "b", "a", "esc")
		require.Equal(t, "ba", m.search.Value())

		next, cmd := m.Update(navigateMsg{To: domain.RouteProducts, From: "login"})
		m = next.(Model)
		assert.Empty(t, m.search.Value())
		assert.Equal(t, focusProducts, m.focus)
		require.NotNil(t, cmd)
		assert.Equal(t, refreshedMsg{}, cmd())
	})

	t.Run("EmptyCart", func(t *testing.T) {
		m, _, _ := newModel(t, true)
		assert.Contains(t, m.View(), emptyCart)
		assert.Contains(t, m.View(), "crio-user")
	})
}

func TestCartPanel(t *testing.T) {
	m, sf, _ := newModel(t, true)
	sf.view.SetItems([]domain.CartItem{
		{Product: bag, Quantity: 2},
		{Product: ball, Quantity: 1},
	})
	sf.On("Increment", mock.Anything, "B").Return(nil)
	sf.On("Decrement", mock.Anything, "B").Return(nil)

	m, _ = press(t, m, "tab")
	assert.Equal(t, focusCart, m.focus)
	assert.Contains(t, m.View(), "Order total  $250.00")

	m, cmd := press(t, m, "down", "+")
	require.NotNil(t, cmd)
	assert.Equal(t, actionMsg{}, cmd())

	_, cmd = press(t, m, "-")
	require.NotNil(t, cmd)
	assert.Equal(t, actionMsg{}, cmd())
	sf.AssertExpectations(t)
	sf.AssertNotCalled(t, "SetQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		m, sf, _ := newModel(t, true)
		sf.On("Checkout", mock.Anything).
			Return(cartview.ErrCheckoutUnavailable)

		_, cmd := press(t, m, "tab", "c")
		require.NotNil(t, cmd)
		msg := cmd()
		require.IsType(t, noticeMsg{}, msg)
		assert.Equal(t, domain.NoticeInfo, msg.(noticeMsg).Level)
	})

	t.Run("Summary", func(t *testing.T) {
		m, sf, _ := newModel(t, true)
		sf.view.SetItems([]domain.CartItem{
			{Product: bag, Quantity: 2},
			{Product: ball, Quantity: 1},
		})

		next, _ := m.Update(navigateMsg{
			To: domain.RouteCheckout, From: cartview.CheckoutFrom,
		})
		m = next.(Model)
		assert.Equal(t, domain.RouteCheckout, m.Page())

		out := m.View()
		assert.Contains(t, out, "Order details")
		assert.Contains(t, out, "Qty: 2")
		assert.NotContains(t, out, "[+]")
		assert.Contains(t, out, "$250.00")
		assert.Contains(t, out, "Shipping Charges")

		sf.On("Refresh", mock.Anything).Return(nil)
		m, cmd := press(t, m, "esc")
		assert.Equal(t, domain.RouteProducts, m.Page())
		require.NotNil(t, cmd)
	})
}

func TestLoginPage(t *testing.T) {
	m, sf, _ := newModel(t, false)
	sf.On("Login", mock.Anything, form.Login{
		Username: "crio-user", Password: "learnwithcrio",
	}).Return(nil)

	m, _ = press(t, m, "l")
	assert.Equal(t, domain.RouteLogin, m.Page())

	m, _ = press(t, m, "crio-user", "tab", "learnwithcrio")
	assert.NotContains(t, m.View(), "learnwithcrio")

	_, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, actionMsg{}, cmd())
	sf.AssertExpectations(t)
}

func TestRegisterPage(t *testing.T) {
	m, sf, _ := newModel(t, false)
	sf.On("Register", mock.Anything, form.Register{
		Username: "crio-user", Password: "secret1", ConfirmPassword: "secret1",
	}).Return(nil)

	m, _ = press(t, m, "r", "crio-user", "tab", "secret1", "tab", "secret1")
	assert.Equal(t, domain.RouteRegister, m.Page())

	_, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	cmd()
	sf.AssertExpectations(t)
}

func TestNotice(t *testing.T) {
	m, _, _ := newModel(t, false)

	next, cmd := m.Update(noticeMsg{
		Level: domain.NoticeWarning, Message: "Login to add an item to the Cart",
	})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Login to add an item to the Cart")

	next, _ = m.Update(clearNotice{seq: m.noticeSeq - 1})
	assert.Contains(t, next.View(), "Login to add an item to the Cart")

	next, _ = m.Update(clearNotice{seq: m.noticeSeq})
	assert.NotContains(t, next.View(), "Login to add an item to the Cart")
}

func TestBridge(t *testing.T) {
	b := NewBridge()
	b.Notify(domain.Notice{Level: domain.NoticeSuccess, Message: "Logged in successfully"})
	b.Navigate(domain.Navigation{To: domain.RouteProducts, From: "login"})

	s := new(sink)
	b.Bind(s.send)
	b.Notify(domain.Notice{Level: domain.NoticeError, Message: "boom"})

	require.Len(t, s.msgs, 3)
	assert.Equal(t, noticeMsg{Level: domain.NoticeSuccess, Message: "Logged in successfully"}, s.msgs[0])
	assert.Equal(t, navigateMsg{To: domain.RouteProducts, From: "login"}, s.msgs[1])
	assert.Equal(t, noticeMsg{Level: domain.NoticeError, Message: "boom"}, s.msgs[2])
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★☆☆", stars(3))
	assert.Equal(t, "☆☆☆☆☆", stars(-1))
	assert.Equal(t, "★★★★★", stars(9))
}
