// Package cartview holds the cart display state: the joined cart items, the
// per-item quantity controls, the read-only order summary and the checkout
// hand-off.
package cartview

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/niksmo/qkart/internal/core/cart"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
	"github.com/shopspring/decimal"
)

// CheckoutFrom is the provenance tag of the checkout navigation.
const CheckoutFrom = "cart"

var (
	ErrReadOnly            = errors.New("cart is read-only")
	ErrItemNotFound        = errors.New("item is not in cart")
	ErrCheckoutUnavailable = errors.New("checkout is unavailable")
	ErrNoMutator           = errors.New("editable view requires a quantity mutator")
	ErrNoRouter            = errors.New("editable view requires a router")
)

type State int

const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

type Mode int

const (
	Editable Mode = iota
	ReadOnly
)

// A Line is one rendered cart row.
type Line struct {
	ProductID string
	Name      string
	Image     string
	Cost      decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
	Controls  bool
}

type View struct {
	mu      sync.RWMutex
	items   []domain.CartItem
	mode    Mode
	mutator port.QuantityMutator
	router  port.Router
}

// New returns an empty view. An editable view dispatches quantity changes
// to mutator and the checkout hand-off to router, so both are required.
func New(
	mode Mode, mutator port.QuantityMutator, router port.Router,
) (*View, error) {
	const op = "cartview.New"

	if mode == Editable {
		if mutator == nil {
			return nil, fmt.Errorf("%s: %w", op, ErrNoMutator)
		}
		if router == nil {
			return nil, fmt.Errorf("%s: %w", op, ErrNoRouter)
		}
	}
	return &View{
		items:   []domain.CartItem{},
		mode:    mode,
		mutator: mutator,
		router:  router,
	}, nil
}

// NewSummary returns a read-only view of items for the order details.
func NewSummary(items []domain.CartItem) *View {
	v := &View{mode: ReadOnly}
	v.SetItems(items)
	return v
}

// SetItems replaces the displayed items with a copy of items.
func (v *View) SetItems(items []domain.CartItem) {
	cp := make([]domain.CartItem, len(items))
	copy(cp, items)

	v.mu.Lock()
	v.items = cp
	v.mu.Unlock()
}

func (v *View) Items() []domain.CartItem {
	v.mu.RLock()
	defer v.mu.RUnlock()
	cp := make([]domain.CartItem, len(v.items))
	copy(cp, v.items)
	return cp
}

func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if len(v.items) == 0 {
		return Empty
	}
	return Populated
}

func (v *View) Mode() Mode {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mode
}

// SetMode switches the view mode. A view without a mutator and a router
// stays read-only.
func (v *View) SetMode(m Mode) {
	v.mu.Lock()
	if v.mutator != nil && v.router != nil {
		v.mode = m
	}
	v.mu.Unlock()
}

func (v *View) Lines() []Line {
	v.mu.RLock()
	defer v.mu.RUnlock()

	lines := make([]Line, len(v.items))
	for i, it := range v.items {
		lines[i] = Line{
			ProductID: it.ID,
			Name:      it.Name,
			Image:     it.Image,
			Cost:      it.Cost,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
			Controls:  v.mode == Editable,
		}
	}
	return lines
}

// Total is the order total shown under the cart items.
func (v *View) Total() decimal.Decimal {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return cart.TotalValue(v.items)
}

// Summary returns the order details. It is only meaningful in read-only
// mode, which is the only mode that renders it.
func (v *View) Summary() domain.OrderSummary {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return cart.Summarize(v.items, cart.Shipping())
}

// Increment requests one more unit of productID.
func (v *View) Increment(ctx context.Context, productID string) error {
	const op = "View.Increment"
	if err := v.step(ctx, productID, 1); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Decrement requests one unit less of productID. The result is not clamped:
// a quantity below 1 is for the mutator to interpret as removal.
func (v *View) Decrement(ctx context.Context, productID string) error {
	const op = "View.Decrement"
	if err := v.step(ctx, productID, -1); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (v *View) step(ctx context.Context, productID string, delta int) error {
	v.mu.RLock()
	mode := v.mode
	it, ok := cart.Find(v.items, productID)
	v.mu.RUnlock()

	if mode == ReadOnly {
		return ErrReadOnly
	}
	if !ok {
		return ErrItemNotFound
	}
	return v.mutator.SetQuantity(ctx, productID, it.Quantity+delta)
}

// Checkout hands off to the checkout route. Only an editable, non-empty
// cart can check out.
func (v *View) Checkout() error {
	const op = "View.Checkout"

	if v.Mode() == ReadOnly || v.State() == Empty {
		return fmt.Errorf("%s: %w", op, ErrCheckoutUnavailable)
	}
	v.router.Navigate(domain.Navigation{
		To:   domain.RouteCheckout,
		From: CheckoutFrom,
	})
	return nil
}
