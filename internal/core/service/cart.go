package service

import (
	"context"
	"errors"

	"github.com/niksmo/qkart/internal/core/cart"
	"github.com/niksmo/qkart/internal/core/cartview"
	"github.com/niksmo/qkart/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// FetchCart loads the cart of the logged in user.
func (s *Storefront) FetchCart(ctx context.Context) ([]domain.CartItem, error) {
	const op = "Storefront.FetchCart"

	sess := s.Session()
	if sess.IsZero() {
		return nil, opErr(op, ErrUnauthenticated)
	}

	rs, err := s.backend.FetchCart(ctx, sess.Token)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return s.setRecords(rs), nil
}

// Refresh fetches the catalog and, for a logged in user, the cart at the
// same time and joins them once both have arrived. Nothing changes unless
// both calls succeed.
func (s *Storefront) Refresh(ctx context.Context) ([]domain.CartItem, error) {
	const op = "Storefront.Refresh"

	sess := s.Session()

	var (
		ps []domain.Product
		rs []domain.CartRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ps, err = s.backend.FetchProducts(gctx)
		return err
	})
	if !sess.IsZero() {
		g.Go(func() (err error) {
			rs, err = s.backend.FetchCart(gctx, sess.Token)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.fail(op, err)
	}

	s.mu.Lock()
	s.searchGen++
	s.catalog = ps
	s.products = ps
	s.mu.Unlock()

	return s.setRecords(rs), nil
}

// AddToCart puts one unit of productID into the cart. It is rejected
// locally for an anonymous user and for a product already in the cart.
func (s *Storefront) AddToCart(
	ctx context.Context, productID string,
) ([]domain.CartItem, error) {
	const op = "Storefront.AddToCart"

	sess := s.Session()
	if sess.IsZero() {
		return nil, s.fail(op, ErrUnauthenticated)
	}
	if cart.Contains(s.view.Items(), productID) {
		return nil, s.fail(op, ErrAlreadyInCart)
	}

	items, err := s.updateCart(ctx, sess, productID, 1)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return items, nil
}

// SetQuantity sets the quantity of productID. A quantity below 1 removes
// the product from the cart.
func (s *Storefront) SetQuantity(
	ctx context.Context, productID string, qty int,
) error {
	const op = "Storefront.SetQuantity"

	sess := s.Session()
	if sess.IsZero() {
		return s.fail(op, ErrUnauthenticated)
	}

	if _, err := s.updateCart(ctx, sess, productID, max(qty, 0)); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// Increment adds one unit of productID through the cart view.
func (s *Storefront) Increment(ctx context.Context, productID string) error {
	const op = "Storefront.Increment"
	return s.step(ctx, op, productID, s.view.Increment)
}

// Decrement removes one unit of productID through the cart view. The last
// unit removes the product.
func (s *Storefront) Decrement(ctx context.Context, productID string) error {
	const op = "Storefront.Decrement"
	return s.step(ctx, op, productID, s.view.Decrement)
}

func (s *Storefront) step(
	ctx context.Context,
	op string,
	productID string,
	fn func(context.Context, string) error,
) error {
	if s.Session().IsZero() {
		return s.fail(op, ErrUnauthenticated)
	}

	err := fn(ctx, productID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cartview.ErrItemNotFound),
		errors.Is(err, cartview.ErrReadOnly):
		return s.fail(op, err)
	}
	// SetQuantity has already notified.
	return opErr(op, err)
}

// Checkout hands the cart over to the checkout page.
func (s *Storefront) Checkout(ctx context.Context) error {
	const op = "Storefront.Checkout"

	if err := s.view.Checkout(); err != nil {
		return opErr(op, err)
	}

	sess := s.Session()
	a := domain.NewActivity(domain.ActivityCheckout, sess.Username)
	a.Quantity = cart.TotalCount(s.view.Items())
	s.publish(ctx, a)
	return nil
}

func (s *Storefront) updateCart(
	ctx context.Context, sess domain.Session, productID string, qty int,
) ([]domain.CartItem, error) {
	rs, err := s.backend.UpdateCart(ctx, sess.Token, productID, qty)
	if err != nil {
		return nil, err
	}
	items := s.setRecords(rs)

	a := domain.NewActivity(domain.ActivityCartUpdate, sess.Username)
	a.ProductID = productID
	a.Quantity = qty
	s.publish(ctx, a)

	return items, nil
}

func (s *Storefront) setRecords(rs []domain.CartRecord) []domain.CartItem {
	if rs == nil {
		rs = []domain.CartRecord{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = rs
	items := cart.Join(s.records, s.catalog)
	s.view.SetItems(items)
	return items
}
