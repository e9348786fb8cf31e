package service

import (
	"context"

	"github.com/niksmo/qkart/internal/core/domain"
)

// LoadCatalog fetches every product and displays it. On failure the
// previous catalog is kept.
func (s *Storefront) LoadCatalog(ctx context.Context) ([]domain.Product, error) {
	const op = "Storefront.LoadCatalog"

	ps, err := s.backend.FetchProducts(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.mu.Lock()
	s.searchGen++
	s.catalog = ps
	s.products = ps
	s.rejoin()
	s.mu.Unlock()

	return ps, nil
}

// Search displays the products matching text. An empty text reloads the
// whole catalog. Results that arrive after a newer search has started are
// dropped with [ErrSuperseded].
func (s *Storefront) Search(
	ctx context.Context, text string,
) ([]domain.Product, error) {
	const op = "Storefront.Search"

	s.mu.Lock()
	s.searchGen++
	gen := s.searchGen
	username := s.session.Username
	s.mu.Unlock()

	var (
		ps  []domain.Product
		err error
	)
	if text == "" {
		ps, err = s.backend.FetchProducts(ctx)
	} else {
		ps, err = s.backend.SearchProducts(ctx, text)
	}

	s.mu.Lock()
	if gen != s.searchGen {
		s.mu.Unlock()
		return nil, opErr(op, ErrSuperseded)
	}
	if err == nil {
		if text == "" {
			s.catalog = ps
			s.rejoin()
		}
		s.products = ps
	}
	s.mu.Unlock()

	if err != nil {
		return nil, s.fail(op, err)
	}

	if len(ps) == 0 && text != "" {
		s.notify(domain.NoticeWarning, MsgNoProducts)
	}

	a := domain.NewActivity(domain.ActivitySearch, username)
	a.Query = text
	s.publish(ctx, a)

	return ps, nil
}

// QueueSearch runs Search for text once the search bar has been quiet for
// the debounce delay. A call cancels the search queued by the previous
// one. done, if not nil, receives the outcome on the timer goroutine.
func (s *Storefront) QueueSearch(
	ctx context.Context, text string, done func([]domain.Product, error),
) {
	s.debouncer.Trigger(func() {
		ps, err := s.Search(ctx, text)
		if done != nil {
			done(ps, err)
		}
	})
}
