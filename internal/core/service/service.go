package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/qkart/internal/core/cart"
	"github.com/niksmo/qkart/internal/core/cartview"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
	"github.com/niksmo/qkart/pkg/debounce"
)

var _ port.QuantityMutator = (*Storefront)(nil)

const DefaultSearchDebounce = 500 * time.Millisecond

var (
	// ErrUnauthenticated is returned before any request when an operation
	// needs a logged in user.
	ErrUnauthenticated = errors.New("login required")
	ErrAlreadyInCart   = errors.New("item already in cart")
	// ErrSuperseded is returned by a search whose query was replaced by a
	// newer one before the results arrived.
	ErrSuperseded = errors.New("search superseded")
)

type Opt func(*Storefront) error

func PublisherOpt(p port.ActivityPublisher) Opt {
	return func(s *Storefront) error {
		if p == nil {
			return errors.New("activity publisher is nil")
		}
		s.publisher = p
		return nil
	}
}

func SearchDebounceOpt(d time.Duration) Opt {
	return func(s *Storefront) error {
		if d < 0 {
			return errors.New("negative search debounce")
		}
		s.debouncer = debounce.New(d)
		return nil
	}
}

// A Storefront is the products page: the displayed catalog, the search
// bar, the cart of the logged in user and the login and register forms.
type Storefront struct {
	backend   port.Backend
	sessions  port.SessionStore
	notifier  port.Notifier
	router    port.Router
	publisher port.ActivityPublisher
	debouncer *debounce.Debouncer
	view      *cartview.View

	mu        sync.Mutex
	session   domain.Session
	catalog   []domain.Product
	products  []domain.Product
	records   []domain.CartRecord
	searchGen uint64
}

func New(
	backend port.Backend,
	sessions port.SessionStore,
	notifier port.Notifier,
	router port.Router,
	opts ...Opt,
) (*Storefront, error) {
	const op = "service.New"

	s := &Storefront{
		backend:   backend,
		sessions:  sessions,
		notifier:  notifier,
		router:    router,
		publisher: nopPublisher{},
		debouncer: debounce.New(DefaultSearchDebounce),
		catalog:   []domain.Product{},
		products:  []domain.Product{},
		records:   []domain.CartRecord{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, opErr(op, err)
		}
	}
	view, err := cartview.New(cartview.Editable, s, router)
	if err != nil {
		return nil, opErr(op, err)
	}
	s.view = view
	return s, nil
}

// Close cancels a pending debounced search.
func (s *Storefront) Close() {
	s.debouncer.Cancel()
}

func (s *Storefront) Cart() *cartview.View {
	return s.view
}

func (s *Storefront) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Products returns the displayed products: the catalog or the latest
// search results.
func (s *Storefront) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

// rejoin rebuilds the cart items from the records and the catalog.
// Callers hold s.mu.
func (s *Storefront) rejoin() {
	s.view.SetItems(cart.Join(s.records, s.catalog))
}

// fail notifies the user about err and returns it wrapped with op.
func (s *Storefront) fail(op string, err error) error {
	if n, ok := noticeFor(err); ok {
		s.notifier.Notify(n)
	}
	slog.Debug("operation failed", "op", op, "err", err)
	return opErr(op, err)
}

func (s *Storefront) notify(level domain.NoticeLevel, msg string) {
	s.notifier.Notify(domain.Notice{Level: level, Message: msg})
}

func (s *Storefront) publish(ctx context.Context, a domain.Activity) {
	const op = "Storefront.publish"
	if err := s.publisher.PublishActivity(ctx, a); err != nil {
		slog.Warn("failed to publish activity",
			"op", op, "kind", a.Kind, "err", err)
	}
}

type nopPublisher struct{}

func (nopPublisher) PublishActivity(context.Context, domain.Activity) error {
	return nil
}
