package port

import (
	"context"

	"github.com/niksmo/qkart/internal/core/domain"
)

type closer interface {
	Close()
}

type Credentials struct {
	Username string
	Password string
}

type CatalogFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, text string) ([]domain.Product, error)
}

type CartClient interface {
	FetchCart(ctx context.Context, token string) ([]domain.CartRecord, error)
	UpdateCart(
		ctx context.Context, token, productID string, qty int,
	) ([]domain.CartRecord, error)
}

type AuthClient interface {
	Login(context.Context, Credentials) (domain.Session, error)
	Register(context.Context, Credentials) error
}

type Backend interface {
	CatalogFetcher
	CartClient
	AuthClient
}

type SessionStore interface {
	SaveSession(context.Context, domain.Session) error
	LoadSession(context.Context) (domain.Session, error)
	ClearSession(context.Context) error
}

// A QuantityMutator applies a quantity change requested by the cart view.
type QuantityMutator interface {
	SetQuantity(ctx context.Context, productID string, qty int) error
}

type Router interface {
	Navigate(domain.Navigation)
}

type Notifier interface {
	Notify(domain.Notice)
}

type ActivityPublisher interface {
	PublishActivity(context.Context, domain.Activity) error
}

type ActivityProducer interface {
	ActivityPublisher
	closer
}
