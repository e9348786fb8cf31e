package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Session struct {
	Token    string
	Username string
	Balance  decimal.Decimal
}

// IsZero reports whether s is an anonymous session.
func (s Session) IsZero() bool {
	return s.Token == ""
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel
	Message string
}

type Route string

const (
	RouteProducts Route = "products"
	RouteLogin    Route = "login"
	RouteRegister Route = "register"
	RouteCheckout Route = "checkout"
)

type Navigation struct {
	To   Route
	From string
}

type ActivityKind string

const (
	ActivitySearch     ActivityKind = "search"
	ActivityCartUpdate ActivityKind = "cart_update"
	ActivityCheckout   ActivityKind = "checkout"
	ActivityLogin      ActivityKind = "login"
	ActivityLogout     ActivityKind = "logout"
)

type Activity struct {
	ID         uuid.UUID
	Kind       ActivityKind
	Username   string
	ProductID  string
	Query      string
	Quantity   int
	OccurredAt time.Time
}

// NewActivity stamps a new activity of the given kind.
func NewActivity(kind ActivityKind, username string) Activity {
	return Activity{
		ID:         uuid.New(),
		Kind:       kind,
		Username:   username,
		OccurredAt: time.Now(),
	}
}
