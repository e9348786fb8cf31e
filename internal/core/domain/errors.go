package domain

import "errors"

// Backend failure classes. Adapters wrap or match these so the storefront
// can pick a notice without knowing the transport.
var (
	// ErrUnreachable means no response was received at all.
	ErrUnreachable  = errors.New("backend is unreachable")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnexpected means the response body could not be decoded.
	ErrUnexpected = errors.New("unexpected response")
)

// UserMessage returns the backend-provided message carried by err, if any.
func UserMessage(err error) (string, bool) {
	var m interface{ UserMessage() string }
	if errors.As(err, &m) && m.UserMessage() != "" {
		return m.UserMessage(), true
	}
	return "", false
}

// ErrNoSession is returned by session stores when nobody is logged in.
var ErrNoSession = errors.New("no session")
