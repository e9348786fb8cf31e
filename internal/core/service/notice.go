package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/qkart/internal/core/cartview"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/form"
)

const (
	MsgUnreachable = "Something went wrong. Check that the backend is running, reachable and returns valid JSON."
	MsgBackend     = "Something went wrong. Check the backend console for more details"
	MsgLoginToAdd  = "Login to add an item to the Cart"
	MsgInCart      = "Item already in cart. Use the cart sidebar to update quantity or remove item"
	MsgNoProducts  = "No products found"
	MsgNotInCart   = "Item is no longer in the cart. Refresh to see the current cart"
	MsgCartLocked  = "The order details cannot be changed"
	MsgLoggedIn    = "Logged in successfully"
	MsgRegistered  = "Registered successfully"
)

// noticeFor picks the notice shown for err. Canceled operations and
// superseded searches are not shown.
func noticeFor(err error) (domain.Notice, bool) {
	var ve *form.ValidationError
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		errors.Is(err, ErrSuperseded):
		return domain.Notice{}, false
	case errors.As(err, &ve):
		return warning(ve.Message), true
	case errors.Is(err, ErrUnauthenticated):
		return warning(MsgLoginToAdd), true
	case errors.Is(err, ErrAlreadyInCart):
		return warning(MsgInCart), true
	case errors.Is(err, cartview.ErrItemNotFound):
		return warning(MsgNotInCart), true
	case errors.Is(err, cartview.ErrReadOnly):
		return warning(MsgCartLocked), true
	case errors.Is(err, domain.ErrUnreachable),
		errors.Is(err, domain.ErrUnexpected):
		return failure(MsgUnreachable), true
	case errors.Is(err, domain.ErrBadRequest):
		if msg, ok := domain.UserMessage(err); ok {
			return failure(msg), true
		}
	}
	return failure(MsgBackend), true
}

func warning(msg string) domain.Notice {
	return domain.Notice{Level: domain.NoticeWarning, Message: msg}
}

func failure(msg string) domain.Notice {
	return domain.Notice{Level: domain.NoticeError, Message: msg}
}

func opErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
