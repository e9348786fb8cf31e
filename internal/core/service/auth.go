package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/form"
	"github.com/niksmo/qkart/internal/core/port"
)

const navFromLogin = "login"

// Login validates f, logs the user in, persists the session and goes to
// the products page.
func (s *Storefront) Login(
	ctx context.Context, f form.Login,
) (domain.Session, error) {
	const op = "Storefront.Login"

	if err := f.Validate(); err != nil {
		return domain.Session{}, s.fail(op, err)
	}

	sess, err := s.backend.Login(ctx, port.Credentials{
		Username: f.Username,
		Password: f.Password,
	})
	if err != nil {
		return domain.Session{}, s.fail(op, err)
	}

	if err := s.sessions.SaveSession(ctx, sess); err != nil {
		return domain.Session{}, s.fail(op, err)
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	s.notify(domain.NoticeSuccess, MsgLoggedIn)
	s.publish(ctx, domain.NewActivity(domain.ActivityLogin, sess.Username))
	s.router.Navigate(domain.Navigation{
		To:   domain.RouteProducts,
		From: navFromLogin,
	})
	return sess, nil
}

// Register validates f, creates the account and goes to the login page.
func (s *Storefront) Register(ctx context.Context, f form.Register) error {
	const op = "Storefront.Register"

	if err := f.Validate(); err != nil {
		return s.fail(op, err)
	}

	err := s.backend.Register(ctx, port.Credentials{
		Username: f.Username,
		Password: f.Password,
	})
	if err != nil {
		return s.fail(op, err)
	}

	s.notify(domain.NoticeSuccess, MsgRegistered)
	s.router.Navigate(domain.Navigation{To: domain.RouteLogin})
	return nil
}

// Logout forgets the session and the cart.
func (s *Storefront) Logout(ctx context.Context) error {
	const op = "Storefront.Logout"

	if err := s.sessions.ClearSession(ctx); err != nil {
		return s.fail(op, err)
	}

	s.mu.Lock()
	username := s.session.Username
	s.session = domain.Session{}
	s.records = []domain.CartRecord{}
	s.rejoin()
	s.mu.Unlock()

	if username != "" {
		s.publish(ctx, domain.NewActivity(domain.ActivityLogout, username))
	}
	s.router.Navigate(domain.Navigation{To: domain.RouteProducts})
	return nil
}

// RestoreSession picks up the session persisted by a previous Login. An
// empty store leaves the user anonymous.
func (s *Storefront) RestoreSession(ctx context.Context) (domain.Session, error) {
	const op = "Storefront.RestoreSession"
	log := slog.With("op", op)

	sess, err := s.sessions.LoadSession(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			log.Debug("no persisted session")
			return domain.Session{}, nil
		}
		return domain.Session{}, opErr(op, err)
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	log.Debug("session restored", "username", sess.Username)
	return sess, nil
}
