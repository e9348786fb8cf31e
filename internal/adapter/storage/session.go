package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.SessionStore = (*SessionRepository)(nil)

const (
	keyToken    = "token"
	keyUsername = "username"
	keyBalance  = "balance"
)

// A SessionRepository keeps the logged-in session as key-value pairs.
type SessionRepository struct {
	sqldb  sqldb
	rebind func(string) string
}

func NewSessionRepository(db SQLDB) SessionRepository {
	return SessionRepository{sqldb: db, rebind: db.rebind}
}

func (r SessionRepository) SaveSession(
	ctx context.Context, s domain.Session,
) (storeErr error) {
	const op = "SessionRepository.SaveSession"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit %w", op, err)
			}
			return
		}

		err := tx.Rollback()
		if err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := r.rebind(`
		INSERT INTO session_kv (entry_key, entry_value)
		VALUES ($1, $2)
		ON CONFLICT (entry_key) DO UPDATE SET
			entry_value = EXCLUDED.entry_value;
	`)

	entries := [][2]string{
		{keyToken, s.Token},
		{keyUsername, s.Username},
		{keyBalance, s.Balance.String()},
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query, e[0], e[1]); err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}

// LoadSession returns the stored session or ErrNotFound when nobody is
// logged in.
func (r SessionRepository) LoadSession(
	ctx context.Context,
) (domain.Session, error) {
	const op = "SessionRepository.LoadSession"

	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT entry_key, entry_value FROM session_kv;`
	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	kv := make(map[string]string, 3)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return domain.Session{}, fmt.Errorf("%s: %w", op, err)
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	if kv[keyToken] == "" {
		return domain.Session{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	s := domain.Session{Token: kv[keyToken], Username: kv[keyUsername]}
	if b := kv[keyBalance]; b != "" {
		s.Balance, err = decimal.NewFromString(b)
		if err != nil {
			return domain.Session{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return s, nil
}

// ClearSession removes every stored entry.
func (r SessionRepository) ClearSession(ctx context.Context) error {
	const op = "SessionRepository.ClearSession"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.sqldb.ExecContext(ctx, `DELETE FROM session_kv;`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
