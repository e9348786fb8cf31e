package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/pkg/retry"
	_ "modernc.org/sqlite"
)

const (
	driverPgx    = "pgx"
	driverSQLite = "sqlite"
)

var ErrNotFound = domain.ErrNoSession

type sqldb interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// A SQLDB is a PostgreSQL or SQLite database, chosen by the DSN.
type SQLDB struct {
	*sql.DB
	driver string
}

// NewSQLDB opens the database behind dsn. postgres:// and postgresql://
// DSNs are served by pgx, anything else is a SQLite path or file: URI.
func NewSQLDB(ctx context.Context, dsn string) (SQLDB, error) {
	const op = "NewSQLDB"
	log := slog.With("op", op)

	s, err := open(dsn)
	if err != nil {
		return SQLDB{}, fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.ConstantBackoff(200 * time.Millisecond),
	}
	err = retry.Do(ctx, retryCfg, func() error {
		return s.PingContext(ctx)
	})
	if err != nil {
		_ = s.DB.Close()
		return SQLDB{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	log.Info("database is available", "driver", s.driver)
	return s, nil
}

func open(dsn string) (SQLDB, error) {
	if isPostgres(dsn) {
		connConfig, err := pgx.ParseConfig(dsn)
		if err != nil {
			return SQLDB{}, err
		}
		connStr := stdlib.RegisterConnConfig(connConfig)
		db, err := sql.Open(driverPgx, connStr)
		if err != nil {
			return SQLDB{}, err
		}
		return SQLDB{db, driverPgx}, nil
	}

	db, err := sql.Open(driverSQLite, dsn)
	if err != nil {
		return SQLDB{}, err
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	return SQLDB{db, driverSQLite}, nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://")
}

func (s SQLDB) Driver() string {
	return s.driver
}

var placeholder = regexp.MustCompile(`\$\d+`)

// rebind rewrites $N placeholders for drivers that expect '?'.
func (s SQLDB) rebind(query string) string {
	if s.driver != driverSQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?")
}

func (s SQLDB) Close() {
	const op = "SQLDB.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.DB.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}
