package storage

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the embedded schema migrations to s.
func Migrate(s SQLDB) error {
	const op = "Migrate"
	log := slog.With("op", op)

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	drv, err := s.migrateDriver()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, s.driver, drv)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.Log = migrationLogger{log}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug("no migrations to apply")
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("migrations applied")
	return nil
}

func (s SQLDB) migrateDriver() (database.Driver, error) {
	switch s.driver {
	case driverPgx:
		return pgxmigrate.WithInstance(s.DB, &pgxmigrate.Config{})
	case driverSQLite:
		return sqlitemigrate.WithInstance(s.DB, &sqlitemigrate.Config{})
	}
	return nil, fmt.Errorf("unsupported driver %q", s.driver)
}

type migrationLogger struct {
	log *slog.Logger
}

func (l migrationLogger) Printf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...))
}

func (migrationLogger) Verbose() bool {
	return false
}
