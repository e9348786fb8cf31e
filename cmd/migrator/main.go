package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/niksmo/qkart/config"
	"github.com/niksmo/qkart/internal/adapter/storage"
	"github.com/niksmo/qkart/pkg/sigctx"
	"github.com/spf13/pflag"
)

const (
	dsnFlag    = "dsn"
	configFlag = "config"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	initLogger()

	dsn := getDSN()
	if dsn == "" {
		slog.Error("too few args", "err", "--dsn flag or storage.dsn config key: required")
		fallDown(closeApp)
	}

	db, err := storage.NewSQLDB(sigCtx, dsn)
	if err != nil {
		slog.Error("failed to open storage", "err", err)
		fallDown(closeApp)
	}

	err = storage.Migrate(db)
	db.Close()
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown(closeApp)
	}
	slog.Info("storage is up to date", "driver", db.Driver())
}

func initLogger() {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
}

// getDSN prefers --dsn over the storage.dsn of the config file.
func getDSN() string {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	dsn := flags.StringP(dsnFlag, "d", "", "postgres:// URL or SQLite path")
	flags.StringP(configFlag, "c", "", "qkart config file")
	_ = flags.Parse(os.Args[1:])

	if *dsn != "" {
		return *dsn
	}

	cfg, err := config.Load(config.FilePath(flags))
	if err != nil {
		slog.Error("failed to load config", "err", err)
		return ""
	}
	return cfg.Storage.DSN
}

func fallDown(closeApp func()) {
	closeApp()
	os.Exit(2)
}
