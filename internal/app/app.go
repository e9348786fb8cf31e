package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/niksmo/qkart/config"
	"github.com/niksmo/qkart/internal/adapter"
	"github.com/niksmo/qkart/internal/adapter/backend"
	"github.com/niksmo/qkart/internal/adapter/kafka"
	"github.com/niksmo/qkart/internal/adapter/storage"
	"github.com/niksmo/qkart/internal/core/port"
	"github.com/niksmo/qkart/internal/core/service"
	"github.com/niksmo/qkart/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

// An App wires the storefront to its adapters. The notifier and the
// router belong to the front end that hosts the storefront.
type App struct {
	ctx      context.Context
	cfg      config.Config
	logFile  io.Closer
	db       storage.SQLDB
	backend  backend.Client
	producer port.ActivityProducer
	sf       *service.Storefront
}

func New(
	ctx context.Context,
	cfg config.Config,
	notifier port.Notifier,
	router port.Router,
) (*App, error) {
	const op = "app.New"

	app := &App{ctx: ctx, cfg: cfg, producer: kafka.NoopProducer{}}

	if err := app.initLogger(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	inits := []func() error{
		app.initStorage,
		app.initBackend,
		app.initProducer,
	}
	for _, initFn := range inits {
		if err := initFn(); err != nil {
			app.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	sf, err := service.New(
		app.backend,
		storage.NewSessionRepository(app.db),
		notifier,
		router,
		service.PublisherOpt(app.producer),
		service.SearchDebounceOpt(cfg.Search.Debounce),
	)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.sf = sf

	slog.Info("application is running")
	return app, nil
}

func (app *App) Storefront() *service.Storefront {
	return app.sf
}

func (app *App) Config() config.Config {
	return app.cfg
}

func (app *App) initLogger() error {
	var w io.Writer = io.Discard
	if app.cfg.LogFile != "" {
		f, err := os.OpenFile(
			app.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600,
		)
		if err != nil {
			return err
		}
		app.logFile = f
		w = f
	}
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(logger)
	return nil
}

func (app *App) initStorage() error {
	db, err := storage.NewSQLDB(app.ctx, app.cfg.Storage.DSN)
	if err != nil {
		return err
	}
	app.db = db
	return storage.Migrate(db)
}

func (app *App) initBackend() error {
	cl, err := backend.NewClient(
		app.cfg.Backend.Endpoint,
		backend.TimeoutOpt(app.cfg.Backend.Timeout),
	)
	if err != nil {
		return err
	}
	app.backend = cl
	return nil
}

func (app *App) initProducer() error {
	const op = "App.initProducer"
	log := slog.With("op", op)

	ev := app.cfg.Events
	if !ev.Enabled {
		log.Info("activity events are disabled")
		return nil
	}

	srClient, err := sr.NewClient(sr.URLs(ev.SchemaRegistryURLs...))
	if err != nil {
		return err
	}

	serde, err := schema.NewSerdeActivityV1(
		app.ctx,
		schema.SubjectOpt(ev.Topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		return err
	}

	var tlsCfg *tls.Config
	if ev.TLS.Enabled() {
		tlsCfg, err = adapter.MakeTLSConfig(ev.TLS.CA, ev.TLS.Cert, ev.TLS.Key)
		if err != nil {
			return err
		}
	}

	p, err := kafka.NewActivityProducer(
		kafka.ProducerClientOpt(app.ctx, ev.SeedBrokers, ev.Topic, tlsCfg),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		return err
	}
	app.producer = p
	log.Info("activity events are enabled", "topic", ev.Topic)
	return nil
}

// Close releases everything New acquired. It is safe after a failed New.
func (app *App) Close() {
	slog.Info("application is closing...")

	if app.sf != nil {
		app.sf.Close()
	}
	app.producer.Close()
	if app.db.DB != nil {
		app.db.Close()
	}

	slog.Info("application is closed")

	if app.logFile != nil {
		if err := app.logFile.Close(); err != nil {
			fmt.Fprintln(os.Stderr, errors.Join(errors.New("close log file"), err))
		}
	}
}
