package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/notification"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/poller"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/application/webhook"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/domain/marker"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/config"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/logging"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/metrics"
	httpapi "github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/http"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/mercadopago"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/persistence/inmemory"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/persistence/postgres"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/persistence/redis"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/persistence/sqlite"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/signature"
	"github.com/rcarvalho-pb/payment_notifier-go/internal/infrastructure/telegram"
)

type app struct {
	metrics   *metrics.Counters
	router    http.Handler
	scheduler *poller.Scheduler
	close     func() error
}

func loadConfig(path string) (*config.Config, *logging.StdoutLogger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.NewStdoutLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("config: log.level: %w", err)
	}

	return cfg, logger, nil
}

// openStore opens the configured dedup backend and creates its schema.
func openStore(ctx context.Context, cfg config.DedupConfig) (marker.Repository, func() error, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return inmemory.NewMarkerRepository(), func() error { return nil }, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewMarkerRepository(db), db.Close, nil

	case config.DriverRedis:
		client, err := redis.NewClient(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewMarkerRepository(client), client.Close, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewMarkerRepository(pool), func() error { pool.Close(); return nil }, nil
	}

	return nil, nil, fmt.Errorf("dedup.driver %q is not supported", cfg.Driver)
}

func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	formatter, err := notification.NewFormatter(cfg.Notification.Timezone)
	if err != nil {
		return nil, err
	}

	markers, closeStore, err := openStore(ctx, cfg.Dedup)
	if err != nil {
		return nil, err
	}

	counters := &metrics.Counters{}

	gateway := mercadopago.NewClient(cfg.MercadoPago.BaseURL, cfg.MercadoPago.AccessToken, cfg.Client.Timeout)
	channel := telegram.NewClient(cfg.Telegram.BaseURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Client.Timeout)

	notifier := &notification.Notifier{
		Channel:  channel,
		Renderer: formatter,
		Markers:  markers,
		Logger:   logger,
		Metrics:  counters,
		Now:      time.Now,
	}

	verifier := signature.NewVerifier(cfg.MercadoPago.Secret)
	if !verifier.Enabled() {
		logger.Warn("webhook signature verification disabled", nil)
	}

	webhookHandler := &httpapi.WebhookHandler{
		Verifier: verifier,
		Service: &webhook.Service{
			Gateway:  gateway,
			Notifier: notifier,
			Logger:   logger,
		},
		Logger:  logger,
		Metrics: counters,
	}

	checker := &poller.Checker{
		Gateway:         gateway,
		Notifier:        notifier,
		Markers:         markers,
		Limit:           cfg.Poll.Limit,
		IsolateFailures: cfg.Poll.IsolateFailures,
		Logger:          logger,
		Metrics:         counters,
	}

	return &app{
		metrics: counters,
		router:  httpapi.NewRouter(webhookHandler, &httpapi.HealthHandler{Metrics: counters}),
		scheduler: &poller.Scheduler{
			Checker:  checker,
			Interval: cfg.Poll.Interval,
			Logger:   logger,
		},
		close: closeStore,
	}, nil
}
