package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/fitstore/config"
	"github.com/niksmo/fitstore/internal/adapter/httphandler"
	"github.com/niksmo/fitstore/internal/adapter/kafka"
	"github.com/niksmo/fitstore/internal/adapter/notice"
	"github.com/niksmo/fitstore/internal/adapter/seed"
	"github.com/niksmo/fitstore/internal/adapter/storage"
	"github.com/niksmo/fitstore/internal/core/domain"
	"github.com/niksmo/fitstore/internal/core/port"
	"github.com/niksmo/fitstore/internal/core/service"
	"github.com/niksmo/fitstore/pkg/retry"
	"github.com/niksmo/fitstore/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type outbound struct {
	storage  port.LocalStorage
	notifier port.Notifier
	closers  []func()
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	products   []domain.Product
	outbound   outbound
	store      *service.Store
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCatalog()
	app.initStorage()
	app.initNotifier()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"

	products, err := seed.Load(app.cfg.SeedFile)
	if err != nil {
		app.fallDown(op, err)
	}
	app.products = products
}

func (app *App) initStorage() {
	const op = "App.initStorage"
	cfg := app.cfg.Storage

	switch cfg.Driver {
	case config.StorageSQL:
		db, err := storage.NewSQLDB(app.ctx, cfg.SQLDSN)
		if err != nil {
			app.fallDown(op, err)
		}
		app.outbound.storage = storage.NewSQLStorage(db)
		app.outbound.closers = append(app.outbound.closers, db.Close)
	default:
		lvl, err := storage.NewLevelDBStorage(cfg.LevelDBDir)
		if err != nil {
			app.fallDown(op, err)
		}
		app.outbound.storage = lvl
		app.outbound.closers = append(app.outbound.closers, lvl.Close)
	}
}

func (app *App) initNotifier() {
	const op = "App.initNotifier"

	notifiers := notice.Multi{notice.NewLogNotifier(slog.Default())}

	if app.cfg.NotificationsEnabled() {
		urls := app.cfg.Broker.SchemaRegistryURLs
		topic := app.cfg.Broker.NotificationsTopic

		srClient, err := sr.NewClient(sr.URLs(urls...))
		if err != nil {
			app.fallDown(op, err)
		}

		serde, err := schema.NewSerdeNotificationV1(
			app.ctx,
			schema.SubjectOpt(topic+"-value"),
			schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
		)
		if err != nil {
			app.fallDown(op, err)
		}

		emitter, err := kafka.NewNotificationEmitter(kafka.NotificationEmitterConfig{
			SeedBrokers: app.cfg.Broker.SeedBrokers,
			Topic:       topic,
			Serde:       serde,
		})
		if err != nil {
			app.fallDown(op, err)
		}

		notifiers = append(notifiers, emitter)
		app.outbound.closers = append(app.outbound.closers, emitter.Close)
	}

	app.outbound.notifier = notifiers
}

func (app *App) initCoreService() {
	storageCfg := app.cfg.Storage
	checkoutCfg := app.cfg.Checkout

	app.store = service.New(app.ctx, service.Config{
		Products: app.products,
		Storage:  app.outbound.storage,
		Notifier: app.outbound.notifier,
		CartKey:  storageCfg.CartKey,
		LikedKey: storageCfg.LikedKey,
		Pricing: domain.Pricing{
			FreeShippingThreshold: checkoutCfg.FreeShippingThreshold,
			ShippingFee:           checkoutCfg.ShippingFee,
			TaxRateBasisPoints:    checkoutCfg.TaxRateBasisPoints,
		},
		Retry: retry.RetryConfig{
			MaxAttempts: storageCfg.Retry.Attempts,
			Backoff:     retry.LinearBackoff(storageCfg.Retry.Delay),
		},
	})
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.store)
	httphandler.RegisterFilters(mux, app.store)
	httphandler.RegisterCart(mux, app.store, app.store, app.cfg.Checkout.MaxLineQuantity)
	httphandler.RegisterLiked(mux, app.store)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(httphandler.ServerConfig{
		Addr:           app.cfg.HTTPServerAddr,
		HandlerTimeout: app.cfg.HandlerTimeout,
	}, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	for i := len(app.outbound.closers) - 1; i >= 0; i-- {
		app.outbound.closers[i]()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
