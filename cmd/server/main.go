package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/coffee_shop/internal/catalog"
	"github.com/Skotchmaster/coffee_shop/internal/config"
	"github.com/Skotchmaster/coffee_shop/internal/es"
	"github.com/Skotchmaster/coffee_shop/internal/handlers"
	"github.com/Skotchmaster/coffee_shop/internal/identity"
	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/middleware/csrf"
	"github.com/Skotchmaster/coffee_shop/internal/mykafka"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/internal/service"
	httpserver "github.com/Skotchmaster/coffee_shop/internal/transport/http"
	"github.com/Skotchmaster/coffee_shop/pkg/db"
	authmw "github.com/Skotchmaster/coffee_shop/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/coffee_shop/pkg/middleware/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server_exit", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	gormDB, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Error("db_close_error", "error", err)
		}
	}()
	if err := repo.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	r := repo.New(gormDB)

	events, closeEvents := newPublisher(ctx, logger, cfg.KafkaBrokers)
	defer closeEvents()

	cat := catalog.Default()
	search := &service.SearchService{Catalog: cat, Index: cfg.ESIndex}
	if cfg.ESURL != "" {
		search.ES = newSearchClient(ctx, logger, cfg)
		if search.ES != nil {
			if err := search.IndexCatalog(ctx); err != nil {
				logger.Error("es_index_catalog_error", "index", cfg.ESIndex, "error", err)
			}
		}
	}

	provider := &identity.LocalProvider{
		Repo:          r,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}
	carts := service.NewCartService(cat, events)
	notifications := &service.NotificationService{Repo: r}
	profiles := &service.ProfileService{Repo: r}

	deps := &httpserver.Deps{
		DB:   gormDB,
		Auth: authmw.NewAutoRefreshMiddleware(cfg.JWTAccessSecret, provider),
		AuthHandler: &handlers.AuthHTTP{Svc: &service.AccountService{
			Identity:      provider,
			Notifications: notifications,
			Profiles:      profiles,
			Events:        events,
		}},
		CatalogHandler:      &handlers.CatalogHTTP{Catalog: cat, Search: search},
		CartHandler:         &handlers.CartHTTP{Svc: carts},
		FavoritesHandler:    &handlers.FavoritesHTTP{Svc: service.NewFavoritesService(cat, carts, events)},
		CheckoutHandler:     &handlers.CheckoutHTTP{Svc: &service.CheckoutService{Repo: r, Carts: carts, Events: events}},
		NotificationHandler: &handlers.NotificationHTTP{Svc: notifications},
		ProfileHandler:      &handlers.ProfileHTTP{Svc: profiles},
	}
	if cfg.CSRFEnabled {
		csrfCfg := csrf.DefaultConfig()
		deps.CSRF = &csrfCfg
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	if len(cfg.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-CSRF-Token"},
			ExposeHeaders:    []string{"X-CSRF-Token"},
		}))
	}
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http_server_start", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting_down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("shutdown_complete")
	return err
}

// newPublisher falls back to dropping events when no brokers are configured.
func newPublisher(ctx context.Context, logger *slog.Logger, brokers []string) (mykafka.Publisher, func()) {
	if len(brokers) == 0 {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS not set")
		return mykafka.NopPublisher{}, func() {}
	}

	topicsCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mykafka.EnsureTopics(topicsCtx, brokers[0], mykafka.Topics...); err != nil {
		logger.Warn("kafka_ensure_topics_failed", "error", err)
	}

	prod, err := mykafka.NewProducer(brokers)
	if err != nil {
		logger.Error("kafka_producer_error", "error", err)
		return mykafka.NopPublisher{}, func() {}
	}
	return prod, func() {
		if err := prod.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}
}

func newSearchClient(ctx context.Context, logger *slog.Logger, cfg *config.Config) *elasticsearch.Client {
	esCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := es.NewClient(esCtx, es.Options{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
	if err != nil {
		logger.Warn("es_unavailable", "reason", "falling back to catalog search", "error", err)
		return nil
	}
	return client
}
