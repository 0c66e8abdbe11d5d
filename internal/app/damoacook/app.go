package damoacook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/damoacook/damoacook-back/internal/cache"
	"github.com/damoacook/damoacook-back/internal/config"
	"github.com/damoacook/damoacook-back/internal/hrdnet"
	"github.com/damoacook/damoacook-back/internal/http/handlers/health"
	"github.com/damoacook/damoacook-back/internal/lib/rabbitmq"
	"github.com/damoacook/damoacook-back/internal/lib/sl"
	"github.com/damoacook/damoacook-back/internal/migrations"
	courseservice "github.com/damoacook/damoacook-back/internal/services/course"
	inquiryservice "github.com/damoacook/damoacook-back/internal/services/inquiry"
	"github.com/damoacook/damoacook-back/internal/services/warmer"
	"github.com/damoacook/damoacook-back/internal/storage/repository"
)

// App is the API server with the resources it owns.
type App struct {
	server  *http.Server
	warmer  *warmer.Service
	logger  *slog.Logger
	closers []io.Closer
}

// New builds the server. Redis, PostgreSQL and RabbitMQ are optional: without a
// redis address the course cache lives in process, without a database the
// inquiry route is disabled, and without a broker notifications are only logged.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{logger: logger}
	loc := cfg.Location()
	checks := map[string]health.Pinger{}

	var store cache.Store
	if cfg.AddressRedis != "" {
		redisStore, err := cache.NewRedis(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, redisStore)
		checks["redis"] = redisStore
		store = redisStore
	} else {
		logger.Warn("redis address is empty, using in-process cache")
		store = cache.NewMemory()
	}

	client := hrdnet.NewClient(cfg.HRDNet, logger)
	resolver := hrdnet.NewResolver(client, cfg.ResolverMaxPages, cfg.ResolverPageSize, logger)
	lists := cache.NewLayer("list", store, cfg.StaleRetention, logger)
	details := cache.NewLayer("detail", store, cfg.StaleRetention, logger)
	courses := courseservice.NewService(client, resolver, lists, details, store, cfg.StaleRetention, cfg.HRDNet, loc, logger)
	a.warmer = warmer.NewService(courses, cfg.HRDNet, loc, logger)
	svc := Services{
		Course: courses,
		Checks: checks,
	}

	if cfg.StorageConnectionString != "" {
		inquiries, err := a.inquiryService(ctx, cfg, logger, checks)
		if err != nil {
			a.close()
			return nil, err
		}
		svc.Inquiry = inquiries
	} else {
		logger.Warn("storage connection string is empty, inquiry intake disabled")
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, loc, svc)

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

func (a *App) inquiryService(ctx context.Context, cfg *config.Config, logger *slog.Logger,
	checks map[string]health.Pinger) (*inquiryservice.Service, error) {
	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db)
	checks["postgres"] = db

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	var notifier inquiryservice.Notifier = inquiryservice.LogNotifier{Log: logger}
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn)

		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.InquiryQueues())
		if err != nil {
			return nil, err
		}
		notifier = rabbitmq.NewPublisher(ch, rabbitmq.Exchange, rabbitmq.InquiryCreatedRoutingKey)
	}

	return inquiryservice.NewService(db, notifier, logger), nil
}

// Run serves until ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	go a.warmer.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Error("failed to close resource", sl.Err(err))
		}
	}
}
