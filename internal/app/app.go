// Package app wires configuration, infrastructure, the recommendation engine,
// and the HTTP surface into one runnable unit.  Both the apiserver binary and
// the CLI serve command boot through here so the wiring exists exactly once.
package app

import (
	"context"

	"github.com/unionworks/unioniq/internal/application/settlement"
	"github.com/unionworks/unioniq/internal/config"
	"github.com/unionworks/unioniq/internal/domain/claim"
	"github.com/unionworks/unioniq/internal/domain/clause"
	"github.com/unionworks/unioniq/internal/infrastructure/database/postgres"
	"github.com/unionworks/unioniq/internal/infrastructure/database/postgres/repositories"
	"github.com/unionworks/unioniq/internal/infrastructure/database/redis"
	"github.com/unionworks/unioniq/internal/infrastructure/messaging/kafka"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/unionworks/unioniq/internal/interfaces/http"
	"github.com/unionworks/unioniq/internal/interfaces/http/handlers"
)

// Version is injected at build time via ldflags.
var Version = "dev"

// App owns every long-lived component of the service.
type App struct {
	cfg    *config.Config
	logger logging.Logger

	db       *postgres.Connection
	cache    *redis.Client
	producer *kafka.Producer
	metrics  *prometheus.Metrics

	claims  claim.Repository
	clauses clause.Repository

	service *settlement.Service
	server  *httpserver.Server
}

// New wires the full application.  Postgres must be reachable; Redis and
// Kafka degrade: an unreachable cache falls back to direct database reads and
// a disabled broker skips event publication.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	conn, err := postgres.NewConnection(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	a.db = conn

	if err := postgres.RunMigrations(postgres.MigrateURL(cfg.Database), postgres.MigrateSourceURL(cfg.Database)); err != nil {
		a.Close()
		return nil, err
	}

	a.claims = repositories.NewClaimRepo(conn, logger)
	clauseRepo := repositories.NewClauseRepo(conn, logger)
	a.clauses = clauseRepo

	if client, err := redis.NewClient(cfg.Redis, logger); err != nil {
		// The cached decorator already falls back per call; an unreachable
		// cache at boot just means we skip the decorator entirely.
		logger.Warn("redis unavailable, clause library served without cache", logging.Err(err))
	} else {
		a.cache = client
		opts := []redis.CacheOption{redis.WithDefaultTTL(cfg.Engine.ClauseCacheTTL)}
		if cfg.Redis.KeyPrefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.KeyPrefix))
		}
		cache := redis.NewCache(client, logger, opts...)
		a.clauses = redis.NewCachedClauseRepo(clauseRepo, cache, cfg.Engine.ClauseCacheTTL, logger)
	}

	a.metrics = prometheus.NewMetrics()

	engine := settlement.NewEngine(settlement.Deps{
		Claims:         a.claims,
		Clauses:        a.clauses,
		Logger:         logger,
		PrecedentLimit: cfg.Engine.PrecedentLimit,
		QueryTimeout:   cfg.Engine.QueryTimeout,
	})

	serviceDeps := settlement.ServiceDeps{
		Engine:  engine,
		Metrics: a.metrics,
		Logger:  logger,
	}
	var claimEvents handlers.ClaimEventPublisher
	if cfg.Kafka.Enabled {
		a.producer = kafka.NewProducer(cfg.Kafka, logger)
		serviceDeps.Publisher = a.producer
		claimEvents = a.producer
	}
	a.service = settlement.NewService(serviceDeps)

	checks := []handlers.DependencyCheck{
		{Name: "database", Check: conn.HealthCheck},
	}
	if a.cache != nil {
		checks = append(checks, handlers.DependencyCheck{Name: "cache", Check: a.cache.Ping})
	}

	httpserver.SetMode(cfg.Server.Mode)
	router := httpserver.NewRouter(httpserver.RouterConfig{
		ClaimHandler:          handlers.NewClaimHandler(a.claims, claimEvents, logger),
		ClauseHandler:         handlers.NewClauseHandler(a.clauses, logger),
		RecommendationHandler: handlers.NewRecommendationHandler(a.service, logger),
		HealthHandler:         handlers.NewHealthHandler(Version, checks...),
		MetricsHandler:        a.metrics.Handler(),
		HTTPMetrics:           a.metrics,
		Logger:                logger,
	})
	a.server = httpserver.NewServer(cfg.Server, router, logger)

	return a, nil
}

// Service exposes the recommendation service for one-shot CLI use.
func (a *App) Service() *settlement.Service {
	return a.service
}

// Run serves HTTP until ctx is cancelled, then drains within the configured
// shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Close releases every held resource in reverse dependency order.
func (a *App) Close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("failed to close kafka producer", logging.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", logging.Err(err))
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
