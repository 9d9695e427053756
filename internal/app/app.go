// Package app wires configuration, clients, repositories, services, and the
// HTTP server into a runnable storefront.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafascerqueira/v-storefront/internal/apiclient"
	"github.com/rafascerqueira/v-storefront/internal/catalogclient"
	"github.com/rafascerqueira/v-storefront/internal/config"
	"github.com/rafascerqueira/v-storefront/internal/event"
	handlerhttp "github.com/rafascerqueira/v-storefront/internal/handler/http"
	redisrepo "github.com/rafascerqueira/v-storefront/internal/repository/redis"
	"github.com/rafascerqueira/v-storefront/internal/service"
	"github.com/rafascerqueira/v-storefront/internal/session"
	"github.com/rafascerqueira/v-storefront/pkg/health"
	"github.com/rafascerqueira/v-storefront/pkg/httpclient"
	"github.com/rafascerqueira/v-storefront/pkg/kafka"
	"github.com/rafascerqueira/v-storefront/pkg/middleware"
	"github.com/rafascerqueira/v-storefront/pkg/tracing"
)

// App is the assembled storefront service.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	redisClient *redis.Client
	producer    *kafka.Producer
	server      *http.Server

	tracingShutdown func(context.Context) error
}

// New wires the full application. Nothing talks to the network yet except
// the Redis ping; upstream APIs are only reached per request.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: log}

	// Tracing.
	tracingCfg := tracing.DefaultConfig(cfg.ServiceName)
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingCfg.OTLPEndpoint = cfg.TracingEndpoint
	tracingCfg.SampleRate = cfg.TracingSampleRate
	tracingCfg.Environment = cfg.Environment
	shutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracingShutdown = shutdown

	// Redis.
	a.redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := a.redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	// Kafka (optional).
	var publisher *event.Publisher
	if cfg.KafkaEventsEnable {
		a.producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), log)
		publisher = event.NewPublisher(a.producer, cfg.KafkaEventsTopic, true)
	} else {
		publisher = event.NewPublisher(nil, cfg.KafkaEventsTopic, false)
	}

	// Repositories.
	cartRepo := redisrepo.NewCartRepository(a.redisClient, cfg.CartTTL)
	sessionRepo := redisrepo.NewSessionRepository(a.redisClient, cfg.SessionTTL)
	usageRepo := redisrepo.NewUsageRepository(a.redisClient, cfg.UsageTTL)

	// Upstream clients, each behind its own circuit breaker.
	salesHTTP := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.Config{
			Timeout:         cfg.SalesAPITimeout,
			MaxRetries:      2,
			RetryWaitMin:    500 * time.Millisecond,
			RetryWaitMax:    3 * time.Second,
			MaxConnsPerHost: 50,
		}),
		httpclient.DefaultCircuitBreakerConfig("sales-api"),
		log,
	)
	catalogHTTP := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.Config{
			Timeout:         cfg.CatalogAPITimeout,
			MaxRetries:      2,
			RetryWaitMin:    500 * time.Millisecond,
			RetryWaitMax:    3 * time.Second,
			MaxConnsPerHost: 50,
		}),
		httpclient.DefaultCircuitBreakerConfig("catalog-api"),
		log,
	)

	salesAPI := apiclient.New(cfg.SalesAPIURL, salesHTTP, sessionRepo)
	catalogAPI := catalogclient.New(cfg.CatalogAPIURL, catalogHTTP)

	// Services.
	tokens := session.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL, cfg.ServiceName)
	authSvc := service.NewAuthService(salesAPI, sessionRepo, usageRepo, tokens, publisher, cfg.SessionTTL)
	cartSvc := service.NewCartService(cartRepo, catalogAPI, publisher)
	checkoutSvc := service.NewCheckoutService(cartRepo, catalogAPI, publisher)
	subscriptionSvc := service.NewSubscriptionService(salesAPI, usageRepo, publisher)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return a.redisClient.Ping(ctx).Err()
	})
	if a.producer != nil {
		healthHandler.Register("kafka", a.producer.Ping)
	}

	// HTTP surface.
	cookies := handlerhttp.CookieConfig{
		SessionName: cfg.SessionCookie,
		CatalogName: cfg.CatalogCookie,
		Secure:      cfg.SecureCookies,
		SessionTTL:  int(cfg.SessionTTL.Seconds()),
		CatalogTTL:  int(cfg.CartTTL.Seconds()),
	}
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.AllowCredentials = true
	corsCfg.Environment = cfg.Environment

	router := handlerhttp.NewRouter(handlerhttp.RouterConfig{
		ServiceName:    cfg.ServiceName,
		RequestTimeout: 30 * time.Second,
		RateLimitRPS:   int(cfg.RateLimitRPS),
		RateLimitBurst: cfg.RateLimitBurst,
		CORS:           corsCfg,
		Cookies:        cookies,
	}, handlerhttp.Handlers{
		Auth:          handlerhttp.NewAuthHandler(authSvc, cookies, log),
		Cart:          handlerhttp.NewCartHandler(cartSvc, log),
		Catalog:       handlerhttp.NewCatalogHandler(catalogAPI, checkoutSvc, log),
		BackOffice:    handlerhttp.NewBackOfficeHandler(salesAPI, subscriptionSvc, salesAPI, log),
		Admin:         handlerhttp.NewAdminHandler(salesAPI, log),
		Authenticator: authSvc,
		Health:        healthHandler,
	}, log)

	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server and blocks until it stops.
func (a *App) Run() error {
	a.logger.Info("storefront listening",
		slog.String("addr", a.server.Addr),
		slog.String("environment", a.cfg.Environment),
	)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes every client.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down")

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("http shutdown failed", slog.String("error", err.Error()))
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka close failed", slog.String("error", err.Error()))
		}
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("redis close failed", slog.String("error", err.Error()))
	}
	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown failed", slog.String("error", err.Error()))
		}
	}
	return nil
}
