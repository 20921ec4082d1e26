package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Kenworld/edughana-shop/internal/client"
	"github.com/Kenworld/edughana-shop/internal/config"
	"github.com/Kenworld/edughana-shop/internal/event"
	handler "github.com/Kenworld/edughana-shop/internal/handler/http"
	postgresrepo "github.com/Kenworld/edughana-shop/internal/repository/postgres"
	redisrepo "github.com/Kenworld/edughana-shop/internal/repository/redis"
	"github.com/Kenworld/edughana-shop/internal/service"
	"github.com/Kenworld/edughana-shop/migrations"
	"github.com/Kenworld/edughana-shop/pkg/database"
	"github.com/Kenworld/edughana-shop/pkg/health"
	"github.com/Kenworld/edughana-shop/pkg/httpclient"
	pkgkafka "github.com/Kenworld/edughana-shop/pkg/kafka"
	"github.com/Kenworld/edughana-shop/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	pool            *pgxpool.Pool
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tracingShutdown, err := tracing.Init(ctx, tracing.Config{
		ServiceName:    "edughana-shop",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TraceSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Postgres holds the catalog, orders and blog.
	pool, err := database.NewPostgresPool(ctx, &database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSLMode,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to Postgres",
		slog.String("host", cfg.PostgresHost),
		slog.String("db", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Redis holds session state: carts, wishlists and cached profiles.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("host", cfg.RedisHost),
		slog.Int("db", cfg.RedisDB),
	)

	producer := pkgkafka.NewProducer(pkgkafka.ProducerConfig{Brokers: cfg.KafkaBrokers}, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Repositories.
	productRepo := postgresrepo.NewProductRepository(pool)
	orderRepo := postgresrepo.NewOrderRepository(pool)
	blogRepo := postgresrepo.NewBlogRepository(pool)
	cartRepo := redisrepo.NewCartRepository(rdb, time.Duration(cfg.CartTTL)*time.Hour)
	wishlistRepo := redisrepo.NewWishlistRepository(rdb, time.Duration(cfg.WishlistTTL)*time.Hour)
	profileRepo := redisrepo.NewProfileRepository(rdb, time.Duration(cfg.ProfileTTL)*time.Hour)

	// Outbound collaborators.
	eventProducer := event.NewProducer(producer, logger)
	webhookClient := httpclient.NewBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultBreakerConfig("order-webhook"),
		logger,
	)
	notifier := client.NewOrderNotifier(webhookClient, cfg.OrderWebhookURL, logger)

	// Services.
	cartService := service.NewCartService(cartRepo, productRepo, eventProducer, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, cartService, logger)
	catalogService := service.NewCatalogService(productRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, cartService, notifier, eventProducer, logger)
	blogService := service.NewBlogService(blogRepo, logger)
	accountService := service.NewAccountService(profileRepo, orderRepo, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	router := handler.NewRouter(handler.Services{
		Cart:     cartService,
		Wishlist: wishlistService,
		Catalog:  catalogService,
		Checkout: checkoutService,
		Blog:     blogService,
		Account:  accountService,
	}, healthHandler, handler.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
