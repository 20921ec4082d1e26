package config

import (
	"fmt"

	pkgconfig "github.com/Kenworld/edughana-shop/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SHOP_HTTP_PORT" envDefault:"8080"`

	// Postgres
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"edughana"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"edughana"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"edughana_shop"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Session state TTLs in hours. Carts and wishlists live for 7 days,
	// cached profiles for a day.
	CartTTL     int `env:"CART_TTL_HOURS" envDefault:"168"`
	WishlistTTL int `env:"WISHLIST_TTL_HOURS" envDefault:"168"`
	ProfileTTL  int `env:"PROFILE_TTL_HOURS" envDefault:"24"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Auth
	JWTSecret string `env:"JWT_SECRET,required"`

	// Operator webhook pinged when an order is placed. Empty disables it.
	OrderWebhookURL string `env:"ORDER_WEBHOOK_URL" envDefault:""`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load shop config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTL < 1 || c.WishlistTTL < 1 || c.ProfileTTL < 1 {
		return fmt.Errorf("TTL hours must be positive")
	}
	if c.RateLimitRPS < 1 || c.RateLimitBurst < c.RateLimitRPS {
		return fmt.Errorf("invalid rate limit: rps=%d burst=%d", c.RateLimitRPS, c.RateLimitBurst)
	}
	return nil
}
