package config

import (
	"fmt"
	"time"

	"github.com/rafascerqueira/v-storefront/pkg/config"
)

// Config holds all storefront service configuration, loaded from the
// environment.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"storefront"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Upstream sales API (authenticated back-office surface).
	SalesAPIURL     string        `env:"SALES_API_URL,required"`
	SalesAPITimeout time.Duration `env:"SALES_API_TIMEOUT" envDefault:"15s"`

	// Upstream public catalog API (anonymous storefront surface).
	CatalogAPIURL     string        `env:"CATALOG_API_URL,required"`
	CatalogAPITimeout time.Duration `env:"CATALOG_API_TIMEOUT" envDefault:"15s"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	KafkaBrokers      []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEventsTopic  string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"storefront.events"`
	KafkaEventsEnable bool     `env:"KAFKA_EVENTS_ENABLE" envDefault:"true"`

	// Back-office session settings. The secret signs the session cookie JWT.
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"8h"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"storefront_session"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"true"`
	CatalogCookie string        `env:"CATALOG_COOKIE" envDefault:"storefront_catalog"`
	CartTTL       time.Duration `env:"CART_TTL" envDefault:"72h"`
	UsageTTL      time.Duration `env:"USAGE_TTL" envDefault:"15m"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"0.1"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 bytes")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.CartTTL <= 0 {
		return fmt.Errorf("CART_TTL must be positive")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
