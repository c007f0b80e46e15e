package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	PublicURL string `env:"PUBLIC_URL, default=http://localhost:8080"`

	JWT       JWTConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Notify    NotifyConfig
	Scheduler SchedulerConfig
	RateLimit RateLimitConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET, required"`
	Issuer     string        `env:"JWT_ISSUER,      default=admin-api"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL, default=24h"`
	ResetTTL   time.Duration `env:"JWT_RESET_TTL,   default=15m"`
}

type MongoConfig struct {
	URI          string `env:"MONGO_URI,          default=mongodb://localhost:27017"`
	Database     string `env:"MONGO_DB,           default=admin_api"`
	Transactions bool   `env:"MONGO_TRANSACTIONS, default=false"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type NotifyConfig struct {
	Channel string `env:"NOTIFY_CHANNEL, default=notifications"`
	Workers int    `env:"NOTIFY_WORKERS, default=2"`
}

type SchedulerConfig struct {
	ResetSweep string `env:"RESET_SWEEP_SCHEDULE, default=@every 10m"`
}

type RateLimitConfig struct {
	// Requests per second per client IP on the public credential routes.
	Rate  float64 `env:"AUTH_RATE_LIMIT, default=5"`
	Burst int     `env:"AUTH_RATE_BURST, default=10"`
}

// ResetURL is the public prefix reset tokens are appended to.
func (c *Config) ResetURL() string {
	return strings.TrimRight(c.PublicURL, "/") + "/api/v1/reset-password"
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// MustLoad is Load that panics on error.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(err)
	}
	return cfg
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Notify.Workers < 1 {
		cfg.Notify.Workers = 1
	}
	return &cfg, nil
}
