package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Configはアプリ全体の設定
type Config struct {
	// サーバーポート
	Port string `env:"PORT" envDefault:"8080"`
	// dev/prod
	GoEnv string `env:"GO_ENV" envDefault:"dev"`
	// debug/info/warn/error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// memory / bbolt / redis / postgres
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	BoltPath      string `env:"BOLT_PATH" envDefault:"./data/tableorder.db"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	// セッションキーの有効期限
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// あれば POSTGRES_* より優先
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"app"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// 空なら埋め込みのメニュー
	MenuFile string `env:"MENU_FILE"`

	// 支払いシミュレーションの待ち時間
	PaymentLatency time.Duration `env:"PAYMENT_LATENCY" envDefault:"2s"`
	// 提供までの目安（分）と、それを1減らす間隔
	ETAStartMinutes int           `env:"ETA_START_MINUTES" envDefault:"25"`
	ETAInterval     time.Duration `env:"ETA_INTERVAL" envDefault:"1m"`

	// 空なら注文イベントを送らない
	AMQPURL string `env:"AMQP_URL"`
	// 空ならトレースを送らない
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"tableorder-api"`

	// セッションcookieのSecure属性
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// Loadは環境変数
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	switch cfg.StorageDriver {
	case "memory", "redis", "postgres":
	case "bbolt":
		if cfg.BoltPath == "" {
			return Config{}, fmt.Errorf("BOLT_PATH is required")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be one of memory/bbolt/redis/postgres")
	}
	if cfg.SessionTTL < 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be >= 0")
	}
	if cfg.PaymentLatency < 0 {
		return Config{}, fmt.Errorf("PAYMENT_LATENCY must be >= 0")
	}
	if cfg.ETAStartMinutes < 0 {
		return Config{}, fmt.Errorf("ETA_START_MINUTES must be >= 0")
	}
	if cfg.ETAInterval <= 0 {
		return Config{}, fmt.Errorf("ETA_INTERVAL must be > 0")
	}

	return cfg, nil
}

// Addr は ":8080" 形式のlisten先
func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

// PostgresDSN は DATABASE_URL を優先してDSNを作る。
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}
