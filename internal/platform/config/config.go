package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers understood by cmd/server.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string        `env:"PARRAINAGE_ADDR" envDefault:":8080"`
	StoreDriver   string        `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"parrainage.db"`
	TxTimeout     time.Duration `env:"TX_TIMEOUT" envDefault:"5s"`
	JWTSigningKey string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"parrainage"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"LOG_FORMAT" envDefault:"json"`

	Redis RedisConfig
	Kafka KafkaConfig
}

// RedisConfig configures the notification delivery queue.
// An empty URL disables Redis; notifications are then only persisted.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	QueueKey     string        `env:"REDIS_NOTIFICATION_QUEUE" envDefault:"parrainage:notifications"`
}

// KafkaConfig configures the history feed. No brokers disables the feed.
type KafkaConfig struct {
	Brokers      []string `env:"KAFKA_BROKERS" envSeparator:","`
	HistoryTopic string   `env:"KAFKA_HISTORY_TOPIC" envDefault:"sponsorship.history"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (s Server) Validate() error {
	switch s.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if s.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store driver %q", s.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", s.StoreDriver)
	}
	if s.TxTimeout <= 0 {
		return fmt.Errorf("TX_TIMEOUT must be positive")
	}
	return nil
}
