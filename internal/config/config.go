package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Trivia   TriviaConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:":5000"`
	BaseURL      string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:5000"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
}

type DatabaseConfig struct {
	// Driver is one of postgres, mysql or sqlite.
	Driver       string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DSN          string        `env:"DB_DSN" envDefault:"file:showcase.db?cache=shared"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	MaxLifetime  time.Duration `env:"DB_MAX_LIFETIME" envDefault:"5m"`
	AutoMigrate  bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	Debug        bool          `env:"DB_DEBUG" envDefault:"false"`
}

type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED" envDefault:"false"`
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	FlashTTL time.Duration `env:"FLASH_TTL" envDefault:"10m"`
}

type KafkaConfig struct {
	Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topics  TopicConfig
}

type TopicConfig struct {
	Listings string `env:"KAFKA_TOPIC_LISTINGS" envDefault:"showcase.listings"`
	Trivia   string `env:"KAFKA_TOPIC_TRIVIA" envDefault:"showcase.trivia"`
}

type TriviaConfig struct {
	QuestionsPerPage int `env:"QUESTIONS_PER_PAGE" envDefault:"10"`
}

type LogConfig struct {
	Dir string `env:"LOG_DIR" envDefault:"logs"`
}

// Load reads an optional .env file and then the process environment.
// The returned bool reports whether a .env file was found.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, dotenv, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Trivia.QuestionsPerPage <= 0 {
		cfg.Trivia.QuestionsPerPage = 10
	}
	return &cfg, dotenv, nil
}
