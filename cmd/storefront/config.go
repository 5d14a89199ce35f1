package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config собирается из флагов, переменные окружения имеют приоритет.
type Config struct {
	Endpoint        string        `env:"RUN_ADDRESS"`
	APIBaseURL      string        `env:"API_BASE_URL"`
	DSN             string        `env:"DATABASE_URI"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"error"`
	Env             string        `env:"ENV" envDefault:"production"`
	AuthSecretKey   string        `env:"AUTH_SECRET_KEY"`
	DefaultCurrency string        `env:"DEFAULT_CURRENCY" envDefault:"eur"`
	APITimeout      time.Duration `env:"API_TIMEOUT" envDefault:"0s"`
	CatalogTTL      time.Duration `env:"CATALOG_TTL" envDefault:"5m"`
	IdempotencyTTL  time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
	CheckoutIdleTTL time.Duration `env:"CHECKOUT_IDLE_TTL" envDefault:"30m"`
}

func NewConfig() (Config, error) {
	var config Config

	flag.StringVar(&config.Endpoint, "a", "localhost:8090", "address and port to run server")
	flag.StringVar(&config.APIBaseURL, "r", "http://localhost:8000/api", "storefront backend API base URL")
	flag.StringVar(&config.DSN, "d", "", "data source name for dashboard database, in-memory ledger if empty")
	flag.StringVar(&config.RedisAddr, "c", "", "redis address for idempotency keys, in-memory if empty")
	flag.Parse()

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if config.AuthSecretKey == "" && config.Env == "production" {
		log.Printf("WARNING: AUTH_SECRET_KEY is not set, bearer tokens are decoded without signature check\n")
	}

	return config, nil
}
