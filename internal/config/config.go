package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// DefaultBeachwatchURL is the public Beachwatch GeoJSON sites endpoint.
const DefaultBeachwatchURL = "https://api.beachwatch.nsw.gov.au/public/sites/geojson"

// Config holds all client and service settings, populated from environment variables.
type Config struct {
	BeachwatchURL  string
	RequestTimeout time.Duration
	UserAgent      string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka snapshot publishing.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables (and an optional .env
// file), applying defaults where unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("BEACHWATCH_TIMEOUT", "15s"))
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid BEACHWATCH_TIMEOUT")
	}

	cfg := &Config{
		BeachwatchURL:   sharedcfg.EnvOrDefault("BEACHWATCH_URL", DefaultBeachwatchURL),
		RequestTimeout:  timeout,
		UserAgent:       sharedcfg.EnvOrDefault("BEACHWATCH_USER_AGENT", "beachwatch-go/1.0"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "beachwatch-sites"),
	}

	if err := validateURL(cfg.BeachwatchURL); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

// ValidateKafka reports whether the Kafka settings are usable for publishing.
func (c *Config) ValidateKafka() error {
	if len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid BEACHWATCH_URL %q", raw)
	}
	return nil
}
