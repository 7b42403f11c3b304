package config

import (
	"os"
	"strings"
)

// Config holds all node configuration
type Config struct {
	// Off-chain index configuration; the index is disabled when empty
	DatabaseURL string

	// Kafka event stream configuration; disabled when no brokers are set
	KafkaBrokers []string
	KafkaTopic   string

	// Observability
	MetricsAddr string
	LogLevel    string

	// Account boundary for replay tooling
	BettingModerators []string
	KnownAccounts     []string

	// Environment: "development" or "production"
	Environment string
}

// Load reads configuration from the environment
func Load() *Config {
	return &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnvOrDefault("KAFKA_TOPIC", "scorebet.events"),
		MetricsAddr:       getEnvOrDefault("METRICS_ADDR", ":9090"),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		BettingModerators: splitList(os.Getenv("BETTING_MODERATORS")),
		KnownAccounts:     splitList(os.Getenv("KNOWN_ACCOUNTS")),
		Environment:       getEnvOrDefault("ENVIRONMENT", "development"),
	}
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
