package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort int
	GRPCPort int
	DB       DBConfig
	Kafka    KafkaConfig
	Rates    RatesConfig

	LogLevel  string
	LogFormat string
}

// DBConfig holds database connection parameters.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// KafkaConfig holds Kafka broker configuration. An empty broker list
// disables event publishing.
type KafkaConfig struct {
	Brokers []string
}

// RatesConfig holds exchange-rate resolution and refresh parameters.
type RatesConfig struct {
	// ProviderURL is the external FX endpoint. Empty disables the provider;
	// "static" selects the built-in development table.
	ProviderURL string

	// RefreshSchedule is a cron expression for the daily refresh task.
	RefreshSchedule string

	CacheSize int
	CacheTTL  time.Duration
}

// Validate checks required configuration values.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "tailfire"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "tailfire_settlement"),
			SSLMode:  getEnv("DB_SSLMODE", "prefer"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS"),
		},
		Rates: RatesConfig{
			ProviderURL:     getEnv("RATE_PROVIDER_URL", "static"),
			RefreshSchedule: getEnv("RATE_REFRESH_SCHEDULE", "30 6 * * *"),
			CacheSize:       getEnvInt("RATE_CACHE_SIZE", 512),
			CacheTTL:        getEnvDuration("RATE_CACHE_TTL", time.Hour),
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
