package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Catalog backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	// CatalogGroupID is the consumer group that listens for catalog updates.
	// Every instance needs its own group so each one drops its local cache.
	CatalogGroupID string
}

type EngineConfig struct {
	FloatingRate      float64
	GroupingTolerance int64
	MaxTenureYears    int
}

type Config struct {
	GRPCPort       int
	HTTPPort       int
	LogLevel       string
	LogFormat      string
	CatalogBackend string
	DB             DatabaseConfig
	Redis          RedisConfig
	Kafka          KafkaConfig
	Engine         EngineConfig
	RateLimit      int
	JWTSecret      string
	OTLPEndpoint   string
	GRPCReflection bool
	ServiceName    string
}

// Validate reports the first impossible setting.
func (c Config) Validate() error {
	switch c.CatalogBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DB.Password == "" {
			return errors.New("DB_PASSWORD environment variable is required for the postgres catalog")
		}
	default:
		return fmt.Errorf("CATALOG_BACKEND must be %q or %q, got %q", BackendMemory, BackendPostgres, c.CatalogBackend)
	}
	if c.Engine.FloatingRate < 0 {
		return fmt.Errorf("KPR_FLOATING_RATE must not be negative, got %v", c.Engine.FloatingRate)
	}
	if c.Engine.GroupingTolerance < 0 {
		return fmt.Errorf("KPR_GROUPING_TOLERANCE must not be negative, got %d", c.Engine.GroupingTolerance)
	}
	if c.Engine.MaxTenureYears < 1 {
		return fmt.Errorf("KPR_MAX_TENURE_YEARS must be at least 1, got %d", c.Engine.MaxTenureYears)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must not be negative, got %d", c.RateLimit)
	}
	return nil
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first; variables already set win.
func Load() Config {
	_ = godotenv.Load() //nolint:errcheck // the file is optional

	hostname, _ := os.Hostname()

	return Config{
		GRPCPort:       getEnvInt("GRPC_PORT", 9090),
		HTTPPort:       getEnvInt("HTTP_PORT", 8090),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		CatalogBackend: getEnv("CATALOG_BACKEND", BackendMemory),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "khaya"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "khaya_kpr"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:        getEnvList("KAFKA_BROKERS"),
			Topic:          getEnv("KAFKA_TOPIC", "kpr.events"),
			CatalogGroupID: getEnv("KAFKA_CATALOG_GROUP", "kprd-catalog-"+hostname),
		},
		Engine: EngineConfig{
			FloatingRate:      getEnvFloat("KPR_FLOATING_RATE", 11.0),
			GroupingTolerance: int64(getEnvInt("KPR_GROUPING_TOLERANCE", 100)),
			MaxTenureYears:    getEnvInt("KPR_MAX_TENURE_YEARS", 30),
		},
		RateLimit:      getEnvInt("RATE_LIMIT", 50),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		ServiceName:    "kprd",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
