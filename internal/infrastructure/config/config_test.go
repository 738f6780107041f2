package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := Load()

	assert.Equal(t, 8090, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, ":8090", cfg.HTTPAddr())
	assert.Equal(t, BackendMemory, cfg.CatalogBackend)
	assert.Equal(t, 11.0, cfg.Engine.FloatingRate)
	assert.Equal(t, int64(100), cfg.Engine.GroupingTolerance)
	assert.Equal(t, 30, cfg.Engine.MaxTenureYears)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Empty(t, cfg.Kafka.Brokers)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "18090")
	t.Setenv("KPR_FLOATING_RATE", "9.5")
	t.Setenv("KPR_GROUPING_TOLERANCE", "250")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("GRPC_REFLECTION", "true")
	t.Setenv("DB_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, 18090, cfg.HTTPPort)
	assert.Equal(t, 9.5, cfg.Engine.FloatingRate)
	assert.Equal(t, int64(250), cfg.Engine.GroupingTolerance)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.True(t, cfg.GRPCReflection)
	assert.Equal(t, 5432, cfg.DB.Port)
}

func TestConfig_Validate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_PASSWORD", "")
	base := Load()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"postgres without password", func(c *Config) { c.CatalogBackend = BackendPostgres }, "DB_PASSWORD"},
		{"postgres with password", func(c *Config) {
			c.CatalogBackend = BackendPostgres
			c.DB.Password = "secret"
		}, ""},
		{"unknown backend", func(c *Config) { c.CatalogBackend = "sqlite" }, "CATALOG_BACKEND"},
		{"negative floating rate", func(c *Config) { c.Engine.FloatingRate = -1 }, "KPR_FLOATING_RATE"},
		{"zero floating rate", func(c *Config) { c.Engine.FloatingRate = 0 }, ""},
		{"negative tolerance", func(c *Config) { c.Engine.GroupingTolerance = -1 }, "KPR_GROUPING_TOLERANCE"},
		{"zero max tenure", func(c *Config) { c.Engine.MaxTenureYears = 0 }, "KPR_MAX_TENURE_YEARS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
