package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, 2*time.Second, cfg.PaymentLatency)
	assert.Equal(t, 25, cfg.ETAStartMinutes)
	assert.Equal(t, time.Minute, cfg.ETAInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("STORAGE_DRIVER", "bbolt")
	t.Setenv("BOLT_PATH", "/tmp/x.db")
	t.Setenv("PAYMENT_LATENCY", "500ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "bbolt", cfg.StorageDriver)
	assert.Equal(t, 500*time.Millisecond, cfg.PaymentLatency)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestLoad_InvalidInterval(t *testing.T) {
	t.Setenv("ETA_INTERVAL", "0s")

	_, err := Load()
	assert.ErrorContains(t, err, "ETA_INTERVAL")
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{PostgresHost: "db", PostgresPort: 5433, PostgresUser: "u", PostgresPassword: "p", PostgresDB: "app", PostgresSSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=app sslmode=disable", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", cfg.PostgresDSN())
}
