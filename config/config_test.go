package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	errors "cash-kiosk/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, k, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, k)

	assert.Equal(t, "cash-kiosk", cfg.Application)
	assert.Equal(t, "GCash", cfg.Provider)
	assert.True(t, cfg.Gateway.Enabled)
	assert.Equal(t, "https://formspree.io/f/YOUR_FORMSPREE_ID", cfg.Gateway.Endpoint())
	assert.Equal(t, 15*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, uint32(5), cfg.Gateway.Breaker.ConsecutiveFailures)
	assert.Equal(t, 30*time.Second, cfg.Gateway.Breaker.OpenTimeout)
	assert.Equal(t, "Asia/Manila", cfg.Receipt.Timezone)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Mongo.Enabled)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := []byte("provider: \"Maya\"\ngateway:\n  timeout: \"3s\"\nreceipt:\n  timezone: \"UTC\"\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("KIOSK_FORM_ID", "abc123")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Maya", cfg.Provider)
	assert.Equal(t, 3*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, "https://formspree.io/f/abc123", cfg.Gateway.Endpoint())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "cash-kiosk", cfg.Application, "defaults survive a partial file")
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{
		Provider: "Paypal",
		Gateway:  Gateway{Enabled: true},
		Receipt:  Receipt{Timezone: "Mars/Olympus"},
		Mongo:    Mongo{Enabled: true},
		Kafka:    Kafka{Enabled: true},
	}

	err := cfg.Validate()
	require.Error(t, err)

	var ve *errors.ValidationErrors
	require.True(t, errors.As(err, &ve))
	for _, field := range []string{
		"application", "logger.level", "provider", "gateway.base_url", "gateway.form_id",
		"gateway.timeout", "receipt.timezone", "mongo.uri", "mongo.database", "kafka.brokers", "kafka.topic",
	} {
		_, ok := ve.Get(field)
		assert.True(t, ok, field)
	}
}

func TestConfig_ValidateReconciler(t *testing.T) {
	cfg, _, err := Load("")
	require.NoError(t, err)

	err = cfg.ValidateReconciler()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo.enabled")
	assert.Contains(t, err.Error(), "kafka.enabled")

	cfg.Mongo.Enabled = true
	cfg.Kafka.Enabled = true
	assert.NoError(t, cfg.ValidateReconciler())
}
