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

	assert.Equal(t, DefaultBeachwatchURL, cfg.BeachwatchURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "beachwatch-go/1.0", cfg.UserAgent)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "beachwatch-sites", cfg.KafkaTopic)
	assert.NoError(t, cfg.ValidateKafka())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("BEACHWATCH_URL", "http://localhost:9000/sites/geojson")
	t.Setenv("BEACHWATCH_TIMEOUT", "3s")
	t.Setenv("BEACHWATCH_USER_AGENT", "test-agent")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-sites")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/sites/geojson", cfg.BeachwatchURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "test-agent", cfg.UserAgent)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sites", cfg.KafkaTopic)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	for _, v := range []string{"bad", "0s", "-5s"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("BEACHWATCH_TIMEOUT", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "BEACHWATCH_TIMEOUT")
		})
	}
}

func TestLoad_InvalidURL(t *testing.T) {
	for _, v := range []string{"not a url", "ftp://example.com/geojson", "/relative/path"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("BEACHWATCH_URL", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "BEACHWATCH_URL")
		})
	}
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestValidateKafka(t *testing.T) {
	cfg := &Config{KafkaBrokers: []string{"localhost:9092"}}
	err := cfg.ValidateKafka()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_TOPIC")

	cfg = &Config{KafkaTopic: "sites"}
	err = cfg.ValidateKafka()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
