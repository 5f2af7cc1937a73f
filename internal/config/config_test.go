package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadFromEnvironment(t *testing.T) {
	cfg, err := LoadFrom(envOf(map[string]string{
		"PORT":               "9090",
		"LOG_LEVEL":          "debug",
		"KAFKA_ENABLED":      "TRUE",
		"KAFKA_BROKERS":      "a:9092, b:9092,,",
		"BATCH_MAX_ITEMS":    " 50 ",
		"BATCH_CONCURRENCY":  "2.0",
		"JWT_SECRET":         "s3cret",
		"WS_COMMAND_TIMEOUT": "3",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 50, cfg.Batch.MaxItems)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.Equal(t, "s3cret", cfg.Security.JWTSecret)
	assert.Equal(t, 3*time.Second, cfg.Websocket.CommandTimeout())
}

func TestLoadSingleBrokerFallback(t *testing.T) {
	cfg, err := LoadFrom(envOf(map[string]string{"KAFKA_BROKER": "solo:9092"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"solo:9092"}, cfg.Kafka.Brokers)

	cfg, err = LoadFrom(envOf(map[string]string{"KAFKA_BROKER": "solo:9092", "KAFKA_BROKERS": "x:1,y:2"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"x:1", "y:2"}, cfg.Kafka.Brokers)
}

func TestLoadRejectsLooseValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bool word":       {"KAFKA_ENABLED": "yes"},
		"fractional int":  {"BATCH_MAX_ITEMS": "1.5"},
		"text int":        {"WS_SEND_BUFFER": "lots"},
		"non positive":    {"BATCH_CONCURRENCY": "0"},
		"zero timeout":    {"WS_COMMAND_TIMEOUT": "0"},
		"kafka no broker": {"KAFKA_ENABLED": "1"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(envOf(env))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestLoadYAMLFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safecast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
kafka:
  enabled: true
  brokers: [k1:9092]
batch:
  maxItems: 10
`), 0o600))

	cfg, err := LoadFrom(envOf(map[string]string{
		"CONFIG_FILE":     path,
		"BATCH_MAX_ITEMS": "20",
	}))
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 20, cfg.Batch.MaxItems)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFrom(envOf(map[string]string{"CONFIG_FILE": filepath.Join(t.TempDir(), "missing.yaml")}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
