package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"safeCast/internal/shared/normalization"
)

// ErrInvalidConfig wraps every value that fails strict parsing.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Security  SecurityConfig  `yaml:"security"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Batch     BatchConfig     `yaml:"batch"`
	Websocket WebsocketConfig `yaml:"websocket"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	Directory string `yaml:"directory"`
}

type SecurityConfig struct {
	JWTSecret    string `yaml:"jwtSecret"`
	JWTPublicKey string `yaml:"jwtPublicKey"`
}

type KafkaConfig struct {
	Enabled      bool     `yaml:"enabled"`
	Brokers      []string `yaml:"brokers"`
	GroupID      string   `yaml:"groupId"`
	RequestTopic string   `yaml:"requestTopic"`
	ResultTopic  string   `yaml:"resultTopic"`
}

type BatchConfig struct {
	MaxItems    int `yaml:"maxItems"`
	Concurrency int `yaml:"concurrency"`
}

type WebsocketConfig struct {
	SendBuffer            int `yaml:"sendBuffer"`
	CommandTimeoutSeconds int `yaml:"commandTimeoutSeconds"`
}

// CommandTimeout bounds a single coerce, classify or batch websocket command.
func (w WebsocketConfig) CommandTimeout() time.Duration {
	return time.Duration(w.CommandTimeoutSeconds) * time.Second
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server:  ServerConfig{Port: "8080"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Kafka: KafkaConfig{
			GroupID:      "safecast",
			RequestTopic: "coercion.requested",
			ResultTopic:  "coercion.results",
		},
		Batch:     BatchConfig{MaxItems: 1000, Concurrency: 8},
		Websocket: WebsocketConfig{SendBuffer: 16, CommandTimeoutSeconds: 10},
	}
}

// Load builds the configuration from CONFIG_FILE (optional YAML) and the
// process environment. Environment values win.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom is Load with an injectable environment lookup.
func LoadFrom(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path, ok := lookupTrimmed(lookup, "CONFIG_FILE"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}

	env := envReader{lookup: lookup}
	env.str("PORT", &cfg.Server.Port)
	env.str("LOG_LEVEL", &cfg.Logging.Level)
	env.str("LOG_FORMAT", &cfg.Logging.Format)
	env.str("LOG_DIRECTORY", &cfg.Logging.Directory)
	env.str("JWT_SECRET", &cfg.Security.JWTSecret)
	env.str("JWT_PUBLIC_KEY", &cfg.Security.JWTPublicKey)
	env.boolean("KAFKA_ENABLED", &cfg.Kafka.Enabled)
	env.list("KAFKA_BROKER", &cfg.Kafka.Brokers)
	env.list("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	env.str("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	env.str("KAFKA_REQUEST_TOPIC", &cfg.Kafka.RequestTopic)
	env.str("KAFKA_RESULT_TOPIC", &cfg.Kafka.ResultTopic)
	env.integer("BATCH_MAX_ITEMS", &cfg.Batch.MaxItems)
	env.integer("BATCH_CONCURRENCY", &cfg.Batch.Concurrency)
	env.integer("WS_SEND_BUFFER", &cfg.Websocket.SendBuffer)
	env.integer("WS_COMMAND_TIMEOUT", &cfg.Websocket.CommandTimeoutSeconds)
	if env.err != nil {
		return nil, env.err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Batch.MaxItems < 1 {
		errs = append(errs, fmt.Errorf("%w: batch max items must be positive", ErrInvalidConfig))
	}
	if c.Batch.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: batch concurrency must be positive", ErrInvalidConfig))
	}
	if c.Websocket.SendBuffer < 1 {
		errs = append(errs, fmt.Errorf("%w: websocket send buffer must be positive", ErrInvalidConfig))
	}
	if c.Websocket.CommandTimeoutSeconds < 1 {
		errs = append(errs, fmt.Errorf("%w: websocket command timeout must be positive", ErrInvalidConfig))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, fmt.Errorf("%w: kafka enabled without brokers", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *envReader) str(key string, dst *string) {
	if value, ok := lookupTrimmed(r.lookup, key); ok {
		*dst = value
	}
}

func (r *envReader) list(key string, dst *[]string) {
	value, ok := lookupTrimmed(r.lookup, key)
	if !ok {
		return
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*dst = out
}

func (r *envReader) integer(key string, dst *int) {
	value, ok := lookupTrimmed(r.lookup, key)
	if !ok {
		return
	}
	n, err := normalization.AsInt64(value)
	if err != nil {
		r.fail(key, err)
		return
	}
	*dst = int(n)
}

func (r *envReader) boolean(key string, dst *bool) {
	value, ok := lookupTrimmed(r.lookup, key)
	if !ok {
		return
	}
	b, err := normalization.AsBool(value)
	if err != nil {
		r.fail(key, err)
		return
	}
	*dst = b
}

func (r *envReader) fail(key string, err error) {
	r.err = errors.Join(r.err, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err))
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	value, ok := lookup(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
