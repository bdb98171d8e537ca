// Package config loads server settings from the environment and command
// line flags. Flags take precedence over environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

const (
	defaultPort       = 8080
	defaultDBPath     = "./data/ottshare.db"
	defaultKafkaTopic = "ottshare.room.formed"
)

// Config holds the server settings.
type Config struct {
	Port     int
	DBPath   string
	LogLevel string

	// CredentialKey is the base64 sealing key for leader passwords.
	// Empty means an ephemeral key is generated at startup.
	CredentialKey string

	// KafkaBroker enables room formed events when set.
	KafkaBroker string
	KafkaTopic  string
}

// Load reads the environment, then parses args (without the program name).
func Load(args []string) (*Config, error) {
	port, err := envInt("PORT", defaultPort)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	fs := pflag.NewFlagSet("ottshare", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", port, "HTTP listen port (env PORT)")
	fs.StringVar(&cfg.DBPath, "db", getEnv("DB_PATH", defaultDBPath), "SQLite database path (env DB_PATH)")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "debug, info, warn or error (env LOG_LEVEL)")
	fs.StringVar(&cfg.KafkaBroker, "kafka-broker", getEnv("KAFKA_BROKER", ""), "Kafka broker for room events (env KAFKA_BROKER)")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", getEnv("KAFKA_TOPIC", defaultKafkaTopic), "Kafka topic for room events (env KAFKA_TOPIC)")
	// The sealing key is only read from the environment so it never shows up in ps output.
	cfg.CredentialKey = os.Getenv("CREDENTIAL_KEY")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path required")
	}
	if c.KafkaBroker != "" && c.KafkaTopic == "" {
		return fmt.Errorf("kafka topic required when a broker is set")
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
