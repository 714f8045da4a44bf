// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abhisek/fluently/internal/llm"
	"github.com/abhisek/fluently/internal/plangen"
	"github.com/abhisek/fluently/internal/store"
)

// Config holds all application configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string

	// DBPath is the SQLite event-log location.
	DBPath string

	// QuestionCount is the practice item target for generated plans.
	QuestionCount int

	// LLM holds provider selection and credentials.
	LLM llm.Config
}

// Load reads configuration from environment variables. LLM provider
// selection follows FLUENTLY_* vars first, then standard API key
// discovery.
func Load() (*Config, error) {
	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, err
		}
		llmCfg = discovered
	}

	cfg := &Config{
		Addr:          getEnv("FLUENTLY_ADDR", ":8080"),
		DBPath:        getEnv("FLUENTLY_DB", defaultDBPath()),
		QuestionCount: getEnvInt("FLUENTLY_QUESTION_COUNT", plangen.DefaultItems),
		LLM:           llmCfg,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all configuration fields are usable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("FLUENTLY_ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("FLUENTLY_DB cannot be empty")
	}
	if c.QuestionCount < plangen.MinItems || c.QuestionCount > plangen.MaxItems {
		return fmt.Errorf("FLUENTLY_QUESTION_COUNT must be between %d and %d", plangen.MinItems, plangen.MaxItems)
	}
	return nil
}

func defaultDBPath() string {
	p, err := store.DefaultDBPath()
	if err != nil {
		return "fluently.db"
	}
	return p
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
