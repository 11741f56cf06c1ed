// Package config loads server configuration from an optional YAML file and
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	DB  DBConfig  `yaml:"db"`
	Log LogConfig `yaml:"log"`
}

// DBConfig selects the backing store. An empty path keeps all state in
// memory for the lifetime of the process.
type DBConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate validates the log configuration.
func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
	)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return c.Log.Validate()
}

// Load reads configuration from an optional YAML file and environment
// variables. Environment variables win over the file.
func Load() (Config, error) {
	cfg := Config{
		DB:  DBConfig{Path: "planora.db"},
		Log: LogConfig{Level: "info"},
	}

	if path := os.Getenv("PLANORA_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath, ok := os.LookupEnv("PLANORA_DB_PATH"); ok {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("PLANORA_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
