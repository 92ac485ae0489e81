package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the process settings. Precedence is flag > environment >
// config file > default; flags are bound in main with these values as
// defaults.
type Config struct {
	Addr         string `yaml:"addr"`
	DBPath       string `yaml:"db_path"`
	StaticDir    string `yaml:"static_dir"`
	DefaultOwner string `yaml:"default_owner"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:      ":8080",
		DBPath:    "data/pawhub.db",
		StaticDir: "web/dist",
	}
}

// Load builds the effective config: defaults, then the optional YAML file at
// path, then environment overrides. An empty path skips the file; a missing
// file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Addr = EnvOrDefault("PAWHUB_ADDR", cfg.Addr)
	cfg.DBPath = EnvOrDefault("PAWHUB_DB_PATH", cfg.DBPath)
	cfg.StaticDir = EnvOrDefault("PAWHUB_STATIC_DIR", cfg.StaticDir)
	cfg.DefaultOwner = EnvOrDefault("PAWHUB_DEFAULT_OWNER", cfg.DefaultOwner)
	return cfg, nil
}

// EnvOrDefault returns the environment variable value or fallback when it is empty.
func EnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
