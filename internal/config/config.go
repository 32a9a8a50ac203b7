// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Transport   string
	Host        string
	Port        int
	DBPath      string
	LogMode     string
	CatalogPath string // empty = embedded catalog
}

func Defaults() *Config {
	return &Config{
		Transport: "http",
		Host:      "0.0.0.0",
		Port:      8011,
		DBPath:    "/data/diet-planner.db",
		LogMode:   "dev",
	}
}

// Load returns the defaults overridden by the .env file (if any) and then
// by DIET_PLANNER_* environment variables. Command-line flags are applied
// on top by main.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := Defaults()
	cfg.Transport = str("DIET_PLANNER_TRANSPORT", cfg.Transport)
	cfg.Host = str("DIET_PLANNER_HOST", cfg.Host)
	cfg.DBPath = str("DIET_PLANNER_DB_PATH", cfg.DBPath)
	cfg.LogMode = str("DIET_PLANNER_LOG_MODE", cfg.LogMode)
	cfg.CatalogPath = str("DIET_PLANNER_CATALOG", cfg.CatalogPath)

	if v := strings.TrimSpace(os.Getenv("DIET_PLANNER_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DIET_PLANNER_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Transport {
	case "http", "stdio":
	default:
		return fmt.Errorf("unsupported transport %q", c.Transport)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func str(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}
