// Package config loads service configuration from the environment.
// The resulting Config is passed explicitly to whatever needs it;
// there is no package-level state beyond the defaults below.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultModelPath = "./model/artifacts/gbrt_lambdarank.bin"
	defaultDataDir   = "./data"
	defaultPort      = 8084
)

type Config struct {
	Env       string
	Port      int
	ModelPath string
	DataDir   string
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	// a missing .env just means the environment is already set
	_ = godotenv.Load()

	cfg := &Config{
		Env:       os.Getenv("MENURANK_ENV"),
		Port:      defaultPort,
		ModelPath: getEnv("MODEL_PATH", defaultModelPath),
		DataDir:   getEnv("DATA_DIR", defaultDataDir),
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PORT %q: %w", raw, err)
		}
		cfg.Port = port
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) ProductsPath() string {
	return filepath.Join(c.DataDir, "raw", "products.csv")
}

func (c *Config) DailyStatsPath() string {
	return filepath.Join(c.DataDir, "raw", "daily_stats.csv")
}

func (c *Config) ExportsDir() string {
	return filepath.Join(c.DataDir, "exports")
}

func (c *Config) ReportsDir() string {
	return filepath.Join(c.DataDir, "reports")
}
