package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Build   BuildConfig
	Content ContentConfig
	App     AppConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type BuildConfig struct {
	OutDir       string
	ManifestPath string // empty disables incremental builds
	Concurrency  int
	// BrokenLinks overrides onBrokenLinks from site.yaml when set.
	BrokenLinks string
}

type ContentConfig struct {
	// Dir is read from disk when set; otherwise the embedded content is used.
	Dir string
}

type AppConfig struct {
	Environment string
	LogLevel    string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", ""),
		},
		Build: BuildConfig{
			OutDir:       getEnv("OUT_DIR", "build"),
			ManifestPath: getEnv("BUILD_MANIFEST", ".cache/build.db"),
			Concurrency:  getEnvAsInt("BUILD_CONCURRENCY", 8),
			BrokenLinks:  getEnv("ON_BROKEN_LINKS", ""),
		},
		Content: ContentConfig{
			Dir: getEnv("CONTENT_DIR", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Server.Port)
	}

	if c.Build.OutDir == "" {
		return fmt.Errorf("OUT_DIR is required")
	}

	if c.Build.Concurrency < 1 {
		return fmt.Errorf("BUILD_CONCURRENCY must be at least 1, got %d", c.Build.Concurrency)
	}

	switch c.Build.BrokenLinks {
	case "", "throw", "warn", "ignore":
	default:
		return fmt.Errorf("ON_BROKEN_LINKS must be throw, warn or ignore, got %q", c.Build.BrokenLinks)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
