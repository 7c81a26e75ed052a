package config

import (
	"fmt"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/joho/godotenv"
)

// Supported document store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LoggerConfig
	Seed     SeedConfig
	S3       S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string        `default:"0.0.0.0" usage:"HTTP listen host"`
	Port            int           `default:"8000" usage:"HTTP listen port"`
	ShutdownTimeout time.Duration `default:"30s" usage:"Maximum graceful shutdown duration"`
}

// DatabaseConfig holds document store configuration.
type DatabaseConfig struct {
	Driver          string        `default:"mongo" usage:"Document store driver: mongo, postgres or memory"`
	URL             string        `usage:"Connection URL of the document store"`
	Name            string        `default:"kuse" usage:"Database name (mongo)"`
	Timeout         time.Duration `default:"5s" usage:"Per-operation timeout"`
	MaxConnections  int           `default:"25" usage:"Maximum pool size"`
	MinConnections  int           `default:"2" usage:"Minimum pool size"`
	MaxConnLifetime time.Duration `default:"5m" usage:"Maximum connection lifetime (postgres)"`
}

// LoggerConfig holds logger-related configuration (LOG_LEVEL, LOG_FORMAT).
type LoggerConfig struct {
	Level  string `default:"info"`
	Format string `default:"json" usage:"json or console"`
}

// SeedConfig selects where the sample catalog comes from.
type SeedConfig struct {
	// File is a JSON (optionally gzipped) product list. Empty means the built-in catalog.
	File string `usage:"Sample catalog file, local path or S3 key"`
}

// S3Config holds AWS S3 configuration for the sample catalog.
type S3Config struct {
	Enabled bool   `default:"false"`
	Bucket  string `default:""`
	Region  string `default:"us-east-1"`
	Prefix  string `default:"catalog/" usage:"Key prefix within the bucket"`
}

// LoadEnv loads variables from .env files into the process environment.
// Missing files are not an error.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load loads configuration from environment variables and an optional config.yaml.
func Load() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags:          true,
		AllowUnknownEnvs:   true,
		AllowUnknownFields: true,
		Files:              []string{"config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("invalid database driver: %s (must be mongo, postgres or memory)", c.Database.Driver)
	}

	if c.Database.Driver == DriverMongo && c.Database.Name == "" {
		return fmt.Errorf("database name is required for the mongo driver")
	}

	if c.Database.Timeout <= 0 {
		return fmt.Errorf("database timeout must be positive")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 0 {
		return fmt.Errorf("database min connections cannot be negative")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Log.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
		if c.Seed.File == "" {
			return fmt.Errorf("seed file is required when S3 is enabled")
		}
	}

	return nil
}

// Configured reports whether a store connection URL was provided.
// The memory driver needs none.
func (c *DatabaseConfig) Configured() bool {
	return c.Driver == DriverMemory || c.URL != ""
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
