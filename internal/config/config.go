// Package config loads application configuration from a YAML file and
// CINELOG_* environment overrides via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// RepositoryKind identifies a repository backend.
type RepositoryKind string

const (
	KindLocal RepositoryKind = "local"
	KindAPI   RepositoryKind = "api"
)

// Config holds all application configuration
type Config struct {
	DevMode    bool             `mapstructure:"dev_mode"`
	API        APIConfig        `mapstructure:"api"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// APIConfig holds remote backend configuration
type APIConfig struct {
	BaseURL       string        `mapstructure:"base_url"`       // Collection root, e.g. https://api.example.com/v1
	Timeout       time.Duration `mapstructure:"timeout"`        // Per-request timeout
	RetryAttempts int           `mapstructure:"retry_attempts"` // Attempts before giving up
}

// RepositoryConfig holds backend selection inputs
type RepositoryConfig struct {
	Type       RepositoryKind `mapstructure:"type"`        // Explicit override: "local" or "api"
	ForceLocal bool           `mapstructure:"force_local"` // Dev-mode escape hatch
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // bbolt database file
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DevMode: false,
		API: APIConfig{
			Timeout:       30 * time.Second,
			RetryAttempts: 3,
		},
		Storage: StorageConfig{
			Path: defaultStoragePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

func defaultDataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinelog")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinelog")
	}
}

func defaultStoragePath() string {
	return filepath.Join(defaultDataDir(), "cinelog.db")
}

func defaultLogPath() string {
	return filepath.Join(defaultDataDir(), "cinelog.log")
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinelog")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinelog")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("CINELOG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration back to the config file.
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("dev_mode", cfg.DevMode)
	viper.Set("api.base_url", cfg.API.BaseURL)
	viper.Set("api.timeout", cfg.API.Timeout)
	viper.Set("api.retry_attempts", cfg.API.RetryAttempts)
	viper.Set("repository.type", string(cfg.Repository.Type))
	viper.Set("repository.force_local", cfg.Repository.ForceLocal)
	viper.Set("storage.path", cfg.Storage.Path)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
