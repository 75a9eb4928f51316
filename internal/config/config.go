// Package config loads server configuration from a config file, environment
// variables, and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration. FilesRoot is fixed for the
// process lifetime once loaded; every search is confined to it.
type Config struct {
	FilesRoot   string `mapstructure:"files_root"`
	LogLevel    string `mapstructure:"log_level"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Load reads configuration from file, environment variables, and defaults.
// The returned FilesRoot is absolute and verified to be an existing
// directory; callers treat a Load failure as fatal at startup.
func Load(configPath string) (*Config, error) {
	// A .env file in the working directory is a development convenience.
	_ = godotenv.Load()

	v := viper.New()

	// Defaults
	v.SetDefault("files_root", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "ripgrep-mcp"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ripgrep-mcp"))
		}
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: FILES_ROOT, LOG_LEVEL, METRICS_ADDR
	_ = v.BindEnv("files_root", "FILES_ROOT")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("metrics_addr", "METRICS_ADDR")

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.FilesRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving current directory: %w", err)
		}
		fmt.Fprintln(os.Stderr, "FILES_ROOT not set, using current directory")
		cfg.FilesRoot = cwd
	}

	root, err := ResolveRoot(cfg.FilesRoot)
	if err != nil {
		return nil, err
	}
	cfg.FilesRoot = root

	return cfg, nil
}

// ResolveRoot makes path absolute and verifies it names an existing
// directory. Used at startup for the configured root and for command-line
// overrides of it.
func ResolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving files root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("files root directory does not exist: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("files root is not a directory: %s", abs)
	}

	return abs, nil
}
