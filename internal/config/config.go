package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultDBPath = "./dev.db"
	defaultPort   = "8080"
	defaultEnv    = "development"
)

// Config holds application configuration. Values come from an optional TOML
// file named by CASEWORK_CONFIG, then .env, then the process environment;
// later sources win.
type Config struct {
	DBPath           string `toml:"db_path"`
	Port             string `toml:"port"`
	Env              string `toml:"env"`
	LogLevel         string `toml:"log_level"`
	AutoMigrate      bool   `toml:"auto_migrate"`
	AutoSeed         bool   `toml:"auto_seed"`
	OrganizationName string `toml:"organization_name"`

	// Warnings lists non-fatal problems found while loading, for the caller
	// to log once a logger exists.
	Warnings []string `toml:"-"`
}

// IsDev reports whether the process runs in a local development environment.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == defaultEnv || c.Env == "dev"
}

// Load reads the config file, .env and environment variables and returns a
// populated Config.
func Load() (Config, error) {
	cfg := Config{
		DBPath:      defaultDBPath,
		Port:        defaultPort,
		Env:         defaultEnv,
		LogLevel:    "info",
		AutoMigrate: true,
		AutoSeed:    true,
	}

	if path := os.Getenv("CASEWORK_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	if err := loadDotEnv(".env"); err != nil {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("read .env: %v", err))
	}

	overrideString(&cfg.DBPath, "DB_PATH")
	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.Env, "APP_ENV")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.OrganizationName, "ORGANIZATION_NAME")
	if err := overrideBool(&cfg.AutoMigrate, "AUTO_MIGRATE"); err != nil {
		return Config{}, err
	}
	if err := overrideBool(&cfg.AutoSeed, "AUTO_SEED"); err != nil {
		return Config{}, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if !cfg.IsDev() && cfg.DBPath == defaultDBPath {
		cfg.Warnings = append(cfg.Warnings, "DB_PATH is not set; using "+defaultDBPath)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s does not exist", path)
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func overrideString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func overrideBool(dst *bool, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	*dst = b
	return nil
}
