// Package config loads server configuration from an optional YAML file with
// environment variable overrides. Secrets (the Gemini key, the JWT secret,
// the owner password hash) are usually supplied via environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// DBPath is the SQLite database file path.
	DBPath string `yaml:"db_path"`

	Gemini GeminiConfig `yaml:"gemini"`
	Auth   AuthConfig   `yaml:"auth"`
}

// GeminiConfig configures the extraction service client.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// AuthConfig configures owner login and session tokens.
type AuthConfig struct {
	// PasswordHash is the bcrypt hash of the owner password; generate one
	// with the -hash-password flag.
	PasswordHash string `yaml:"password_hash"`

	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// Load reads the YAML file at path (skipped when path is empty or absent),
// applies environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:   ":8080",
		DBPath: "./data/lifeone.db",
		Auth:   AuthConfig{TokenTTL: 24 * time.Hour},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("config: gemini api key is required (GEMINI_API_KEY)")
	}
	if cfg.Auth.PasswordHash == "" {
		return nil, errors.New("config: owner password hash is required (LIFEONE_PASSWORD_HASH)")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("config: jwt secret is required (LIFEONE_JWT_SECRET)")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LIFEONE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("LIFEONE_PASSWORD_HASH"); v != "" {
		cfg.Auth.PasswordHash = v
	}
	if v := os.Getenv("LIFEONE_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("LIFEONE_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = d
		}
	}
}
