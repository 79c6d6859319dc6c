// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinSessionSecretLength is the minimum required length for the session
// secret. The CSRF layer requires a 32-byte key.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"SAHAB_DB_PATH" envDefault:"./data/sahab.db"`
	SessionSecret string `env:"SAHAB_SESSION_SECRET,required"`
	ServerHost    string `env:"SAHAB_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SAHAB_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"SAHAB_ENV" envDefault:"development"`
	LogLevel      string `env:"SAHAB_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"SAHAB_UPLOADS_DIR" envDefault:"./uploads"`

	// Cache configuration
	RedisURL     string `env:"SAHAB_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"SAHAB_CACHE_PREFIX" envDefault:"sahab:"`  // Redis key prefix
	CacheTTL     int    `env:"SAHAB_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"SAHAB_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// GeoIP configuration
	GeoIPDBPath string `env:"SAHAB_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// AI-assisted translation (optional)
	OpenAIAPIKey string `env:"SAHAB_OPENAI_API_KEY"`
	OpenAIModel  string `env:"SAHAB_OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Seeding configuration
	DoSeed bool `env:"SAHAB_DO_SEED" envDefault:"false"` // Seed demo content on startup
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// AIEnabled returns true if AI-assisted translation is configured.
func (c Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SAHAB_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("SAHAB_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !strings.EqualFold(cfg.Env, "development") && !strings.EqualFold(cfg.Env, "production") {
		return nil, fmt.Errorf("SAHAB_ENV must be development or production, got %q", cfg.Env)
	}

	return cfg, nil
}
