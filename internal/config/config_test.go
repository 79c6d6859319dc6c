// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SAHAB_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/sahab.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/sahab.db")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "localhost:8080")
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.UseRedisCache() {
		t.Error("redis cache should be off by default")
	}
	if cfg.AIEnabled() {
		t.Error("AI translation should be off by default")
	}
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SAHAB_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short session secret")
	}
}

func TestLoad_RejectsKnownWeakSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SAHAB_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for known weak secret")
	}
}

func TestLoad_RejectsUnknownEnv(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SAHAB_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")
	setEnv(t, "SAHAB_ENV", "staging")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SAHAB_SESSION_SECRET", "custom-secret-key-32-bytes-long!")
	setEnv(t, "SAHAB_SERVER_PORT", "3000")
	setEnv(t, "SAHAB_ENV", "production")
	setEnv(t, "SAHAB_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "SAHAB_GEOIP_DB_PATH", "/data/GeoLite2-Country.mmdb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want 3000", cfg.ServerPort)
	}
	if cfg.IsDevelopment() {
		t.Error("production env reported as development")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() should be true when SAHAB_REDIS_URL is set")
	}
	if !cfg.GeoIPEnabled() {
		t.Error("GeoIPEnabled() should be true when SAHAB_GEOIP_DB_PATH is set")
	}
}
