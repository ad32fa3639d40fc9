// Copyright (c) 2025-2026 Python For All
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DataDir != "./data" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "./data")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("CacheTTL = %d, want 300", cfg.CacheTTL)
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true without BLOG_REDIS_URL")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "BLOG_DATA_DIR", "/srv/content")
	setEnv(t, "BLOG_SERVER_HOST", "0.0.0.0")
	setEnv(t, "BLOG_SERVER_PORT", "3000")
	setEnv(t, "BLOG_ENV", "production")
	setEnv(t, "BLOG_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "BLOG_CACHE_TTL", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DataDir != "/srv/content" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want 0.0.0.0:3000", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production env")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false with BLOG_REDIS_URL set")
	}
	if cfg.CacheTTLDuration() != time.Minute {
		t.Errorf("CacheTTLDuration() = %v, want 1m", cfg.CacheTTLDuration())
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	os.Clearenv()
	setEnv(t, "BLOG_SERVER_PORT", "99999")

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded with out-of-range port")
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	os.Clearenv()
	setEnv(t, "BLOG_RATE_LIMIT_RPS", "-1")

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded with negative rate limit")
	}
}
