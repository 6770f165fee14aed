// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

const testSecret = "unit-test-secret-0123456789-ABCDEF"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AURORA_JWT_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false for default env")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want localhost:8080", cfg.ServerAddr())
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true without AURORA_REDIS_URL")
	}
}

func TestLoadProductionEnv(t *testing.T) {
	t.Setenv("AURORA_JWT_SECRET", testSecret)
	t.Setenv("AURORA_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production env")
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("AURORA_JWT_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a short secret")
	} else if !strings.Contains(err.Error(), "AURORA_JWT_SECRET") {
		t.Errorf("error %q does not name the variable", err)
	}
}

func TestLoadRejectsKnownWeakSecret(t *testing.T) {
	t.Setenv("AURORA_JWT_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a known default secret")
	}
}
