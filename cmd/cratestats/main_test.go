package main

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CRATESTATS_DATABASE_URL", "/tmp/crates.duckdb")
	t.Setenv("CRATESTATS_PORT", "8080")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DatabaseURL != "/tmp/crates.duckdb" {
		t.Errorf("DatabaseURL = %q, want /tmp/crates.duckdb", cfg.DatabaseURL)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Addr != "127.0.0.1:8080" {
		t.Errorf("Addr = %q, want 127.0.0.1:8080", cfg.Addr)
	}
	if cfg.QueryTimeout != 30*time.Second {
		t.Errorf("QueryTimeout = %v, want 30s", cfg.QueryTimeout)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("CRATESTATS_DATABASE_URL", "")
	t.Setenv("CRATESTATS_PORT", "8080")

	_, err := loadConfig("")
	if err == nil || !strings.Contains(err.Error(), "CRATESTATS_DATABASE_URL") {
		t.Errorf("loadConfig without database url: err = %v, want mention of CRATESTATS_DATABASE_URL", err)
	}
}

func TestLoadConfigRequiresPort(t *testing.T) {
	t.Setenv("CRATESTATS_DATABASE_URL", "/tmp/crates.duckdb")
	t.Setenv("CRATESTATS_PORT", "")

	_, err := loadConfig("")
	if err == nil || !strings.Contains(err.Error(), "CRATESTATS_PORT") {
		t.Errorf("loadConfig without port: err = %v, want mention of CRATESTATS_PORT", err)
	}
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	t.Setenv("CRATESTATS_DATABASE_URL", "/tmp/crates.duckdb")
	t.Setenv("CRATESTATS_PORT", "70000")

	if _, err := loadConfig(""); err == nil {
		t.Error("loadConfig accepted out-of-range port")
	}
}

func TestInheritedListenerAbsent(t *testing.T) {
	t.Setenv("LISTEN_FDS", "")

	l, err := inheritedListener()
	if err != nil {
		t.Fatalf("inheritedListener: %v", err)
	}
	if l != nil {
		t.Error("inheritedListener returned a listener with no LISTEN_FDS set")
	}
}

func TestInheritedListenerRejectsGarbage(t *testing.T) {
	t.Setenv("LISTEN_FDS", "zero")

	if _, err := inheritedListener(); err == nil {
		t.Error("inheritedListener accepted a non-numeric LISTEN_FDS")
	}
}
