package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FAVICOND_CONFIG_ROOT", "/srv/ha")
	t.Setenv("FAVICOND_LOG_LEVEL", " DEBUG ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != "127.0.0.1:8123" {
		t.Fatalf("BindAddr = %q; want default", cfg.BindAddr)
	}
	if len(cfg.PortCandidates) != 2 {
		t.Fatalf("PortCandidates = %v; want 2 defaults", cfg.PortCandidates)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q; want debug", cfg.LogLevel)
	}
	if want := filepath.Join("/srv/ha", ".storage", "favicon.db"); cfg.DBPath != want {
		t.Fatalf("DBPath = %q; want %q", cfg.DBPath, want)
	}
	if want := filepath.Join("/srv/ha", "configuration.yaml"); cfg.SetupFile != want {
		t.Fatalf("SetupFile = %q; want %q", cfg.SetupFile, want)
	}
	if want := filepath.Join("/srv/ha", "www"); cfg.WWWDir() != want {
		t.Fatalf("WWWDir() = %q; want %q", cfg.WWWDir(), want)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FAVICOND_BIND_ADDR", "0.0.0.0:9000")
	t.Setenv("FAVICOND_PORT_CANDIDATES", "0.0.0.0:9001, 0.0.0.0:9002")
	t.Setenv("FAVICOND_PORT_AUTO_FALLBACK", "false")
	t.Setenv("FAVICOND_DB_PATH", "/tmp/x.db")
	t.Setenv("FAVICOND_HISTORY_MAX_SIZE_MB", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != "0.0.0.0:9000" || cfg.PortAutoFallback {
		t.Fatalf("cfg = %+v; want overridden bind addr and no fallback", cfg)
	}
	if len(cfg.PortCandidates) != 2 {
		t.Fatalf("PortCandidates = %v; want 2", cfg.PortCandidates)
	}
	if cfg.DBPath != "/tmp/x.db" {
		t.Fatalf("DBPath = %q; want /tmp/x.db", cfg.DBPath)
	}
	if cfg.HistoryMaxSizeMB != 1 {
		t.Fatalf("HistoryMaxSizeMB = %d; want clamp to 1", cfg.HistoryMaxSizeMB)
	}
}

func TestLoadRejectsBadBool(t *testing.T) {
	t.Setenv("FAVICOND_PORT_AUTO_FALLBACK", "maybe")
	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil error; want parse failure")
	}
}
