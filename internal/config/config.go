package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for favicond.
type Config struct {
	BindAddr         string   `env:"FAVICOND_BIND_ADDR" envDefault:"127.0.0.1:8123"`
	PortCandidates   []string `env:"FAVICOND_PORT_CANDIDATES" envSeparator:"," envDefault:"127.0.0.1:8124,127.0.0.1:8125"`
	PortAutoFallback bool     `env:"FAVICOND_PORT_AUTO_FALLBACK" envDefault:"true"`

	// ConfigRoot is the instance configuration directory; /local/ maps to its www/.
	ConfigRoot string `env:"FAVICOND_CONFIG_ROOT" envDefault:"./config"`
	DBPath     string `env:"FAVICOND_DB_PATH"`
	SetupFile  string `env:"FAVICOND_SETUP_FILE"`

	HistoryDir       string `env:"FAVICOND_HISTORY_DIR"`
	HistoryMaxSizeMB int    `env:"FAVICOND_HISTORY_MAX_SIZE_MB" envDefault:"10"`

	// NotifyURL receives a plain-text POST per entry change; empty disables it.
	NotifyURL string `env:"FAVICOND_NOTIFY_URL"`

	LogLevel string `env:"FAVICOND_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"FAVICOND_LOG_FILE" envDefault:"logs/favicond.log"`
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	candidates := c.PortCandidates[:0]
	for _, addr := range c.PortCandidates {
		if addr = strings.TrimSpace(addr); addr != "" {
			candidates = append(candidates, addr)
		}
	}
	c.PortCandidates = candidates
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.ConfigRoot, ".storage", "favicon.db")
	}
	if c.SetupFile == "" {
		c.SetupFile = filepath.Join(c.ConfigRoot, "configuration.yaml")
	}
	if c.HistoryDir == "" {
		c.HistoryDir = filepath.Join(c.ConfigRoot, ".storage", "favicon_history")
	}
	if c.HistoryMaxSizeMB < 1 {
		c.HistoryMaxSizeMB = 1
	}
}

// WWWDir returns the directory served under /local/.
func (c *Config) WWWDir() string {
	return filepath.Join(c.ConfigRoot, "www")
}
