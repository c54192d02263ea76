package config

import (
	"os"
	"path/filepath"
	"time"
)

// Backend selects where tasks are persisted.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Config holds runtime settings for the ZeroTask CLI.
//
// Fields:
//   - Backend: "local" (SQLite only) or "remote" (tasks synced to a server).
//   - DataDir: directory holding the SQLite database and legacy data files.
//   - ServerEndpointAddr: base URL of the backend REST endpoint.
//   - RequestTimeout: per-request timeout for remote calls.
type Config struct {
	Backend            string
	DataDir            string
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendLocal
	c.DataDir = defaultDataDir()
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
}

// DatabasePath is the location of the client SQLite database within DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "zerotask.db")
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "zerotask")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
