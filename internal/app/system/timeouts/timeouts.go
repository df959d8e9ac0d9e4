// Package timeouts provides centralized timeout values for the service's
// blocking operations.
//
// Values can be overridden at startup with Configure or ConfigureFromEnv.
// If neither is called the defaults apply.
//   - Ping: status-endpoint connectivity checks
//   - Connect: establishing the data-store client at startup
//   - Shutdown: disconnecting clients while the service stops
package timeouts

import (
	"os"
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing     = 2 * time.Second
	DefaultConnect  = 10 * time.Second
	DefaultShutdown = 15 * time.Second
)

var (
	mu       sync.RWMutex
	ping     = DefaultPing
	connect  = DefaultConnect
	shutdown = DefaultShutdown
)

// Ping returns the timeout for status-endpoint connectivity checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Connect returns the timeout for connecting the data-store client.
func Connect() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return connect
}

// Shutdown returns the timeout for tearing down clients.
func Shutdown() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return shutdown
}

// Config holds timeout configuration values.
// Zero values are ignored (current values are kept).
type Config struct {
	Ping     time.Duration
	Connect  time.Duration
	Shutdown time.Duration
}

// Configure sets custom timeout values. Call during startup, before the
// handler is built.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Connect > 0 {
		connect = cfg.Connect
	}
	if cfg.Shutdown > 0 {
		shutdown = cfg.Shutdown
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	connect = DefaultConnect
	shutdown = DefaultShutdown
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_CONNECT and
// TIMEOUT_SHUTDOWN (Go duration strings). Unset, unparsable or
// non-positive values are skipped.
//
// Returns the number of timeouts successfully configured from environment.
func ConfigureFromEnv() int {
	var cfg Config
	configured := 0
	for _, e := range []struct {
		name string
		dst  *time.Duration
	}{
		{"TIMEOUT_PING", &cfg.Ping},
		{"TIMEOUT_CONNECT", &cfg.Connect},
		{"TIMEOUT_SHUTDOWN", &cfg.Shutdown},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*e.dst = d
			configured++
		}
	}
	Configure(cfg)
	return configured
}

// Current returns the current timeout configuration.
// Useful for logging or debugging.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:     ping,
		Connect:  connect,
		Shutdown: shutdown,
	}
}
