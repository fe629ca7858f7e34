// Package timeouts provides centralized timeout values for the HTTP server
// and for handler work.
//
// Timeouts can be configured at startup using Configure(). If not configured,
// the defaults below are used.
//
//   - Ping: health checks
//   - Handler: the context deadline handlers put around store calls
//   - ReadHeader, Read, Write, Idle: http.Server limits
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing       = 2 * time.Second
	DefaultHandler    = 5 * time.Second
	DefaultReadHeader = 5 * time.Second
	DefaultRead       = 15 * time.Second
	DefaultWrite      = 30 * time.Second
	DefaultIdle       = 120 * time.Second
)

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping       time.Duration
	Handler    time.Duration
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

func defaults() Config {
	return Config{
		Ping:       DefaultPing,
		Handler:    DefaultHandler,
		ReadHeader: DefaultReadHeader,
		Read:       DefaultRead,
		Write:      DefaultWrite,
		Idle:       DefaultIdle,
	}
}

// Ping returns the timeout for health checks.
func Ping() time.Duration { return Current().Ping }

// Handler returns the deadline handlers apply to store calls.
func Handler() time.Duration { return Current().Handler }

// Configure sets custom timeout values. Zero values in the config are ignored,
// keeping the current (or default) values. Call during startup before the
// server starts.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	set := func(dst *time.Duration, v time.Duration) {
		if v > 0 {
			*dst = v
		}
	}
	set(&cur.Ping, cfg.Ping)
	set(&cur.Handler, cfg.Handler)
	set(&cur.ReadHeader, cfg.ReadHeader)
	set(&cur.Read, cfg.Read)
	set(&cur.Write, cfg.Write)
	set(&cur.Idle, cfg.Idle)
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}
