package semmapper

import (
	"runtime"
	"time"
)

// Option configures the invocation engine.
type Option func(*Options)

// Options holds all configuration shared by the engine and its
// collaborators.
type Options struct {
	// HTTPTimeout bounds a single transport call.
	HTTPTimeout time.Duration

	// UserAgent is sent on description fetches and operation calls.
	UserAgent string

	// DocumentCacheSize bounds the parsed-description LRU.
	DocumentCacheSize int

	// ScanCacheSize bounds the memoized response-scan LRU.
	ScanCacheSize int

	// WorkerCount is the number of workers used for batch invocation.
	WorkerCount int

	// LogLevel selects the logger verbosity ("debug", "info", "warn",
	// "error", "none").
	LogLevel string
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		HTTPTimeout:       30 * time.Second,
		UserAgent:         "semprofile-mapper/" + Version,
		DocumentCacheSize: 128,
		ScanCacheSize:     256,
		WorkerCount:       runtime.NumCPU(),
		LogLevel:          "info",
	}
}

// WithHTTPTimeout sets the per-call transport timeout.
// Use 0 for no timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HTTPTimeout = d
	}
}

// WithUserAgent sets the User-Agent header for outgoing requests.
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		if ua != "" {
			o.UserAgent = ua
		}
	}
}

// WithDocumentCacheSize sets the parsed-description cache size.
func WithDocumentCacheSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.DocumentCacheSize = size
		}
	}
}

// WithScanCacheSize sets the response-scan cache size.
func WithScanCacheSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.ScanCacheSize = size
		}
	}
}

// WithWorkerCount sets the number of workers for batch invocation.
// Defaults to runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// WithLogLevel sets the logger verbosity.
func WithLogLevel(level string) Option {
	return func(o *Options) {
		o.LogLevel = level
	}
}
