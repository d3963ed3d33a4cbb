package uci

import (
	"io"
	"log/slog"
	"maps"
	"time"
)

// Config describes how to start one engine process.
type Config struct {
	// Path to the engine binary. Empty means FindExecutable's search.
	Path string

	// ConfigFile is passed to the engine as --config=<file> when set.
	ConfigFile string

	// Args are appended after --config.
	Args []string

	// Env is added to the current environment of the engine process.
	Env []string

	// Options are sent with setoption after the handshake, on top of
	// DefaultOptions.
	Options map[string]string

	// LineCeiling bounds the lines read per command. Zero means
	// DefaultLineCeiling.
	LineCeiling int

	// QuitTimeout bounds the wait for the engine to exit after quit. Zero
	// means DefaultQuitTimeout.
	QuitTimeout time.Duration

	// Stderr receives the engine's standard error. Nil discards it.
	Stderr io.Writer

	// Logger receives protocol traffic at debug level. Nil discards it.
	Logger *slog.Logger
}

// Key identifies clients that may share one process.
type Key struct {
	Path       string
	ConfigFile string
}

// Key returns the pool key for c.
func (c Config) Key() Key {
	return Key{Path: c.Path, ConfigFile: c.ConfigFile}
}

// options converts c into client options.
func (c Config) options() []Option {
	opts := []Option{WithOptions(c.Options)}
	if c.LineCeiling > 0 {
		opts = append(opts, WithLineCeiling(c.LineCeiling))
	}
	if c.Logger != nil {
		opts = append(opts, WithLogger(c.Logger))
	}
	return opts
}

func (c Config) quitTimeout() time.Duration {
	if c.QuitTimeout > 0 {
		return c.QuitTimeout
	}
	return DefaultQuitTimeout
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	lineCeiling int
	logger      *slog.Logger
	options     map[string]string
	closer      func() error
}

func defaultClientOptions() clientOptions {
	return clientOptions{
		lineCeiling: DefaultLineCeiling,
		logger:      discardLogger,
		options:     maps.Clone(DefaultOptions),
	}
}

// WithLineCeiling sets the number of lines read per command before a
// timeout result. Values below 1 are ignored.
func WithLineCeiling(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.lineCeiling = n
		}
	}
}

// WithLogger sets the logger for protocol traffic.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOptions adds engine options applied after the handshake. Entries
// override DefaultOptions; an empty value removes a default.
func WithOptions(opts map[string]string) Option {
	return func(o *clientOptions) {
		for k, v := range opts {
			if v == "" {
				delete(o.options, k)
				continue
			}
			o.options[k] = v
		}
	}
}

// withCloser runs fn once when the client is closed, after quit is sent.
func withCloser(fn func() error) Option {
	return func(o *clientOptions) {
		o.closer = fn
	}
}
