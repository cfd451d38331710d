package ziptree

import (
	"log/slog"
	"time"
)

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger for codec operations.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) {
		c.logger = logger
	}
}

// WithProgress sets a callback to receive progress updates.
// The callback is invoked synchronously on the calling goroutine.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Codec) {
		c.progress = fn
	}
}

// WithClock sets the time source for entry timestamps written by Encode.
// Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(c *Codec) {
		c.clock = clock
	}
}

// WithLocation sets the location used to decode entry timestamps in Inspect.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Codec) {
		c.location = loc
	}
}

// WithMaxDepth limits how deeply a tree may be nested (default: 256).
// Set n to 0 to disable the limit.
func WithMaxDepth(n int) Option {
	return func(c *Codec) {
		if n < 0 {
			n = 0
		}
		c.maxDepth = n
	}
}

// WithMaxFileSize limits the decoded size of a single entry (default: 256MB).
// Set limit to 0 to disable the limit.
func WithMaxFileSize(limit uint64) Option {
	return func(c *Codec) {
		c.maxFileSize = limit
	}
}

// WithMaxEntries limits the number of entries an archive may declare
// (default: 65535). Set n to 0 to disable the limit.
func WithMaxEntries(n int) Option {
	return func(c *Codec) {
		if n < 0 {
			n = 0
		}
		c.maxEntries = n
	}
}

// WithVerifyChecksums controls whether Decode recomputes each entry's CRC-32
// and compares it with the central directory (default: true).
func WithVerifyChecksums(enabled bool) Option {
	return func(c *Codec) {
		c.verify = enabled
	}
}
