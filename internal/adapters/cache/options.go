// Package cache memoizes evaluation results keyed by input fingerprints.
package cache

type config struct {
	maxSize int
}

// Option applies a configuration option to a Cache.
type Option func(*config)

// WithMaxSize sets the maximum number of entries to keep in memory.
// If maxSize > 0: bounded mode with FIFO eviction.
// If maxSize <= 0: unbounded mode (no eviction, no size limit).
func WithMaxSize(maxSize int) Option {
	return func(c *config) {
		c.maxSize = maxSize
	}
}
