package api

// Default handler limits.
const (
	defaultMaxBodyBytes     = 1 << 16
	defaultMaxQuizQuestions = 20
	defaultQuizQuestions    = 10
	defaultMaxBatchSheets   = 64
)

type config struct {
	maxBodyBytes     int64
	maxQuizQuestions int
	maxBatchSheets   int
}

// Option configures the Server.
type Option func(*config)

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithMaxQuizQuestions caps GET /quiz?count.
func WithMaxQuizQuestions(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxQuizQuestions = n
		}
	}
}

// WithMaxBatchSheets caps the sheets of one batch evaluation.
func WithMaxBatchSheets(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBatchSheets = n
		}
	}
}
