// Package config defines service configuration and its loader.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// CatalogPath points at an element catalog YAML; empty uses the embedded one.
	CatalogPath string `koanf:"catalog_path"`

	// RulesetPath points at a ruleset YAML; empty uses the embedded one.
	RulesetPath string `koanf:"ruleset_path"`

	// CacheSize bounds the evaluation cache. Zero disables the bound.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"gt=0"`

	// MaxQuizQuestions caps GET /quiz?count.
	MaxQuizQuestions int `koanf:"max_quiz_questions" validate:"gt=0"`

	// MaxBatchSheets caps the sheets of one POST /tariffs/evaluate/batch.
	MaxBatchSheets int `koanf:"max_batch_sheets" validate:"gt=0"`

	// BatchWorkers sizes the batch evaluation pool. Zero means one per CPU.
	BatchWorkers int `koanf:"batch_workers" validate:"gte=0"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		CacheSize:        4096,
		MaxBodyBytes:     1 << 16,
		MaxQuizQuestions: 20,
		MaxBatchSheets:   64,
	}
}
