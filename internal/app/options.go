package service

import (
	"github.com/okian/tariff/internal/adapters/repository"
	"github.com/okian/tariff/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalogPath loads the element catalog from path instead of the embedded one.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithRulesetPath loads the ruleset from path instead of the embedded one.
func WithRulesetPath(path string) Option {
	return func(s *Service) {
		s.rulesetPath = path
	}
}

// WithCacheSize bounds the evaluation cache. Zero or less disables the bound.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		s.cacheSize = size
	}
}

// WithBatchWorkers sizes the pool used by EvaluateBatch. Zero or less means one
// worker per CPU.
func WithBatchWorkers(n int) Option {
	return func(s *Service) {
		s.batchWorkers = n
	}
}

// WithStore replaces the in-memory tariff store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
