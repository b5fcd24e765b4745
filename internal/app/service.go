// Package service wires the tariff domain into the operations the HTTP API
// and the CLI call.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/tariff/internal/adapters/cache"
	"github.com/okian/tariff/internal/adapters/mq/queue"
	"github.com/okian/tariff/internal/adapters/mq/worker"
	"github.com/okian/tariff/internal/adapters/repository"
	"github.com/okian/tariff/internal/domain/bonus"
	"github.com/okian/tariff/internal/domain/catalog"
	"github.com/okian/tariff/internal/domain/legality"
	"github.com/okian/tariff/internal/domain/quiz"
	"github.com/okian/tariff/internal/domain/rules"
	"github.com/okian/tariff/internal/domain/tariff"
	"github.com/okian/tariff/pkg/logger"
	"github.com/okian/tariff/pkg/metrics"
)

const defaultCacheSize = 4096

// Service implements the API dependencies for the tariff system.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog   *catalog.InMemoryCatalog
	ruleset   rules.Ruleset
	evaluator *tariff.Evaluator
	cache     *cache.Cache[tariff.Evaluation]
	store     repository.Store

	// Configuration
	catalogPath  string
	rulesetPath  string
	cacheSize    int
	batchWorkers int

	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheSize: defaultCacheSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the catalog and ruleset and builds the evaluator.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting tariff service...")

	c, err := s.loadCatalog()
	if err != nil {
		return err
	}
	rs, err := s.loadRuleset()
	if err != nil {
		return err
	}

	s.catalog = c
	s.ruleset = rs
	s.evaluator = tariff.NewEvaluator(c, rs)
	s.cache = cache.New[tariff.Evaluation](cache.WithMaxSize(s.cacheSize))
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}

	metrics.UpdateCatalogElements(c.Len())
	metrics.UpdateSavedTariffs(s.store.Count(ctx))

	s.started = true
	s.logger.Info(ctx, "tariff service started",
		logger.String("catalogVersion", c.Version()),
		logger.Int("elements", c.Len()),
		logger.String("rulesetVersion", rs.Version),
		logger.Int("cacheSize", s.cacheSize),
	)
	return nil
}

func (s *Service) loadCatalog() (*catalog.InMemoryCatalog, error) {
	if s.catalogPath == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.LoadFile(s.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	return c, nil
}

func (s *Service) loadRuleset() (rules.Ruleset, error) {
	if s.rulesetPath == "" {
		return rules.Default(), nil
	}
	rs, err := rules.LoadFile(s.rulesetPath)
	if err != nil {
		return rules.Ruleset{}, fmt.Errorf("%w: %w", ErrLoadRuleset, err)
	}
	return rs, nil
}

// Stop marks the service as stopped. Saved tariffs are kept in the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "tariff service stopped")
}

// running returns the evaluator or ErrNotStarted.
func (s *Service) running() (*tariff.Evaluator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.evaluator, nil
}

// ValidatePasses checks the repetition rules over both passes.
func (s *Service) ValidatePasses(ctx context.Context, pass1, pass2 legality.Pass, lang string) (legality.Result, error) {
	ev, err := s.running()
	if err != nil {
		return legality.Result{}, err
	}

	res := ev.Checker().ValidatePasses(pass1, pass2, legality.ParseLanguage(lang))
	metrics.RecordValidation(res.IsLegal)
	if !res.IsLegal {
		s.logger.Debug(ctx, "illegal passes",
			logger.Any("pass1", res.PerPass[0].BadIndices),
			logger.Any("pass2", res.PerPass[1].BadIndices),
		)
	}
	return res, nil
}

// ComputeBonuses derives per-slot bonuses from the slot values of one pass.
func (s *Service) ComputeBonuses(_ context.Context, values [bonus.PassLength]float64, actx bonus.AthleteContext) (bonus.Result, error) {
	ev, err := s.running()
	if err != nil {
		return bonus.Result{}, err
	}
	res := ev.Calculator().ComputePassBonuses(values, actx)
	metrics.RecordBonusesAwarded(res.Count())
	return res, nil
}

// Evaluate renders a full sheet. Results are memoized on the normalized sheet.
func (s *Service) Evaluate(ctx context.Context, sheet tariff.Sheet) (tariff.Evaluation, error) {
	ev, err := s.running()
	if err != nil {
		return tariff.Evaluation{}, err
	}

	key := cache.Fingerprint(sheet.Key()...)
	if cached, ok := s.cache.Get(key); ok {
		metrics.RecordCacheHit()
		return cached, nil
	}
	metrics.RecordCacheMiss()

	start := time.Now()
	out := ev.Evaluate(sheet)
	metrics.RecordEvaluationLatency(float64(time.Since(start).Microseconds()) / 1000)

	s.cache.Put(key, out)
	metrics.UpdateCacheEntries(s.cache.Len())

	metrics.RecordEvaluation(out.Legality.IsLegal)
	illegal, awarded := 0, 0
	for i, p := range out.Passes {
		if len(out.Legality.PerPass[i].BadIndices) > 0 {
			illegal++
		}
		for _, slot := range p.Slots {
			if slot.Bonus != nil && !slot.Illegal {
				awarded++
			}
		}
	}
	metrics.RecordIllegalPasses(illegal)
	metrics.RecordBonusesAwarded(awarded)

	s.logger.Debug(ctx, "evaluated sheet",
		logger.String("athlete", sheet.Athlete),
		logger.Bool("legal", out.Legality.IsLegal),
		logger.Float64("total", out.Total),
	)
	return out, nil
}

// EvaluateBatch renders sheets concurrently on a worker pool. Results keep the
// order of sheets. The first failing sheet fails the whole batch.
func (s *Service) EvaluateBatch(ctx context.Context, sheets []tariff.Sheet) ([]tariff.Evaluation, error) {
	if _, err := s.running(); err != nil {
		return nil, err
	}
	metrics.RecordBatch()
	if len(sheets) == 0 {
		return []tariff.Evaluation{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(len(sheets)))
	for i, sheet := range sheets {
		if err := q.Enqueue(ctx, queue.Job{Index: i, Sheet: sheet}); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBatch, err)
		}
	}
	if err := q.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBatch, err)
	}

	results := make(chan worker.Result, len(sheets))
	workers := s.batchWorkers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	pool := worker.NewPool(min(workers, len(sheets)), q, s, results)
	pool.Start(ctx)
	defer func() {
		if err := pool.Shutdown(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn(ctx, "batch pool shutdown failed", logger.Error(err))
		}
	}()
	if err := pool.Wait(ctx); err != nil {
		return nil, err
	}
	close(results)

	out := make([]tariff.Evaluation, len(sheets))
	for r := range results {
		if r.Err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBatch, r.Err)
		}
		out[r.Index] = r.Evaluation
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "evaluated batch",
		logger.Int("sheets", len(sheets)),
		logger.Int("workers", pool.Size()),
	)
	return out, nil
}

// SaveTariff evaluates sheet and stores it. An empty id inserts a new record.
func (s *Service) SaveTariff(ctx context.Context, id string, sheet tariff.Sheet) (repository.Record, error) {
	out, err := s.Evaluate(ctx, sheet)
	if err != nil {
		return repository.Record{}, err
	}

	rec, err := s.store.Save(ctx, repository.Record{
		ID:         id,
		Athlete:    sheet.Athlete,
		Sheet:      sheet,
		Evaluation: out,
	})
	if err != nil {
		metrics.RecordErrorByComponent("repository", "save")
		return repository.Record{}, err
	}

	metrics.UpdateSavedTariffs(s.store.Count(ctx))
	s.logger.Info(ctx, "saved tariff",
		logger.String("id", rec.ID),
		logger.String("athlete", rec.Athlete),
	)
	return rec, nil
}

// GetTariff returns a saved tariff.
func (s *Service) GetTariff(ctx context.Context, id string) (repository.Record, error) {
	if _, err := s.running(); err != nil {
		return repository.Record{}, err
	}
	return s.store.Get(ctx, id)
}

// ListTariffs returns saved tariffs of athlete, newest first. Empty lists all.
func (s *Service) ListTariffs(ctx context.Context, athlete string) ([]repository.Record, error) {
	if _, err := s.running(); err != nil {
		return nil, err
	}
	return s.store.List(ctx, athlete)
}

// DeleteTariff removes a saved tariff.
func (s *Service) DeleteTariff(ctx context.Context, id string) error {
	if _, err := s.running(); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	metrics.UpdateSavedTariffs(s.store.Count(ctx))
	return nil
}

// Elements returns the catalog ordered by id.
func (s *Service) Elements(_ context.Context) ([]catalog.Element, error) {
	if _, err := s.running(); err != nil {
		return nil, err
	}
	return s.catalog.All(), nil
}

// Element returns one catalog element.
func (s *Service) Element(_ context.Context, id string) (catalog.Element, error) {
	if _, err := s.running(); err != nil {
		return catalog.Element{}, err
	}
	e, ok := s.catalog.Lookup(id)
	if !ok {
		return catalog.Element{}, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	return e, nil
}

// Quiz draws count questions over the catalog, deterministic for seed.
func (s *Service) Quiz(_ context.Context, count int, seed int64) ([]quiz.Question, error) {
	if _, err := s.running(); err != nil {
		return nil, err
	}
	qs, err := quiz.Generate(s.catalog, count, seed)
	if err != nil {
		return nil, err
	}
	metrics.RecordQuizGenerated()
	return qs, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   s.started,
		"cacheSize": s.cacheSize,
	}

	if s.started {
		hits, misses := s.cache.Stats()
		savedTariffs := s.store.Count(context.Background())

		stats["catalogVersion"] = s.catalog.Version()
		stats["elements"] = s.catalog.Len()
		stats["rulesetVersion"] = s.ruleset.Version
		stats["cacheEntries"] = s.cache.Len()
		stats["cacheHits"] = hits
		stats["cacheMisses"] = misses
		stats["savedTariffs"] = savedTariffs

		metrics.UpdateSavedTariffs(savedTariffs)
		metrics.UpdateCacheEntries(s.cache.Len())
	}

	metrics.UpdateSystemMetrics()
	return stats
}
