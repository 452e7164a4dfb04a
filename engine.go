package tastematch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/botirk38/tastematch/dataset"
	"github.com/botirk38/tastematch/metrics"
	"github.com/botirk38/tastematch/options"
	"github.com/botirk38/tastematch/similarity"
	"github.com/botirk38/tastematch/types"
	"github.com/rs/zerolog"
)

// itemNamespace prefixes cache keys of item-based engines.
const itemNamespace = "items:"

// Engine serves similarity, match and recommendation queries over a fixed
// snapshot of a ratings matrix, optionally caching computed lists.
//
// Cache keys start with a fingerprint of the snapshot, so engines over
// different matrices can share one backend without reading each other's
// results.
type Engine struct {
	ratings   types.Ratings
	backend   types.CacheBackend[string, []types.Scored]
	method    similarity.Method
	matches   int
	namespace string
	logger    zerolog.Logger
	metrics   *metrics.Recorder

	// derived is set on engines that borrow the backend of another engine.
	derived bool
}

// New creates an Engine with functional options.
func New(ratings types.Ratings, opts ...options.Option) (*Engine, error) {
	cfg := options.NewConfig()

	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e, err := NewEngine(ratings, cfg.Backend, cfg.Method)
	if err != nil {
		return nil, err
	}
	e.matches = cfg.Matches
	e.logger = cfg.Logger
	e.metrics = cfg.Metrics
	return e, nil
}

// NewEngine creates an engine over a copy of ratings. backend may be nil to
// disable caching.
func NewEngine(ratings types.Ratings, backend types.CacheBackend[string, []types.Scored], method similarity.Method) (*Engine, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %s", similarity.ErrUnknownMethod, method)
	}

	snapshot := dataset.Clone(ratings)
	return &Engine{
		ratings:   snapshot,
		backend:   backend,
		method:    method,
		matches:   options.DefaultMatchCount,
		namespace: snapshotNamespace(snapshot),
		logger:    zerolog.Nop(),
	}, nil
}

// Method returns the similarity method the engine uses.
func (e *Engine) Method() similarity.Method {
	return e.method
}

// Entities returns the entity identifiers in ascending order.
func (e *Engine) Entities() []string {
	return Entities(e.ratings)
}

// Ratings returns a copy of the matrix snapshot.
func (e *Engine) Ratings() types.Ratings {
	return dataset.Clone(e.ratings)
}

// Transposed returns an item-based engine: entities and items swap roles.
// It shares the cache backend under its own key namespace. The parent keeps
// ownership of the backend: Close on the returned engine does nothing.
func (e *Engine) Transposed() *Engine {
	return &Engine{
		ratings:   Transpose(e.ratings),
		derived:   true,
		backend:   e.backend,
		method:    e.method,
		matches:   e.matches,
		namespace: e.namespace + itemNamespace,
		logger:    e.logger.With().Bool("item_based", true).Logger(),
		metrics:   e.metrics,
	}
}

// Similarity scores entities a and b.
func (e *Engine) Similarity(ctx context.Context, a, b string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start := time.Now()
	score, err := Similarity(e.ratings, a, b, e.method)
	if err != nil {
		return 0, err
	}
	e.metrics.ObserveOperation(metrics.OpSimilarity, e.method.String(), start)
	return score, nil
}

// TopMatches returns the n entities most similar to entity. n <= 0 uses the
// engine's configured match count.
func (e *Engine) TopMatches(ctx context.Context, entity string, n int) ([]types.Scored, error) {
	if n <= 0 {
		n = e.matches
	}

	key := fmt.Sprintf("%stopmatches:%s:%d:%s", e.namespace, e.method, n, entity)
	return e.cached(ctx, metrics.OpTopMatches, key, entity, func() ([]types.Scored, error) {
		return TopMatches(e.ratings, entity, n, e.method)
	})
}

// Recommend returns predicted ratings for the items entity has not rated.
func (e *Engine) Recommend(ctx context.Context, entity string) ([]types.Scored, error) {
	key := fmt.Sprintf("%srecommend:%s:%s", e.namespace, e.method, entity)
	return e.cached(ctx, metrics.OpRecommend, key, entity, func() ([]types.Scored, error) {
		return Recommend(e.ratings, entity, e.method)
	})
}

// cached serves key from the backend or computes and stores it. Cache
// failures are logged and counted but never fail the call.
func (e *Engine) cached(ctx context.Context, op, key, entity string, compute func() ([]types.Scored, error)) ([]types.Scored, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	if e.backend != nil {
		value, found, err := e.backend.Get(ctx, key)
		switch {
		case err != nil:
			e.metrics.CacheError(op)
			e.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		case found:
			e.metrics.CacheHit(op)
			e.metrics.ObserveOperation(op, e.method.String(), start)
			e.logger.Debug().Str("key", key).Msg("cache hit")
			return copyScored(value), nil
		default:
			e.metrics.CacheMiss(op)
		}
	}

	result, err := compute()
	if err != nil {
		if errors.Is(err, ErrUnknownEntity) {
			e.logger.Debug().Str("entity", entity).Str("operation", op).Msg("unknown entity")
		}
		return nil, err
	}
	e.metrics.ObserveOperation(op, e.method.String(), start)

	if e.backend != nil {
		if err := e.backend.Set(ctx, key, copyScored(result)); err != nil {
			e.metrics.CacheError(op)
			e.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	e.logger.Debug().
		Str("operation", op).
		Str("entity", entity).
		Int("results", len(result)).
		Dur("elapsed", time.Since(start)).
		Msg("computed")

	return result, nil
}

func copyScored(s []types.Scored) []types.Scored {
	out := make([]types.Scored, len(s))
	copy(out, s)
	return out
}

// Flush clears every cached result in the backend, including those of other
// engines sharing it.
func (e *Engine) Flush(ctx context.Context) error {
	if e.backend == nil {
		return nil
	}
	return e.backend.Flush(ctx)
}

// Close closes the underlying backend. It is a no-op on engines returned by
// Transposed.
func (e *Engine) Close() error {
	if e.backend == nil || e.derived {
		return nil
	}
	return e.backend.Close()
}

// ScoredResult holds the result of an async TopMatches or Recommend call.
type ScoredResult struct {
	Scores []types.Scored
	Error  error
}

// TopMatchesAsync returns top matches asynchronously.
// Returns a channel that will receive the result when complete.
func (e *Engine) TopMatchesAsync(ctx context.Context, entity string, n int) <-chan ScoredResult {
	resultCh := make(chan ScoredResult, 1)
	go func() {
		defer close(resultCh)
		scores, err := e.TopMatches(ctx, entity, n)
		resultCh <- ScoredResult{Scores: scores, Error: err}
	}()
	return resultCh
}

// RecommendAsync computes recommendations asynchronously.
// Returns a channel that will receive the result when complete.
func (e *Engine) RecommendAsync(ctx context.Context, entity string) <-chan ScoredResult {
	resultCh := make(chan ScoredResult, 1)
	go func() {
		defer close(resultCh)
		scores, err := e.Recommend(ctx, entity)
		resultCh <- ScoredResult{Scores: scores, Error: err}
	}()
	return resultCh
}

// RecommendBatch computes recommendations for several entities concurrently.
// The first error encountered is returned.
func (e *Engine) RecommendBatch(ctx context.Context, entities []string) (map[string][]types.Scored, error) {
	type batchResult struct {
		entity string
		scores []types.Scored
		err    error
	}
	resultCh := make(chan batchResult, len(entities))

	for _, entity := range entities {
		go func(id string) {
			scores, err := e.Recommend(ctx, id)
			resultCh <- batchResult{entity: id, scores: scores, err: err}
		}(entity)
	}

	results := make(map[string][]types.Scored, len(entities))
	var firstErr error
	for range entities {
		result := <-resultCh
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		results[result.entity] = result.scores
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
