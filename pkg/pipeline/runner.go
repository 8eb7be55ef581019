package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flexline/pkg/cache"
	"github.com/matzehuels/flexline/pkg/profile"
)

// Runner executes solves with caching. Create with NewRunner; the zero
// value is not usable.
type Runner struct {
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching (NullCache), a
// nil keyer uses the default keyer, and a nil logger discards output.
func NewRunner(c cache.Cache, k cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	if logger == nil {
		opts := Options{}
		opts.ValidateAndSetDefaults()
		logger = opts.Logger
	}
	return &Runner{cache: c, keyer: k, logger: logger}
}

// Close releases the cache backend.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// Solve distributes the profile's groups across the effective total
// (opts.Total, falling back to the profile's own). Identical requests are
// answered from the cache.
func (r *Runner) Solve(ctx context.Context, p profile.Profile, opts Options) (Result, error) {
	opts.ValidateAndSetDefaults()

	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	total := opts.Total
	if total == 0 {
		total = p.Total
	}

	key, err := r.solveKey(p, total, opts.Round)
	if err != nil {
		return Result{}, err
	}

	if !opts.NoCache {
		if res, ok := r.lookup(ctx, key); ok {
			opts.Logger.Debug("solve served from cache", "total", total)
			res.CacheHit = true
			return res, nil
		}
	}

	start := time.Now()
	allocations, err := p.Solve(total)
	if err != nil {
		return Result{}, err
	}
	if opts.Round {
		allocations = QuantizeLargestRemainder(allocations, total)
	}

	res := Result{
		Allocations: allocations,
		Total:       total,
		Stats:       Stats{SolveTime: time.Since(start)},
	}
	opts.Logger.Debug("solved profile",
		"groups", len(allocations), "total", total, "took", res.Stats.SolveTime)

	if !opts.NoCache {
		r.remember(ctx, key, res)
	}
	return res, nil
}

// solveKey derives the cache key from the canonical profile JSON and the
// options that change the result.
func (r *Runner) solveKey(p profile.Profile, total float64, round bool) (string, error) {
	canonical, err := profile.MarshalProfile(p)
	if err != nil {
		return "", err
	}
	hash := cache.Hash(canonical)
	return r.keyer.SolveKey(hash, cache.SolveKeyOpts{Total: total, Round: round}), nil
}

// lookup fetches a cached result. Backend failures are logged and treated
// as misses; the cache must never fail a solve.
func (r *Runner) lookup(ctx context.Context, key string) (Result, bool) {
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("cache get failed", "err", err)
		return Result{}, false
	}
	if !ok {
		return Result{}, false
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		r.logger.Warn("cache entry corrupt, ignoring", "err", err)
		_ = r.cache.Delete(ctx, key)
		return Result{}, false
	}
	return res, true
}

// remember stores a result; failures are logged, not propagated.
func (r *Runner) remember(ctx context.Context, key string, res Result) {
	data, err := json.Marshal(res)
	if err != nil {
		r.logger.Warn("cache encode failed", "err", err)
		return
	}
	if err := r.cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
		r.logger.Warn("cache set failed", "err", err)
	}
}
