// Package pipeline provides the shared solve pipeline for flexline.
//
// The CLI and the HTTP service both answer the same question: given a
// profile and a total, what are the group sizes? This package centralizes
// that path so options handling, caching, quantization, and timing behave
// identically across entry points.
//
// # Usage
//
// Create a Runner and solve a profile:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//
//	result, err := runner.Solve(ctx, prof, pipeline.Options{Total: 1000})
//	if err != nil {
//	    // flex.ErrInfeasible, flex.ErrInvalidSpec, or a backend failure
//	}
//	fmt.Println(result.Allocations, result.CacheHit, result.Stats.SolveTime)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultCacheTTL is how long solved allocations stay cached. Results are
// deterministic, so the TTL only bounds storage growth.
const DefaultCacheTTL = 24 * time.Hour

// Options configures a solve. The zero value is usable: the profile's own
// total is used and results are cached but not rounded.
type Options struct {
	// Total overrides the profile's total when non-zero.
	Total float64 `json:"total,omitempty"`

	// Round quantizes the result to integers that still sum to the total
	// (largest-remainder rounding).
	Round bool `json:"round,omitempty"`

	// NoCache bypasses the result cache for this solve.
	NoCache bool `json:"no_cache,omitempty"`

	// Logger receives debug output. Defaults to a discarding logger.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults applies defaults. Idempotent.
func (o *Options) ValidateAndSetDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Result contains the outputs of a solve.
type Result struct {
	// Allocations maps each group key to its size.
	Allocations map[string]float64 `json:"allocations"`

	// Total is the total that was actually distributed.
	Total float64 `json:"total"`

	// CacheHit reports whether the result came from the cache.
	CacheHit bool `json:"cache_hit"`

	// Stats contains timing information.
	Stats Stats `json:"stats"`
}

// Stats contains solve timing.
type Stats struct {
	SolveTime time.Duration `json:"solve_time"`
}
