package flex

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

var (
	// ErrInfeasible is returned by [Distribute] when the aggregate bounds
	// cannot meet the requested total: the sum of minima exceeds it, or the
	// sum of maxima falls short of it. There is never a best-effort result.
	ErrInfeasible = errors.New("infeasible: region bounds cannot meet the requested total")

	// ErrInvalidSpec is returned by [Distribute] when an individual region is
	// malformed (min above max, negative share, non-finite fields) or the
	// total itself is not a finite non-negative number. This concerns single
	// regions only and is never conflated with ErrInfeasible.
	ErrInvalidSpec = errors.New("invalid region spec")
)

// relEpsilon is the relative floating tolerance for the distributor. The
// effective epsilon scales with the magnitude of the total so that very large
// totals do not terminate early and very small ones do not over-iterate.
const relEpsilon = 1e-9

// epsilonFor returns the absolute tolerance used for a given total.
func epsilonFor(total float64) float64 {
	if m := math.Abs(total); m > 1 {
		return relEpsilon * m
	}
	return relEpsilon
}

// Distribute splits total across the named groups and returns the size of
// each group. Sizes respect every region's [Min, Max] bounds, sum to total
// (within floating tolerance), and grow proportionally by share within
// priority tiers, higher tiers saturating before lower tiers receive
// anything beyond their minima.
//
// Returns [ErrInvalidSpec] for malformed input and [ErrInfeasible] when the
// aggregate bounds cannot meet the total. On error the result map is nil.
func Distribute(total float64, groups map[string]Group) (map[string]float64, error) {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: total must be finite, got %v", ErrInvalidSpec, total)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: total must not be negative, got %v", ErrInvalidSpec, total)
	}

	flat := flatten(groups)
	for i := range flat {
		if err := flat[i].validateAt(); err != nil {
			return nil, err
		}
	}

	eps := epsilonFor(total)
	if err := checkFeasible(flat, total, eps); err != nil {
		return nil, err
	}

	// Seed every region at its minimum; only the surplus is distributed.
	var totalMin float64
	for i := range flat {
		flat[i].allocated = flat[i].min
		totalMin += flat[i].min
	}

	if remaining := total - totalMin; remaining > eps {
		distributeTiers(flat, remaining, eps)
	}

	return aggregate(groups, flat), nil
}

// validateAt validates the region behind a flat record, naming the group and
// member index in the error.
func (f *flatRegion) validateAt() error {
	r := Region{Min: f.min, Max: f.max, Priority: f.priority, Share: f.share}
	if err := r.validate(); err != nil {
		return fmt.Errorf("group %q[%d]: %w", f.key, f.index, err)
	}
	return nil
}

// checkFeasible verifies that the aggregate bounds admit the total. An
// unbounded max on any region makes the aggregate ceiling infinite.
func checkFeasible(flat []flatRegion, total, eps float64) error {
	var totalMin, totalMax float64
	for i := range flat {
		totalMin += flat[i].min
		totalMax += flat[i].max
	}
	if totalMin > total+eps {
		return fmt.Errorf("%w: minima sum to %v, total is %v", ErrInfeasible, totalMin, total)
	}
	if totalMax < total-eps {
		return fmt.Errorf("%w: maxima sum to %v, total is %v", ErrInfeasible, totalMax, total)
	}
	return nil
}

// distributeTiers water-fills budget across priority tiers in descending
// order. Budget a tier cannot absorb flows to the next tier; whatever the
// lowest tier leaves behind is floating noise (or headroom held exclusively
// by zero-share regions) and is discarded.
func distributeTiers(flat []flatRegion, budget, eps float64) {
	tiers := make(map[float64][]int)
	for i := range flat {
		tiers[flat[i].priority] = append(tiers[flat[i].priority], i)
	}

	prios := slices.SortedFunc(maps.Keys(tiers), func(a, b float64) int { return cmp.Compare(b, a) })
	for _, p := range prios {
		if budget <= eps {
			return
		}
		budget = fillTier(flat, tiers[p], budget, eps)
	}
}

// fillTier distributes budget across one tier and returns the unconsumed
// remainder. Each round either spends the whole budget proportionally by
// share, or saturates the members with the tightest headroom-per-share at
// their ceiling and redistributes among the rest. A round saturates at least
// one member, so the loop finishes within the tier size; the cap only guards
// against floating round-off.
func fillTier(flat []flatRegion, tier []int, budget, eps float64) float64 {
	maxRounds := 2*len(tier) + 2

	for round := 0; round < maxRounds && budget > eps; round++ {
		// Active set: strict headroom and a positive share. Members with
		// min == max never enter; zero-share members are skipped outright
		// rather than being fed a 0/0 ratio.
		var active []int
		var activeShare float64
		for _, i := range tier {
			if flat[i].share > 0 && flat[i].allocated < flat[i].max {
				active = append(active, i)
				activeShare += flat[i].share
			}
		}
		if activeShare <= 0 {
			break
		}

		// Tightest fill ratio: the per-share growth at which the first
		// member hits its ceiling.
		limit := math.Inf(1)
		for _, i := range active {
			if r := flat[i].headroom() / flat[i].share; r < limit {
				limit = r
			}
		}

		ratio := budget / activeShare
		if ratio <= limit {
			// Everyone has room for its proportional slice. Apply all
			// increases simultaneously and finish the tier.
			var given float64
			for _, i := range active {
				inc := math.Min(ratio*flat[i].share, flat[i].headroom())
				flat[i].allocated += inc
				given += inc
			}
			budget -= given
			if given <= eps {
				break
			}
			continue
		}

		// Grow everyone by the tightest ratio, pinning the limiting members
		// exactly at their maxima so they leave the active set.
		var given float64
		for _, i := range active {
			inc := limit * flat[i].share
			if head := flat[i].headroom(); head-inc <= eps {
				inc = head
				flat[i].allocated = flat[i].max
			} else {
				flat[i].allocated += inc
			}
			given += inc
		}
		budget -= given
	}

	return math.Max(budget, 0)
}
