package flex

import (
	"fmt"
	"math"
	"slices"
)

// Region describes one resizable unit along the axis.
//
// The zero value is not a usable region (its Max is below its Min once Min is
// set, and its Share is zero). Use [NewRegion] to start from the defaults and
// override individual fields with options.
type Region struct {
	Min      float64 // Lower size bound (default 0)
	Max      float64 // Upper size bound (default +Inf)
	Priority float64 // Tier; higher priorities are served first (default 0)
	Share    float64 // Relative growth weight within the tier (default 1)
}

// RegionOption overrides a single field of a default region.
type RegionOption func(*Region)

// WithMin sets the region's minimum size.
func WithMin(v float64) RegionOption { return func(r *Region) { r.Min = v } }

// WithMax sets the region's maximum size.
func WithMax(v float64) RegionOption { return func(r *Region) { r.Max = v } }

// WithPriority sets the region's priority tier. Priorities may repeat across
// groups and may be negative; equal values form one tier.
func WithPriority(v float64) RegionOption { return func(r *Region) { r.Priority = v } }

// WithShare sets the region's growth share. A share of zero pins the region
// at its minimum: it never receives spare space.
func WithShare(v float64) RegionOption { return func(r *Region) { r.Share = v } }

// NewRegion creates a region with the defaults (min 0, unbounded max,
// priority 0, share 1) and applies the given overrides.
func NewRegion(opts ...RegionOption) Region {
	r := Region{Min: 0, Max: math.Inf(1), Priority: 0, Share: 1}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// validate checks a single region for structural sanity. Aggregate sizing
// concerns (whether the bounds admit a given total) are checked separately.
func (r Region) validate() error {
	switch {
	case math.IsNaN(r.Min) || math.IsInf(r.Min, 0):
		return fmt.Errorf("%w: min must be finite, got %v", ErrInvalidSpec, r.Min)
	case r.Min < 0:
		return fmt.Errorf("%w: min must not be negative, got %v", ErrInvalidSpec, r.Min)
	case math.IsNaN(r.Max):
		return fmt.Errorf("%w: max must not be NaN", ErrInvalidSpec)
	case r.Max < r.Min:
		return fmt.Errorf("%w: max %v is below min %v", ErrInvalidSpec, r.Max, r.Min)
	case math.IsNaN(r.Share) || math.IsInf(r.Share, 0):
		return fmt.Errorf("%w: share must be finite, got %v", ErrInvalidSpec, r.Share)
	case r.Share < 0:
		return fmt.Errorf("%w: share must not be negative, got %v", ErrInvalidSpec, r.Share)
	case math.IsNaN(r.Priority) || math.IsInf(r.Priority, 0):
		return fmt.Errorf("%w: priority must be finite, got %v", ErrInvalidSpec, r.Priority)
	}
	return nil
}

// Group is a named slot in a distribution request: either a single region or
// an ordered list of sub-regions. It is an explicit tagged variant so that
// flattening and aggregation stay exhaustive; there is no runtime shape test.
//
// The zero value is an empty group that contributes nothing and receives a
// zero allocation. Use [Single] or [Many].
type Group struct {
	regions []Region
	many    bool
}

// Single creates a group holding one region.
func Single(r Region) Group {
	return Group{regions: []Region{r}}
}

// Many creates a group holding an ordered list of sub-regions. The result
// for the group is the sum of its members' allocations.
func Many(rs ...Region) Group {
	return Group{regions: slices.Clone(rs), many: true}
}

// IsMany reports whether the group was built from a region list.
func (g Group) IsMany() bool { return g.many }

// Regions returns a copy of the group's member regions, in order.
func (g Group) Regions() []Region { return slices.Clone(g.regions) }

// Len returns the number of member regions.
func (g Group) Len() int { return len(g.regions) }
