package flex

import (
	"maps"
	"slices"
)

// flatRegion is one entry in the call-local working list. The allocated
// accumulator is the only mutable field; nothing here outlives the call.
type flatRegion struct {
	key       string // owning group key
	index     int    // position within an array group (0 for single groups)
	min       float64
	max       float64
	priority  float64
	share     float64
	allocated float64
}

// headroom returns how much the region may still grow.
func (f *flatRegion) headroom() float64 { return f.max - f.allocated }

// flatten normalizes the named groups into a flat working list. Group keys
// are visited in sorted order so the list, and with it every float
// accumulation downstream, is deterministic for identical inputs.
func flatten(groups map[string]Group) []flatRegion {
	n := 0
	for _, g := range groups {
		n += len(g.regions)
	}

	flat := make([]flatRegion, 0, n)
	for _, key := range slices.Sorted(maps.Keys(groups)) {
		for i, r := range groups[key].regions {
			flat = append(flat, flatRegion{
				key:      key,
				index:    i,
				min:      r.Min,
				max:      r.Max,
				priority: r.Priority,
				share:    r.Share,
			})
		}
	}
	return flat
}

// aggregate folds the working list back into the original group shape: the
// allocation of a group is the sum over its members. Every requested group
// key appears in the result, including empty groups (which get zero).
func aggregate(groups map[string]Group, flat []flatRegion) map[string]float64 {
	out := make(map[string]float64, len(groups))
	for key := range groups {
		out[key] = 0
	}
	for i := range flat {
		out[flat[i].key] += flat[i].allocated
	}
	return out
}
