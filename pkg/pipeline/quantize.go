package pipeline

import (
	"math"
	"sort"
)

// QuantizeLargestRemainder rounds a real-valued allocation to whole units
// whose sum equals the (rounded) total, using largest-remainder rounding:
// every value is floored, then the leftover units go to the values that
// lost the most, ties broken by key for determinism.
//
// Rendering backends usually need discrete units (columns, pixels); naive
// per-value rounding can drift off the total by several units. Note that
// adding the remainder unit can push a value at most one unit past a
// region ceiling; callers that need hard bounds after quantization should
// express them in whole units to begin with.
func QuantizeLargestRemainder(allocations map[string]float64, total float64) map[string]float64 {
	units := math.Round(total)

	type entry struct {
		key       string
		floor     float64
		remainder float64
	}

	entries := make([]entry, 0, len(allocations))
	var floorSum float64
	for key, v := range allocations {
		f := math.Floor(v)
		entries = append(entries, entry{key: key, floor: f, remainder: v - f})
		floorSum += f
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].remainder != entries[j].remainder {
			return entries[i].remainder > entries[j].remainder
		}
		return entries[i].key < entries[j].key
	})

	leftover := int(units - floorSum)
	out := make(map[string]float64, len(entries))
	for i, e := range entries {
		v := e.floor
		if i < leftover {
			v++
		}
		out[e.key] = v
	}
	return out
}
