package flex

// Envelope returns the range of totals the groups can absorb: the sum of all
// region minima and the sum of all region maxima. Any region without a ceiling
// makes the upper bound +Inf. [Distribute] succeeds exactly for totals inside
// this range (within tolerance).
func Envelope(groups map[string]Group) (lo, hi float64) {
	flat := flatten(groups)
	for i := range flat {
		lo += flat[i].min
		hi += flat[i].max
	}
	return lo, hi
}

// Feasible reports whether the groups can absorb the given total.
func Feasible(total float64, groups map[string]Group) bool {
	flat := flatten(groups)
	return checkFeasible(flat, total, epsilonFor(total)) == nil
}
