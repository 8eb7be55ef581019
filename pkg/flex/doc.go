// Package flex implements a one-axis constrained space distributor.
//
// Given a fixed total size and a set of named groups of regions, each region
// carrying a minimum, a maximum, a priority, and a growth share, [Distribute]
// computes a size per group such that the sizes sum to the total, every
// region stays within its bounds, and spare space is handed out tier by tier:
// all regions at a higher priority saturate before any lower-priority region
// grows beyond its minimum. Within a tier, growth is proportional to share,
// clamped at each region's own ceiling (max-min fairness with ceilings).
//
// # Model
//
//   - [Region]: one resizable unit with Min, Max, Priority, and Share.
//     Construct with [NewRegion] to get the defaults (min 0, unbounded max,
//     priority 0, share 1).
//   - [Group]: a named slot holding either a single region ([Single]) or an
//     ordered list of sub-regions ([Many]). Array groups model one logical
//     area split into parts, e.g. a content area with a fixed column and a
//     flexible column. The result only exposes the per-group total.
//   - Tier: all regions sharing one priority value, served together.
//
// # Algorithm
//
// Distribution runs in five stages: flatten the groups into a working list,
// check aggregate feasibility, seed every region at its minimum, water-fill
// the remaining budget across priority tiers in descending order, and fold
// the working list back into per-group sums.
//
// The per-tier fill is exact rather than iterative: each round either hands
// out the whole remaining budget proportionally, or saturates the members
// with the tightest headroom-per-share and redistributes among the rest. A
// tier of n regions therefore finishes in at most n rounds.
//
// # Errors
//
// [ErrInfeasible] is returned when the aggregate minima exceed the total or
// the aggregate maxima fall short of it. [ErrInvalidSpec] is returned for
// malformed individual regions (min above max, negative share, non-finite
// fields). Both are sentinels; there is never a partial result.
//
// # Concurrency
//
// Distribute is a pure function. All working state is local to the call, so
// concurrent invocations need no coordination.
package flex
