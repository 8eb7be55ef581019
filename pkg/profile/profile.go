package profile

import (
	"fmt"
	"math"

	"github.com/matzehuels/flexline/pkg/flex"
)

// RegionSpec is the wire form of one region. Every field is optional; nil
// means "use the default" (min 0, unbounded max, priority 0, share 1).
type RegionSpec struct {
	Min      *float64 `json:"min,omitempty" toml:"min"`
	Max      *float64 `json:"max,omitempty" toml:"max"`
	Priority *float64 `json:"priority,omitempty" toml:"priority"`
	Share    *float64 `json:"share,omitempty" toml:"share"`
}

// Region converts the spec to a core region, substituting defaults for
// absent fields.
func (s RegionSpec) Region() flex.Region {
	r := flex.NewRegion()
	if s.Min != nil {
		r.Min = *s.Min
	}
	if s.Max != nil {
		r.Max = *s.Max
	}
	if s.Priority != nil {
		r.Priority = *s.Priority
	}
	if s.Share != nil {
		r.Share = *s.Share
	}
	return r
}

// GroupSpec is the wire form of one named group: either a single region or
// an ordered list of regions. The distinction is preserved across encode and
// decode so array groups round-trip as arrays.
type GroupSpec struct {
	regions []RegionSpec
	list    bool
}

// SingleSpec creates a group spec holding one region.
func SingleSpec(r RegionSpec) GroupSpec {
	return GroupSpec{regions: []RegionSpec{r}}
}

// ManySpec creates a group spec holding an ordered list of regions.
func ManySpec(rs ...RegionSpec) GroupSpec {
	return GroupSpec{regions: append([]RegionSpec(nil), rs...), list: true}
}

// IsList reports whether the group was declared as an array.
func (g GroupSpec) IsList() bool { return g.list }

// Regions returns a copy of the group's region specs, in order.
func (g GroupSpec) Regions() []RegionSpec { return append([]RegionSpec(nil), g.regions...) }

// Group converts the spec to a core group.
func (g GroupSpec) Group() flex.Group {
	if g.list {
		rs := make([]flex.Region, len(g.regions))
		for i, s := range g.regions {
			rs[i] = s.Region()
		}
		return flex.Many(rs...)
	}
	if len(g.regions) == 0 {
		return flex.Group{}
	}
	return flex.Single(g.regions[0].Region())
}

// Profile is a named distribution request: the groups to lay out and an
// optional default total. A zero Total means the caller must supply one.
type Profile struct {
	Name   string               `json:"name,omitempty" toml:"name"`
	Total  float64              `json:"total,omitempty" toml:"total"`
	Groups map[string]GroupSpec `json:"groups" toml:"groups"`
}

// FlexGroups converts the profile's groups to the core representation.
func (p *Profile) FlexGroups() map[string]flex.Group {
	out := make(map[string]flex.Group, len(p.Groups))
	for key, g := range p.Groups {
		out[key] = g.Group()
	}
	return out
}

// Validate checks the profile for structural problems before solving.
// Aggregate feasibility is left to the distributor.
func (p *Profile) Validate() error {
	if len(p.Groups) == 0 {
		return fmt.Errorf("profile must declare at least one group")
	}
	if math.IsNaN(p.Total) || math.IsInf(p.Total, 0) || p.Total < 0 {
		return fmt.Errorf("profile total must be a finite non-negative number, got %v", p.Total)
	}
	for key := range p.Groups {
		if key == "" {
			return fmt.Errorf("group keys must not be empty")
		}
	}
	return nil
}

// Solve runs the distributor on the profile with the given total. A zero
// total falls back to the profile's own Total.
func (p *Profile) Solve(total float64) (map[string]float64, error) {
	if total == 0 {
		total = p.Total
	}
	return flex.Distribute(total, p.FlexGroups())
}
