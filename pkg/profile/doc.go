// Package profile provides serialization types for distribution requests.
//
// This package defines the canonical wire format for flexline profiles, used
// for JSON files, TOML files, API requests, caching, and the profile store.
// It sits at the serialization boundary between external formats and the
// typed core in pkg/flex.
//
// # Core Types
//
//   - [Profile]: a named distribution request (total plus groups)
//   - [GroupSpec]: a single region or an ordered list of regions
//   - [RegionSpec]: one region with every field optional
//
// RegionSpec uses pointer fields so that an absent field is distinguishable
// from an explicit zero; absent fields take the core defaults (min 0,
// unbounded max, priority 0, share 1). A group key may map to either a
// region object or an array of region objects:
//
//	{
//	  "total": 1000,
//	  "groups": {
//	    "sidebar": {"min": 10, "max": 100, "priority": 2},
//	    "content": [
//	      {"min": 50, "max": 100, "priority": 2, "share": 2},
//	      {"min": 100, "max": 500, "priority": 1}
//	    ],
//	    "gutter": {}
//	  }
//	}
//
// The same shapes are accepted in TOML, where a group is either a table or
// an array of tables:
//
//	total = 1000
//
//	[groups.sidebar]
//	min = 10
//	max = 100
//	priority = 2
//
//	[[groups.content]]
//	min = 50
//	max = 100
//	priority = 2
//	share = 2
//
//	[[groups.content]]
//	min = 100
//	max = 500
//	priority = 1
//
//	[groups.gutter]
//
// # Common Operations
//
//	p, _ := profile.ReadProfileFile("layout.toml") // file → Profile
//	groups := p.FlexGroups()                       // Profile → flex.Group map
//	data, _ := profile.MarshalProfile(p)           // Profile → canonical JSON
//
// MarshalProfile output is canonical (sorted keys, stable region order) and
// is the input to cache keys and store documents.
//
// # Concurrency
//
// All functions are safe for concurrent use; Profile values are plain data.
package profile
