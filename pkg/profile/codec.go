package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// UnmarshalJSON accepts either a region object or an array of region objects
// for a group, preserving which shape was used.
func (g *GroupSpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty group value")
	}

	switch trimmed[0] {
	case '[':
		var rs []RegionSpec
		if err := json.Unmarshal(trimmed, &rs); err != nil {
			return err
		}
		*g = GroupSpec{regions: rs, list: true}
		return nil
	case '{':
		var r RegionSpec
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return err
		}
		*g = SingleSpec(r)
		return nil
	default:
		return fmt.Errorf("group must be a region object or an array of region objects")
	}
}

// MarshalJSON emits a single region as an object and an array group as an
// array, so profiles round-trip shape-faithfully.
func (g GroupSpec) MarshalJSON() ([]byte, error) {
	if g.list {
		return json.Marshal(g.regions)
	}
	if len(g.regions) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(g.regions[0])
}

// UnmarshalTOML accepts either a table or an array of tables for a group.
func (g *GroupSpec) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case map[string]any:
		r, err := regionFromTOML(val)
		if err != nil {
			return err
		}
		*g = SingleSpec(r)
		return nil
	case []map[string]any:
		rs := make([]RegionSpec, len(val))
		for i, m := range val {
			r, err := regionFromTOML(m)
			if err != nil {
				return err
			}
			rs[i] = r
		}
		*g = GroupSpec{regions: rs, list: true}
		return nil
	case []any:
		rs := make([]RegionSpec, len(val))
		for i, item := range val {
			m, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("group array member %d is not a table", i)
			}
			r, err := regionFromTOML(m)
			if err != nil {
				return err
			}
			rs[i] = r
		}
		*g = GroupSpec{regions: rs, list: true}
		return nil
	default:
		return fmt.Errorf("group must be a table or an array of tables, got %T", v)
	}
}

// regionFromTOML builds a RegionSpec from a decoded TOML table. TOML numbers
// arrive as int64 or float64 depending on how they were written.
func regionFromTOML(m map[string]any) (RegionSpec, error) {
	var r RegionSpec
	for key, raw := range m {
		f, ok := tomlNumber(raw)
		if !ok {
			return RegionSpec{}, fmt.Errorf("region field %q must be a number, got %T", key, raw)
		}
		v := f
		switch key {
		case "min":
			r.Min = &v
		case "max":
			r.Max = &v
		case "priority":
			r.Priority = &v
		case "share":
			r.Share = &v
		default:
			return RegionSpec{}, fmt.Errorf("unknown region field %q", key)
		}
	}
	return r, nil
}

func tomlNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// UnmarshalProfile parses a JSON profile.
func UnmarshalProfile(data []byte) (Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("unmarshal profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// UnmarshalProfileTOML parses a TOML profile.
func UnmarshalProfileTOML(data []byte) (Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("unmarshal profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// MarshalProfile serializes a profile to canonical, pretty-printed JSON.
// Map keys are emitted in sorted order, so the output is stable and usable
// as a cache-key input.
func MarshalProfile(p Profile) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// ReadProfileFile reads a profile from a .json or .toml file, picking the
// codec by extension.
func ReadProfileFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return UnmarshalProfileTOML(data)
	case ".json":
		return UnmarshalProfile(data)
	default:
		return Profile{}, fmt.Errorf("unsupported profile format %q (use .json or .toml)", filepath.Ext(path))
	}
}

// WriteProfileFile writes a profile to a JSON file.
func WriteProfileFile(p Profile, path string) error {
	data, err := MarshalProfile(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
