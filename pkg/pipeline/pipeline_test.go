package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/flexline/pkg/cache"
	"github.com/matzehuels/flexline/pkg/flex"
	"github.com/matzehuels/flexline/pkg/profile"
)

func fp(v float64) *float64 { return &v }

func testProfile() profile.Profile {
	return profile.Profile{
		Name:  "editor",
		Total: 1000,
		Groups: map[string]profile.GroupSpec{
			"sidebar": profile.SingleSpec(profile.RegionSpec{Min: fp(10), Max: fp(100), Priority: fp(2)}),
			"content": profile.ManySpec(
				profile.RegionSpec{Min: fp(50), Max: fp(100), Priority: fp(2), Share: fp(2)},
				profile.RegionSpec{Min: fp(100), Max: fp(500), Priority: fp(1)},
			),
			"gutter": profile.SingleSpec(profile.RegionSpec{}),
		},
	}
}

func TestRunnerSolve(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Solve(context.Background(), testProfile(), Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if res.CacheHit {
		t.Error("first solve reported a cache hit with a null cache")
	}
	if res.Total != 1000 {
		t.Errorf("Total = %v, want 1000", res.Total)
	}
	want := map[string]float64{"sidebar": 100, "content": 600, "gutter": 300}
	for key, w := range want {
		if math.Abs(res.Allocations[key]-w) > 1e-6 {
			t.Errorf("%s = %v, want %v", key, res.Allocations[key], w)
		}
	}
}

func TestRunnerSolveTotalOverride(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Solve(context.Background(), testProfile(), Options{Total: 2000})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Total != 2000 {
		t.Errorf("Total = %v, want 2000", res.Total)
	}

	var sum float64
	for _, v := range res.Allocations {
		sum += v
	}
	if math.Abs(sum-2000) > 1e-6 {
		t.Errorf("sum = %v, want 2000", sum)
	}
}

func TestRunnerSolveCaches(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()
	ctx := context.Background()

	first, err := r.Solve(ctx, testProfile(), Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if first.CacheHit {
		t.Error("first solve reported a cache hit")
	}

	second, err := r.Solve(ctx, testProfile(), Options{})
	if err != nil {
		t.Fatalf("Solve (second): %v", err)
	}
	if !second.CacheHit {
		t.Error("second solve did not hit the cache")
	}
	for key, v := range first.Allocations {
		if second.Allocations[key] != v {
			t.Errorf("%s = %v from cache, want %v", key, second.Allocations[key], v)
		}
	}

	// Different options must miss.
	third, err := r.Solve(ctx, testProfile(), Options{Total: 999})
	if err != nil {
		t.Fatalf("Solve (third): %v", err)
	}
	if third.CacheHit {
		t.Error("solve with a different total hit the cache")
	}

	// NoCache bypasses both read and write.
	fourth, err := r.Solve(ctx, testProfile(), Options{NoCache: true})
	if err != nil {
		t.Fatalf("Solve (fourth): %v", err)
	}
	if fourth.CacheHit {
		t.Error("NoCache solve reported a cache hit")
	}
}

func TestRunnerSolveInfeasible(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	p := profile.Profile{
		Name:  "impossible",
		Total: 50,
		Groups: map[string]profile.GroupSpec{
			"a": profile.SingleSpec(profile.RegionSpec{Min: fp(30)}),
			"b": profile.SingleSpec(profile.RegionSpec{Min: fp(30)}),
		},
	}

	_, err := r.Solve(context.Background(), p, Options{})
	if !errors.Is(err, flex.ErrInfeasible) {
		t.Errorf("Solve = %v, want ErrInfeasible", err)
	}
}

func TestRunnerSolveRound(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	p := profile.Profile{
		Name:  "thirds",
		Total: 100,
		Groups: map[string]profile.GroupSpec{
			"a": profile.SingleSpec(profile.RegionSpec{}),
			"b": profile.SingleSpec(profile.RegionSpec{}),
			"c": profile.SingleSpec(profile.RegionSpec{}),
		},
	}

	res, err := r.Solve(context.Background(), p, Options{Round: true})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	var sum float64
	for key, v := range res.Allocations {
		if v != math.Trunc(v) {
			t.Errorf("%s = %v, want an integer", key, v)
		}
		sum += v
	}
	if sum != 100 {
		t.Errorf("sum = %v, want exactly 100", sum)
	}
}

func TestQuantizeLargestRemainder(t *testing.T) {
	tests := []struct {
		name  string
		in    map[string]float64
		total float64
		want  map[string]float64
	}{
		{
			name:  "Thirds",
			in:    map[string]float64{"a": 100.0 / 3, "b": 100.0 / 3, "c": 100.0 / 3},
			total: 100,
			// Equal remainders: ties break by key, so a and b get the spare units.
			want: map[string]float64{"a": 34, "b": 34, "c": 32},
		},
		{
			name:  "AlreadyIntegral",
			in:    map[string]float64{"a": 60, "b": 40},
			total: 100,
			want:  map[string]float64{"a": 60, "b": 40},
		},
		{
			name:  "LargestRemainderWins",
			in:    map[string]float64{"a": 10.9, "b": 10.1},
			total: 21,
			want:  map[string]float64{"a": 11, "b": 10},
		},
		{
			name:  "Empty",
			in:    map[string]float64{},
			total: 0,
			want:  map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuantizeLargestRemainder(tt.in, tt.total)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d keys, want %d", len(got), len(tt.want))
			}
			var sum float64
			for key, w := range tt.want {
				if got[key] != w {
					t.Errorf("%s = %v, want %v", key, got[key], w)
				}
				sum += got[key]
			}
			if sum != math.Round(tt.total) {
				t.Errorf("sum = %v, want %v", sum, math.Round(tt.total))
			}
		})
	}
}
