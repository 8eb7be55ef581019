package flex

import (
	"errors"
	"math"
	"testing"
)

const testTol = 1e-6

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		groups  map[string]Group
		want    map[string]float64
		wantErr error
	}{
		{
			name:  "AllDefaults",
			total: 100,
			groups: map[string]Group{
				"a": Single(NewRegion()),
				"b": Single(NewRegion()),
			},
			want: map[string]float64{"a": 50, "b": 50},
		},
		{
			name:  "EditorLayout",
			total: 1000,
			groups: map[string]Group{
				"spaceBefore": Single(NewRegion(WithMin(10), WithMax(100), WithPriority(2))),
				"content": Many(
					NewRegion(WithMin(50), WithMax(100), WithPriority(2), WithShare(2)),
					NewRegion(WithMin(100), WithMax(500), WithPriority(1)),
				),
				"spaceAfter": Single(NewRegion()),
			},
			want: map[string]float64{"spaceBefore": 100, "content": 600, "spaceAfter": 300},
		},
		{
			name:  "InfeasibleMinima",
			total: 50,
			groups: map[string]Group{
				"a": Single(NewRegion(WithMin(30))),
				"b": Single(NewRegion(WithMin(30))),
			},
			wantErr: ErrInfeasible,
		},
		{
			name:  "InfeasibleMaxima",
			total: 10,
			groups: map[string]Group{
				"a": Single(NewRegion(WithMax(5))),
				"b": Single(NewRegion(WithMax(3))),
			},
			wantErr: ErrInfeasible,
		},
		{
			name:  "ProportionalShares",
			total: 100,
			groups: map[string]Group{
				"a": Single(NewRegion(WithShare(1))),
				"b": Single(NewRegion(WithShare(3))),
			},
			want: map[string]float64{"a": 25, "b": 75},
		},
		{
			name:  "FixedColumn",
			total: 100,
			groups: map[string]Group{
				"fixed":    Single(NewRegion(WithMin(20), WithMax(20))),
				"flexible": Single(NewRegion()),
			},
			want: map[string]float64{"fixed": 20, "flexible": 80},
		},
		{
			name:  "ZeroSharePinsAtMin",
			total: 100,
			groups: map[string]Group{
				"pinned": Single(NewRegion(WithMin(10), WithMax(100), WithShare(0))),
				"grow":   Single(NewRegion()),
			},
			want: map[string]float64{"pinned": 10, "grow": 90},
		},
		{
			name:  "NegativePriorityServedLast",
			total: 100,
			groups: map[string]Group{
				"header": Single(NewRegion(WithMax(20), WithPriority(1))),
				"body":   Single(NewRegion(WithMax(60))),
				"footer": Single(NewRegion(WithMax(30), WithPriority(-1))),
			},
			want: map[string]float64{"header": 20, "body": 60, "footer": 20},
		},
		{
			name:  "HigherTierSaturatesFirst",
			total: 60,
			groups: map[string]Group{
				"hi": Single(NewRegion(WithMax(50), WithPriority(1))),
				"lo": Single(NewRegion(WithMax(100))),
			},
			want: map[string]float64{"hi": 50, "lo": 10},
		},
		{
			name:  "TieBreaksFormOneTier",
			total: 90,
			groups: map[string]Group{
				"a": Single(NewRegion(WithPriority(3))),
				"b": Single(NewRegion(WithPriority(3))),
				"c": Single(NewRegion(WithPriority(3))),
			},
			want: map[string]float64{"a": 30, "b": 30, "c": 30},
		},
		{
			name:  "CascadingCeilings",
			total: 100,
			groups: map[string]Group{
				// Equal shares, unequal ceilings: a saturates at 10, the rest
				// splits evenly between b and c until b saturates at 40.
				"a": Single(NewRegion(WithMax(10))),
				"b": Single(NewRegion(WithMax(40))),
				"c": Single(NewRegion()),
			},
			want: map[string]float64{"a": 10, "b": 40, "c": 50},
		},
		{
			name:  "ZeroTotal",
			total: 0,
			groups: map[string]Group{
				"a": Single(NewRegion()),
				"b": Single(NewRegion()),
			},
			want: map[string]float64{"a": 0, "b": 0},
		},
		{
			name:   "NoGroupsZeroTotal",
			total:  0,
			groups: map[string]Group{},
			want:   map[string]float64{},
		},
		{
			name:    "NoGroupsPositiveTotal",
			total:   5,
			groups:  map[string]Group{},
			wantErr: ErrInfeasible,
		},
		{
			name:  "EmptyGroupGetsZero",
			total: 10,
			groups: map[string]Group{
				"void": {},
				"all":  Single(NewRegion()),
			},
			want: map[string]float64{"void": 0, "all": 10},
		},
		{
			name:  "ArrayGroupReportsSum",
			total: 300,
			groups: map[string]Group{
				"split": Many(
					NewRegion(WithMax(100)),
					NewRegion(),
				),
				"rest": Single(NewRegion(WithMax(50))),
			},
			// Tier 0: rest saturates at 50; split absorbs the remaining 250.
			want: map[string]float64{"split": 250, "rest": 50},
		},
		{
			name:  "MinAboveMaxIsInvalid",
			total: 100,
			groups: map[string]Group{
				"bad": Single(NewRegion(WithMin(10), WithMax(5))),
			},
			wantErr: ErrInvalidSpec,
		},
		{
			name:  "NegativeShareIsInvalid",
			total: 100,
			groups: map[string]Group{
				"bad": Single(NewRegion(WithShare(-1))),
			},
			wantErr: ErrInvalidSpec,
		},
		{
			name:  "NegativeMinIsInvalid",
			total: 100,
			groups: map[string]Group{
				"bad": Single(NewRegion(WithMin(-1))),
			},
			wantErr: ErrInvalidSpec,
		},
		{
			name:    "NegativeTotalIsInvalid",
			total:   -1,
			groups:  map[string]Group{"a": Single(NewRegion())},
			wantErr: ErrInvalidSpec,
		},
		{
			name:    "NaNTotalIsInvalid",
			total:   math.NaN(),
			groups:  map[string]Group{"a": Single(NewRegion())},
			wantErr: ErrInvalidSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distribute(tt.total, tt.groups)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Distribute error = %v, want %v", err, tt.wantErr)
				}
				if got != nil {
					t.Fatalf("Distribute returned a result alongside error %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Distribute: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("result has %d groups, want %d: %v", len(got), len(tt.want), got)
			}

			var sum float64
			for key, want := range tt.want {
				v, ok := got[key]
				if !ok {
					t.Fatalf("missing group %q in result", key)
				}
				if !almostEqual(v, want, testTol) {
					t.Errorf("%s = %v, want %v", key, v, want)
				}
				sum += v
			}
			if !almostEqual(sum, tt.total, testTol) {
				t.Errorf("sum = %v, want %v", sum, tt.total)
			}
		})
	}
}

func TestDistributeRespectsBounds(t *testing.T) {
	groups := map[string]Group{
		"a": Single(NewRegion(WithMin(5), WithMax(25), WithPriority(1))),
		"b": Single(NewRegion(WithMin(10), WithMax(40), WithShare(2))),
		"c": Single(NewRegion(WithMin(0), WithMax(200))),
		"d": Single(NewRegion(WithMin(15), WithMax(15))),
	}

	for _, total := range []float64{30, 60, 100, 200, 280} {
		got, err := Distribute(total, groups)
		if err != nil {
			t.Fatalf("Distribute(%v): %v", total, err)
		}

		bounds := map[string][2]float64{
			"a": {5, 25}, "b": {10, 40}, "c": {0, 200}, "d": {15, 15},
		}
		var sum float64
		for key, bound := range bounds {
			if got[key] < bound[0]-testTol || got[key] > bound[1]+testTol {
				t.Errorf("total %v: %s = %v, outside [%v, %v]", total, key, got[key], bound[0], bound[1])
			}
			sum += got[key]
		}
		if !almostEqual(sum, total, testTol) {
			t.Errorf("total %v: sum = %v", total, sum)
		}
	}
}

func TestDistributeEqualShareEqualIncrease(t *testing.T) {
	groups := map[string]Group{
		"left":  Single(NewRegion(WithMax(100), WithPriority(1))),
		"right": Single(NewRegion(WithMax(100), WithPriority(1))),
		"rest":  Single(NewRegion()),
	}

	got, err := Distribute(150, groups)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if !almostEqual(got["left"], got["right"], testTol) {
		t.Errorf("equal share, equal headroom: left = %v, right = %v", got["left"], got["right"])
	}
	if !almostEqual(got["left"], 75, testTol) {
		t.Errorf("left = %v, want 75", got["left"])
	}
}

func TestDistributePure(t *testing.T) {
	groups := map[string]Group{
		"a": Single(NewRegion(WithMin(10), WithMax(90), WithShare(2))),
		"b": Many(NewRegion(WithMax(30), WithPriority(1)), NewRegion()),
		"c": Single(NewRegion(WithShare(0), WithMin(5))),
	}

	first, err := Distribute(120, groups)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Distribute(120, groups)
		if err != nil {
			t.Fatalf("Distribute (run %d): %v", i, err)
		}
		for key, v := range first {
			if again[key] != v {
				t.Fatalf("run %d: %s = %v, first run gave %v", i, key, again[key], v)
			}
		}
	}
}

func TestDistributeLargeTotal(t *testing.T) {
	// The tolerance must scale with the total: at 1e12 a fixed 1e-9 epsilon
	// would stop distribution while meaningful budget remains.
	total := 1e12
	groups := map[string]Group{
		"a": Single(NewRegion()),
		"b": Single(NewRegion()),
		"c": Single(NewRegion()),
	}

	got, err := Distribute(total, groups)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	var sum float64
	for _, v := range got {
		sum += v
	}
	if math.Abs(sum-total) > epsilonFor(total) {
		t.Errorf("sum = %v, want %v within %v", sum, total, epsilonFor(total))
	}
}

func TestDistributeTinyTotal(t *testing.T) {
	total := 1e-6
	groups := map[string]Group{
		"a": Single(NewRegion()),
		"b": Single(NewRegion(WithShare(3))),
	}

	got, err := Distribute(total, groups)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if !almostEqual(got["a"], total/4, 1e-15) {
		t.Errorf("a = %v, want %v", got["a"], total/4)
	}
	if !almostEqual(got["b"], 3*total/4, 1e-15) {
		t.Errorf("b = %v, want %v", got["b"], 3*total/4)
	}
}

func TestDistributeZeroShareTierDrains(t *testing.T) {
	// A tier whose only unsaturated members have zero share passes its whole
	// budget down instead of looping.
	groups := map[string]Group{
		"stuck": Single(NewRegion(WithMax(100), WithShare(0), WithPriority(5))),
		"sink":  Single(NewRegion()),
	}

	got, err := Distribute(80, groups)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if got["stuck"] != 0 {
		t.Errorf("stuck = %v, want 0", got["stuck"])
	}
	if !almostEqual(got["sink"], 80, testTol) {
		t.Errorf("sink = %v, want 80", got["sink"])
	}
}

func TestEpsilonFor(t *testing.T) {
	tests := []struct {
		total float64
		want  float64
	}{
		{0, relEpsilon},
		{1, relEpsilon},
		{0.001, relEpsilon},
		{1000, 1000 * relEpsilon},
		{1e12, 1e12 * relEpsilon},
	}
	for _, tt := range tests {
		if got := epsilonFor(tt.total); got != tt.want {
			t.Errorf("epsilonFor(%v) = %v, want %v", tt.total, got, tt.want)
		}
	}
}
