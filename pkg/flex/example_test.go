package flex_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/flexline/pkg/flex"
)

func ExampleDistribute() {
	// A horizontal editor strip: a bounded sidebar and the fixed column of
	// the content area fill first (priority 2), then the flexible content
	// column (priority 1), and the gutter absorbs whatever is left.
	groups := map[string]flex.Group{
		"sidebar": flex.Single(flex.NewRegion(flex.WithMin(10), flex.WithMax(100), flex.WithPriority(2))),
		"content": flex.Many(
			flex.NewRegion(flex.WithMin(50), flex.WithMax(100), flex.WithPriority(2), flex.WithShare(2)),
			flex.NewRegion(flex.WithMin(100), flex.WithMax(500), flex.WithPriority(1)),
		),
		"gutter": flex.Single(flex.NewRegion()),
	}

	sizes, err := flex.Distribute(1000, groups)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, key := range []string{"sidebar", "content", "gutter"} {
		fmt.Printf("%s: %g\n", key, sizes[key])
	}
	// Output:
	// sidebar: 100
	// content: 600
	// gutter: 300
}

func ExampleDistribute_shares() {
	// Shares weight growth within one tier: b grows three times as fast.
	sizes, _ := flex.Distribute(100, map[string]flex.Group{
		"a": flex.Single(flex.NewRegion()),
		"b": flex.Single(flex.NewRegion(flex.WithShare(3))),
	})

	fmt.Printf("a: %g\n", sizes["a"])
	fmt.Printf("b: %g\n", sizes["b"])
	// Output:
	// a: 25
	// b: 75
}

func ExampleDistribute_infeasible() {
	// Minima exceeding the total make the request infeasible; there is no
	// best-effort result.
	_, err := flex.Distribute(50, map[string]flex.Group{
		"a": flex.Single(flex.NewRegion(flex.WithMin(30))),
		"b": flex.Single(flex.NewRegion(flex.WithMin(30))),
	})

	fmt.Println(errors.Is(err, flex.ErrInfeasible))
	// Output:
	// true
}
