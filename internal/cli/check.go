package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flexline/pkg/flex"
	"github.com/matzehuels/flexline/pkg/profile"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var total float64

	cmd := &cobra.Command{
		Use:   "check <profile>",
		Short: "Report the feasible total range of a profile",
		Long: `Check reads a profile file and reports the range of totals its regions
can absorb: the sum of all minima up to the sum of all maxima. A total
outside this range makes the profile infeasible.

Exits non-zero when the checked total is infeasible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile.ReadProfileFile(args[0])
			if err != nil {
				return err
			}

			groups := p.FlexGroups()
			lo, hi := flex.Envelope(groups)

			if p.Name != "" {
				fmt.Println(StyleTitle.Render(p.Name))
			}
			printKeyValue("minimum", formatSize(lo))
			if math.IsInf(hi, 1) {
				printKeyValue("maximum", "unbounded")
			} else {
				printKeyValue("maximum", formatSize(hi))
			}

			checked := total
			if checked == 0 {
				checked = p.Total
			}
			if checked == 0 {
				printInfo("No total to check (profile has none; pass --total)")
				return nil
			}

			printKeyValue("total", formatSize(checked))
			if !flex.Feasible(checked, groups) {
				printError("Total %s is outside the feasible range", formatSize(checked))
				return fmt.Errorf("total %v is infeasible for %s", checked, args[0])
			}
			printSuccess("Total %s is feasible", formatSize(checked))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&total, "total", "t", 0, "total to check (overrides the profile)")

	return cmd
}
