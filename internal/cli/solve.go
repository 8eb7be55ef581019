package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/pipeline"
	"github.com/matzehuels/flexline/pkg/profile"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		total   float64
		round   bool
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "solve <profile>",
		Short: "Distribute a total across a profile's groups",
		Long: `Solve reads a profile file (.json or .toml) and distributes the total
across its groups, honoring region bounds, priorities, and shares.

The profile's own total is used unless --total overrides it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile.ReadProfileFile(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			res, err := runner.Solve(cmd.Context(), p, pipeline.Options{
				Total:   total,
				Round:   round,
				NoCache: noCache,
				Logger:  c.Logger,
			})
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			prog.done(fmt.Sprintf("Solved %d groups", len(res.Allocations)))

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(res)
			}

			printAllocations(p.Name, res)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&total, "total", "t", 0, "total to distribute (overrides the profile)")
	cmd.Flags().BoolVarP(&round, "round", "r", false, "round allocations to whole units")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the result as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")

	return cmd
}

// printAllocations renders the solve result as a table, groups sorted by key.
func printAllocations(name string, res pipeline.Result) {
	if name != "" {
		fmt.Println(StyleTitle.Render(name))
	}

	keys := make([]string, 0, len(res.Allocations))
	for key := range res.Allocations {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		v := res.Allocations[key]
		share := ""
		if res.Total > 0 {
			share = fmt.Sprintf("%.1f%%", 100*v/res.Total)
		}
		rows = append(rows, []string{key, formatSize(v), share})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Group", "Size", "Of Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue
			}
			return StyleNumber
		})
	fmt.Println(t.Render())

	printKeyValue("total", formatSize(res.Total))
	printSolveStats(len(res.Allocations), res.CacheHit)
}

// formatSize renders a size without a trailing ".00" for whole numbers.
func formatSize(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
