package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flexline/pkg/profile"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var total float64

	cmd := &cobra.Command{
		Use:   "preview <profile>",
		Short: "Interactively explore allocations as the total changes",
		Long: `Preview opens an interactive view of a profile's allocations. Arrow keys
adjust the total and the step size; the bar and table update live.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile.ReadProfileFile(args[0])
			if err != nil {
				return err
			}

			start := total
			if start == 0 {
				start = p.Total
			}
			if start == 0 {
				return fmt.Errorf("profile %s has no total; pass --total", args[0])
			}

			model := NewPreviewModel(p, start)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().Float64VarP(&total, "total", "t", 0, "starting total (overrides the profile)")

	return cmd
}
