package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/samuelfneumann/replaykit/experiment"
	"github.com/spf13/cobra"
)

// FillCommand returns the command which constructs the buffer selected
// for a configuration, fills it with random transitions, and samples
// from it
func FillCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Construct, fill, and sample the selected replay buffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := experiment.Load(configPath)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return err
			}

			var progress io.Writer
			if showProgress {
				progress = os.Stderr
			}

			result, err := c.Run(steps, batchSize, episodeLength, os.Stderr,
				progress)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printPlan(w, result.Plan)
			fmt.Fprintf(w, "%v %v / %v\n", au.Bold("Stored:"), result.Stored,
				result.Plan.Config.Capacity)
			fmt.Fprintf(w, "%v %v\n", au.Bold("Sampled indices:"),
				result.Batch.Indices)
			if result.Batch.Weights != nil {
				fmt.Fprintf(w, "%v %.3f\n", au.Bold("Importance weights:"),
					result.Batch.Weights)
			}
			for _, name := range result.Plan.Config.FieldNames() {
				field := result.Batch.Fields[name]
				fmt.Fprintf(w, "  %-10v %v %v\n", au.Cyan(name), field.Shape(),
					field.Dtype())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1000, "Number of transitions to store")
	cmd.Flags().IntVar(&batchSize, "batch-size", 32, "Number of transitions to sample")
	cmd.Flags().IntVar(&episodeLength, "episode-length", 200, "Number of steps per episode")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Print a progress bar while filling")

	return cmd
}
