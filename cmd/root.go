// Package cmd implements the command line interface for inspecting the
// replay buffers selected for agents and environments
package cmd

import (
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

var (
	configPath string
	noColor    bool

	steps         int
	batchSize     int
	episodeLength int
	showProgress  bool
)

// au colours terminal output
var au aurora.Aurora = aurora.NewAurora(true)

// RootCommand returns the root command of the CLI
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "replaykit",
		Short:        "Select and inspect experience replay buffers",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			au = aurora.NewAurora(!noColor)
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		DescribeCommand(),
		FillCommand(),
		AgentsCommand(),
	)

	return cmd
}

// AddFlags adds the flags shared by all commands
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "Path to the JSON experiment configuration")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
}
