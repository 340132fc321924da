package cmd

import (
	"fmt"
	"io"

	"github.com/samuelfneumann/replaykit/agent"
	"github.com/samuelfneumann/replaykit/experiment"
	"github.com/samuelfneumann/replaykit/replaybuffer"
	"github.com/spf13/cobra"
)

// DescribeCommand returns the command which prints the buffer selected
// for a configuration without constructing it
func DescribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the replay buffer selected for a configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := experiment.Load(configPath)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return err
			}

			plan, err := c.Plan()
			if err != nil {
				return err
			}
			if plan == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No buffer needed")
				return nil
			}

			printPlan(cmd.OutOrStdout(), *plan)
			return nil
		},
	}

	return cmd
}

// AgentsCommand returns the command which lists the registered agent
// types
func AgentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List the registered agent types and their kinds",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range agent.Registered() {
				kind, _ := agent.KindOf(t)
				fmt.Fprintf(cmd.OutOrStdout(), "%-6v %v\n", au.Bold(t), kind)
			}
		},
	}

	return cmd
}

func printPlan(w io.Writer, plan replaybuffer.Plan) {
	c := plan.Config
	fmt.Fprintf(w, "%v %v\n", au.Bold("Variant:"), au.Green(plan.Variant))
	fmt.Fprintf(w, "%v %v\n", au.Bold("Capacity:"), c.Capacity)
	fmt.Fprintf(w, "%v %v\n", au.Bold("Default dtype:"), c.DefaultDtype)

	fmt.Fprintln(w, au.Bold("Fields:"))
	for _, name := range c.FieldNames() {
		fmt.Fprintf(w, "  %-10v %v\n", au.Cyan(name), c.Fields[name])
	}

	if c.NStep != nil {
		fmt.Fprintf(w, "%v length %v, gamma %v, reward %q, next %q\n",
			au.Bold("N-step:"), c.NStep.Length, c.NStep.Gamma,
			c.NStep.RewardField, c.NStep.NextField)
	}
}
