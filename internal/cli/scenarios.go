package cli

import (
	"github.com/spf13/cobra"

	"github.com/bartolsthoorn/chipnet/internal/report"
	"github.com/bartolsthoorn/chipnet/internal/scenario"
)

func scenariosCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "scenarios",
		Short: "List built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var entries []report.ScenarioEntry
			for _, name := range scenario.Builtins() {
				s, err := scenario.Builtin(name)
				if err != nil {
					return err
				}
				entries = append(entries, report.ScenarioEntry{Ref: name, Scenario: s})
			}
			return report.Scenarios(cmd.OutOrStdout(), entries)
		},
	}
	c.AddCommand(scenariosShowCmd())
	return c
}

func scenariosShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the YAML of a built-in scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := scenario.BuiltinSource(args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
