package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartolsthoorn/chipnet/highs"
	"github.com/bartolsthoorn/chipnet/internal/network"
	"github.com/bartolsthoorn/chipnet/internal/planner"
	"github.com/bartolsthoorn/chipnet/internal/scenario"
)

func solveCmd(a *app) *cobra.Command {
	var flags runFlags
	var files []string
	var plants []string
	var writeModel string

	c := &cobra.Command{
		Use:   "solve [scenario...]",
		Short: "Solve built-in or file scenarios and print the plans",
		Long: `Solve one or more scenarios. Arguments name built-in scenarios or
YAML files; --file adds more files. Without any scenario every built-in
scenario is solved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := collectScenarios(args, files)
			if err != nil {
				return err
			}
			if len(plants) > 0 {
				for i, s := range scenarios {
					if s.Kind != scenario.KindDistribution {
						return fmt.Errorf("--plants applies to distribution scenarios, %s is %s", s.Name, s.Kind)
					}
					if scenarios[i], err = s.WithActivePlants(plants); err != nil {
						return err
					}
				}
			}

			var extra []highs.SolveOption
			if writeModel != "" {
				if len(scenarios) != 1 {
					return fmt.Errorf("--write-model needs exactly one scenario, got %d", len(scenarios))
				}
				extra = append(extra, highs.WithModelFile(writeModel))
			}

			return flags.execute(cmd, a, extra, func(ctx context.Context, p *planner.Planner) ([]*network.Outcome, error) {
				return p.Run(ctx, scenarios...)
			})
		},
	}

	flags.register(c.Flags())
	c.Flags().StringArrayVarP(&files, "file", "f", nil, "scenario YAML file (repeatable)")
	c.Flags().StringSliceVar(&plants, "plants", nil, "active plants for distribution scenarios, comma separated")
	c.Flags().StringVar(&writeModel, "write-model", "", "write the model to this .lp or .mps file before solving")
	return c
}

// collectScenarios resolves scenario references and files. With neither,
// every built-in scenario is returned.
func collectScenarios(refs, files []string) ([]*scenario.Scenario, error) {
	if len(refs) == 0 && len(files) == 0 {
		refs = scenario.Builtins()
	}
	out := make([]*scenario.Scenario, 0, len(refs)+len(files))
	for _, ref := range refs {
		s, err := scenario.Resolve(strings.TrimSpace(ref))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	for _, file := range files {
		s, err := scenario.Load(file)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
