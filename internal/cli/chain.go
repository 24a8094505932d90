package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bartolsthoorn/chipnet/internal/network"
	"github.com/bartolsthoorn/chipnet/internal/planner"
	"github.com/bartolsthoorn/chipnet/internal/scenario"
)

func chainCmd(a *app) *cobra.Command {
	var flags runFlags
	var direct, directFile string
	var dist, distFile string

	c := &cobra.Command{
		Use:   "chain",
		Short: "Solve the direct network, then route product from the opened sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			first, err := pick(direct, directFile)
			if err != nil {
				return err
			}
			second, err := pick(dist, distFile)
			if err != nil {
				return err
			}

			return flags.execute(cmd, a, nil, func(ctx context.Context, p *planner.Planner) ([]*network.Outcome, error) {
				d, r, err := p.Chain(ctx, first, second)
				var out []*network.Outcome
				for _, o := range []*network.Outcome{d, r} {
					if o != nil {
						out = append(out, o)
					}
				}
				return out, err
			})
		},
	}

	flags.register(c.Flags())
	c.Flags().StringVar(&direct, "direct", "bc-direct", "built-in direct scenario")
	c.Flags().StringVar(&directFile, "direct-file", "", "direct scenario YAML file (overrides --direct)")
	c.Flags().StringVar(&dist, "distribution", "bc-distribution", "built-in distribution scenario")
	c.Flags().StringVar(&distFile, "distribution-file", "", "distribution scenario YAML file (overrides --distribution)")
	return c
}

func pick(name, file string) (*scenario.Scenario, error) {
	if file != "" {
		return scenario.Load(file)
	}
	return scenario.Resolve(name)
}
