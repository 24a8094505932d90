package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/bartolsthoorn/chipnet/internal/report"
	"github.com/bartolsthoorn/chipnet/internal/runstore"
)

var errNoStore = errors.New("no run store: pass --store or set " + storeEnv)

func historyCmd() *cobra.Command {
	var store string
	var limit int
	var format string

	c := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := openStore(cmd, store)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if f == report.FormatJSON {
				return report.JSON(cmd.OutOrStdout(), runs...)
			}
			return report.History(cmd.OutOrStdout(), runs)
		},
	}

	c.PersistentFlags().StringVar(&store, "store", os.Getenv(storeEnv), "sqlite run history (default $"+storeEnv+")")
	c.PersistentFlags().StringVar(&format, "format", string(report.FormatTable), "output format: plain|table|json")
	c.Flags().IntVar(&limit, "limit", 20, "number of runs to list (0 for all)")
	c.AddCommand(historyShowCmd(&store, &format))
	return c
}

func historyShowCmd(store, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print one recorded run with its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(*format)
			if err != nil {
				return err
			}
			s, err := openStore(cmd, *store)
			if err != nil {
				return err
			}
			defer s.Close()

			o, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), f, o)
		},
	}
}

func openStore(cmd *cobra.Command, path string) (*runstore.Store, error) {
	if path == "" {
		return nil, errNoStore
	}
	return runstore.Open(cmd.Context(), path)
}
