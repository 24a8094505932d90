// Package cli wires the chipnet commands.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartolsthoorn/chipnet/internal/logging"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app carries state shared by every command.
type app struct {
	verbose      bool
	solverOutput bool
	logger       *zap.Logger
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "chipnet",
		Short:        "Plan snack production sites and distribution centres with MILP models",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")
	cmd.PersistentFlags().BoolVar(&a.solverOutput, "solver-output", false, "show the HiGHS solver log")

	cmd.AddCommand(
		solveCmd(a),
		chainCmd(a),
		scenariosCmd(),
		historyCmd(),
		versionCmd(),
	)
	return cmd
}
