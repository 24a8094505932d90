package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/bartolsthoorn/chipnet/highs"
	"github.com/bartolsthoorn/chipnet/internal/metrics"
	"github.com/bartolsthoorn/chipnet/internal/network"
	"github.com/bartolsthoorn/chipnet/internal/planner"
	"github.com/bartolsthoorn/chipnet/internal/report"
	"github.com/bartolsthoorn/chipnet/internal/runstore"
)

// storeEnv names the environment variable holding the default history file.
const storeEnv = "CHIPNET_STORE"

// runFlags are shared by the commands that solve models.
type runFlags struct {
	format      string
	timeLimit   time.Duration
	mipGap      float64
	threads     int
	parallel    int
	presolve    string
	options     []string
	store       string
	metricsFile string
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.format, "format", string(report.FormatPlain), "output format: plain|table|json")
	fs.DurationVar(&f.timeLimit, "time-limit", 0, "limit on each solve; a stopped solve reports its best plan so far (0 for no limit)")
	fs.Float64Var(&f.mipGap, "mip-gap", 0, "relative MIP gap at which the solver stops")
	fs.IntVar(&f.threads, "threads", 0, "solver threads (0 lets HiGHS decide)")
	fs.StringVar(&f.presolve, "presolve", "", "presolve mode: choose|on|off (default HiGHS)")
	fs.StringArrayVar(&f.options, "option", nil, "raw HiGHS option as name=value (repeatable)")
	fs.IntVar(&f.parallel, "parallel", 0, "scenarios solved at once (0 for GOMAXPROCS)")
	fs.StringVar(&f.store, "store", os.Getenv(storeEnv), "sqlite file recording every run (default $"+storeEnv+")")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after solving")
}

func (f *runFlags) solveOptions(cmd *cobra.Command, a *app) ([]highs.SolveOption, error) {
	opts := []highs.SolveOption{highs.WithOutput(a.solverOutput)}
	if cmd.Flags().Changed("mip-gap") {
		if f.mipGap < 0 || f.mipGap >= 1 {
			return nil, fmt.Errorf("--mip-gap must be in [0, 1)")
		}
		opts = append(opts, highs.WithMIPRelGap(f.mipGap))
	}
	if f.threads > 0 {
		opts = append(opts, highs.WithThreads(f.threads))
	}
	switch f.presolve {
	case "":
	case "choose", "on", "off":
		opts = append(opts, highs.WithPresolve(f.presolve))
	default:
		return nil, fmt.Errorf("--presolve must be choose, on or off")
	}
	for _, kv := range f.options {
		opt, err := parseOption(kv)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

// parseOption turns name=value into a typed HiGHS option. true and false
// are booleans, values with a decimal point or exponent are floats, other
// numbers are integers and anything else is a string.
func parseOption(kv string) (highs.SolveOption, error) {
	name, value, ok := strings.Cut(kv, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return nil, fmt.Errorf("--option %q: want name=value", kv)
	}
	value = strings.TrimSpace(value)

	if value == "true" || value == "false" {
		return highs.WithBoolOption(name, value == "true"), nil
	}
	if strings.ContainsAny(value, ".eE") {
		if x, err := strconv.ParseFloat(value, 64); err == nil {
			return highs.WithFloatOption(name, x), nil
		}
	}
	if n, err := strconv.Atoi(value); err == nil {
		return highs.WithIntOption(name, n), nil
	}
	return highs.WithStringOption(name, value), nil
}

// execute builds a planner from the flags, runs fn with it and renders the
// outcomes. Outcomes returned together with an error are still printed.
func (f *runFlags) execute(cmd *cobra.Command, a *app, extra []highs.SolveOption,
	fn func(ctx context.Context, p *planner.Planner) ([]*network.Outcome, error),
) (err error) {
	format, err := report.ParseFormat(f.format)
	if err != nil {
		return err
	}
	if f.timeLimit < 0 {
		return fmt.Errorf("--time-limit must not be negative")
	}
	opts, err := f.solveOptions(cmd, a)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := &planner.Planner{
		Logger:       a.log(),
		SolveOptions: append(opts, extra...),
		Parallelism:  f.parallel,
		TimeLimit:    f.timeLimit,
	}

	var rec *metrics.Recorder
	if f.metricsFile != "" {
		rec = metrics.NewRecorder()
		p.Metrics = rec
	}

	if f.store != "" {
		store, openErr := runstore.Open(ctx, f.store)
		if openErr != nil {
			return openErr
		}
		defer func() {
			if cerr := store.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		p.Store = store
	}

	outcomes, runErr := fn(ctx, p)
	if len(outcomes) > 0 {
		if err := report.Render(cmd.OutOrStdout(), format, outcomes...); err != nil {
			return err
		}
	}

	if rec != nil {
		if err := rec.WriteTextfile(f.metricsFile); err != nil {
			return errors.Join(runErr, fmt.Errorf("write metrics: %w", err))
		}
		a.log().Debug("metrics written", zap.String("path", f.metricsFile))
	}
	return runErr
}
