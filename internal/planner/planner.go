// Package planner runs scenarios through the network formulations and hands
// each outcome to the history store and the metrics recorder.
package planner

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bartolsthoorn/chipnet/highs"
	"github.com/bartolsthoorn/chipnet/internal/network"
	"github.com/bartolsthoorn/chipnet/internal/scenario"
)

// Store persists outcomes.
type Store interface {
	Save(ctx context.Context, o *network.Outcome) error
}

// Observer records outcome statistics.
type Observer interface {
	Observe(o *network.Outcome)
}

// Planner solves scenarios. The zero value is usable; Logger defaults to a
// no-op logger and Store and Metrics are optional.
type Planner struct {
	Logger       *zap.Logger
	Store        Store
	Metrics      Observer
	SolveOptions []highs.SolveOption
	// Parallelism bounds concurrent solves. Zero or less means GOMAXPROCS.
	Parallelism int
	// TimeLimit bounds each solve on its own. Zero means no limit.
	TimeLimit time.Duration
}

func (p *Planner) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// Solve formulates and solves one scenario.
func (p *Planner) Solve(ctx context.Context, s *scenario.Scenario) (*network.Outcome, error) {
	log := p.logger().With(zap.String("scenario", s.Name), zap.String("kind", string(s.Kind)))

	plan, err := network.Build(s)
	if err != nil {
		return nil, err
	}
	log.Debug("model built",
		zap.Int("variables", plan.Problem.NumVars()),
		zap.Int("constraints", plan.Problem.NumConstraints()))

	solveCtx := ctx
	if p.TimeLimit > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, p.TimeLimit)
		defer cancel()
	}
	out, err := plan.Solve(solveCtx, p.SolveOptions...)
	if err != nil {
		log.Error("solve failed", zap.Error(err))
		return nil, fmt.Errorf("solve %s: %w", s.Name, err)
	}
	log.Info("solved",
		zap.String("run_id", out.RunID),
		zap.String("status", out.Status),
		zap.Float64("objective", out.Objective),
		zap.Strings("open", out.Open),
		zap.Duration("duration", out.Duration))

	if p.Metrics != nil {
		p.Metrics.Observe(out)
	}
	if p.Store != nil {
		// A solve stopped by the deadline still leaves a run worth recording.
		if err := p.Store.Save(context.WithoutCancel(ctx), out); err != nil {
			return nil, fmt.Errorf("record %s: %w", s.Name, err)
		}
	}
	return out, nil
}

// Run solves scenarios concurrently and returns their outcomes in input
// order. The first error cancels the solves that have not started; the
// outcomes finished by then are returned with it.
func (p *Planner) Run(ctx context.Context, scenarios ...*scenario.Scenario) ([]*network.Outcome, error) {
	limit := p.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]*network.Outcome, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, s := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := p.Solve(ctx, s)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		done := outcomes[:0]
		for _, o := range outcomes {
			if o != nil {
				done = append(done, o)
			}
		}
		return done, err
	}
	return outcomes, nil
}

// Chain solves the direct network, then the distribution network producing
// from the sites the direct plan opened. Both outcomes are returned; the
// second is nil when the direct plan is not feasible.
func (p *Planner) Chain(ctx context.Context, direct, dist *scenario.Scenario) (*network.Outcome, *network.Outcome, error) {
	if direct.Kind != scenario.KindDirect {
		return nil, nil, fmt.Errorf("chain: %s is a %s scenario, want direct", direct.Name, direct.Kind)
	}
	if dist.Kind != scenario.KindDistribution {
		return nil, nil, fmt.Errorf("chain: %s is a %s scenario, want distribution", dist.Name, dist.Kind)
	}

	first, err := p.Solve(ctx, direct)
	if err != nil {
		return nil, nil, err
	}
	if !first.Feasible() || len(first.Open) == 0 {
		return first, nil, fmt.Errorf("chain: %s opened no sites (status %s)", direct.Name, first.Status)
	}

	var missing []string
	for _, site := range first.Open {
		if !slices.ContainsFunc(dist.Distribution.Plants, func(pl scenario.Plant) bool { return pl.Name == site }) {
			missing = append(missing, site)
		}
	}
	if len(missing) > 0 {
		return first, nil, fmt.Errorf("chain: %s has no plant entry for %s", dist.Name, strings.Join(missing, ", "))
	}

	next, err := dist.WithActivePlants(first.Open)
	if err != nil {
		return first, nil, fmt.Errorf("chain: %w", err)
	}
	p.logger().Info("chaining", zap.String("from", direct.Name), zap.String("to", dist.Name), zap.Strings("plants", first.Open))

	second, err := p.Solve(ctx, next)
	if err != nil {
		return first, nil, err
	}
	return first, second, nil
}
