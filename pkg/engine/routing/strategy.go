package routing

import (
	"context"
	"math"
	"time"

	"github.com/lintang-b-s/elenav/pkg"
	da "github.com/lintang-b-s/elenav/pkg/datastructure"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SearchOutcome best route found by StrategySelector. Found is false when no strategy
// produced a route within the budget; Route is then empty and the stats are zero.
type SearchOutcome struct {
	Route    []da.Index
	Distance float64
	Gain     float64
	Drop     float64
	Strategy WeightingStrategy
	Found    bool
}

func newSentinelOutcome(objective pkg.Objective) SearchOutcome {
	gain := math.Inf(-1)
	if objective == pkg.MINIMIZE {
		gain = math.Inf(1)
	}
	return SearchOutcome{Route: []da.Index{}, Gain: gain}
}

// better reports whether a candidate (gain, distance) beats the current best.
func (so SearchOutcome) better(objective pkg.Objective, gain, distance float64) bool {
	if gain == so.Gain {
		return distance < so.Distance
	}
	if objective == pkg.MAXIMIZE {
		return gain > so.Gain
	}
	return gain < so.Gain
}

// SearchObserver is told about every strategy run and every selection.
type SearchObserver interface {
	ObserveStrategy(strategy WeightingStrategy, found bool, settled int, elapsed time.Duration)
	ObserveSelection(objective pkg.Objective, outcome SearchOutcome)
}

type strategyRun struct {
	strategy WeightingStrategy
	found    bool
	route    []da.Index
	distance float64
	gain     float64
	drop     float64
}

// StrategySelector runs every weighting strategy and keeps the best feasible route.
type StrategySelector struct {
	graph    *da.Graph
	cost     *CostModel
	logger   *zap.Logger
	parallel bool
	observer SearchObserver
}

type SelectorOption func(*StrategySelector)

// WithParallelStrategies runs the six searches concurrently. the result is the same as the
// sequential run.
func WithParallelStrategies(parallel bool) SelectorOption {
	return func(ss *StrategySelector) {
		ss.parallel = parallel
	}
}

func WithSearchObserver(observer SearchObserver) SelectorOption {
	return func(ss *StrategySelector) {
		ss.observer = observer
	}
}

func NewStrategySelector(graph *da.Graph, logger *zap.Logger, opts ...SelectorOption) *StrategySelector {
	ss := &StrategySelector{
		graph:  graph,
		cost:   NewCostModel(graph),
		logger: logger,
	}
	for _, opt := range opts {
		opt(ss)
	}
	return ss
}

// SelectBest returns the route with the best elevation gain for objective among the six
// strategies, ties going to the shorter route and then to the earlier strategy.
func (ss *StrategySelector) SelectBest(ctx context.Context, s, t da.Index, budget float64,
	objective pkg.Objective) (SearchOutcome, error) {
	var (
		runs []strategyRun
		err  error
	)
	if ss.parallel {
		runs, err = ss.runParallel(ctx, s, t, budget, objective)
	} else {
		runs, err = ss.runSequential(ctx, s, t, budget, objective)
	}
	if err != nil {
		return SearchOutcome{}, err
	}

	best := newSentinelOutcome(objective)
	for _, run := range runs {
		if !run.found {
			continue
		}
		if best.better(objective, run.gain, run.distance) {
			best = SearchOutcome{
				Route:    run.route,
				Distance: run.distance,
				Gain:     run.gain,
				Drop:     run.drop,
				Strategy: run.strategy,
				Found:    true,
			}
		}
	}

	if !best.Found {
		best = SearchOutcome{Route: []da.Index{}}
	}

	if ss.observer != nil {
		ss.observer.ObserveSelection(objective, best)
	}
	return best, nil
}

func (ss *StrategySelector) runSequential(ctx context.Context, s, t da.Index, budget float64,
	objective pkg.Objective) ([]strategyRun, error) {
	cs := NewConstrainedSearch(ss.graph)
	runs := make([]strategyRun, 0, len(strategies))
	for _, strategy := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run, err := ss.runStrategy(cs, s, t, budget, objective, strategy)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (ss *StrategySelector) runParallel(ctx context.Context, s, t da.Index, budget float64,
	objective pkg.Objective) ([]strategyRun, error) {
	runs := make([]strategyRun, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, strategy := range strategies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			run, err := ss.runStrategy(NewConstrainedSearch(ss.graph), s, t, budget, objective, strategy)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func (ss *StrategySelector) runStrategy(cs *ConstrainedSearch, s, t da.Index, budget float64,
	objective pkg.Objective, strategy WeightingStrategy) (strategyRun, error) {
	start := time.Now()
	res, found, err := cs.Search(s, t, budget, objective, strategy)
	if err != nil {
		return strategyRun{}, err
	}
	if ss.observer != nil {
		ss.observer.ObserveStrategy(strategy, found, cs.GetNumSettledNodes(), time.Since(start))
	}
	ss.logger.Debug("strategy search done",
		zap.Uint8("strategy", strategy.ID),
		zap.Bool("carry", strategy.CarryParentPriority),
		zap.Bool("found", found),
		zap.Int("settled", cs.GetNumSettledNodes()))

	run := strategyRun{strategy: strategy, found: found}
	if !found {
		return run, nil
	}

	route, err := Reconstruct(res.Parents, t)
	if err != nil {
		return strategyRun{}, err
	}
	gain, _, err := ss.cost.Aggregate(route, pkg.GAIN_ONLY, false)
	if err != nil {
		return strategyRun{}, err
	}
	drop, _, err := ss.cost.Aggregate(route, pkg.DROP_ONLY, false)
	if err != nil {
		return strategyRun{}, err
	}

	run.route = route
	run.distance = res.Distance
	run.gain = gain
	run.drop = drop
	return run, nil
}
