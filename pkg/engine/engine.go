package engine

import (
	"github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/engine/routing"
	"github.com/lintang-b-s/elenav/pkg/metrics"
	"github.com/lintang-b-s/elenav/pkg/spatialindex"
	"github.com/lintang-b-s/elenav/pkg/util"
	"go.uber.org/zap"
)

type Engine struct {
	graph     *datastructure.Graph
	rtree     *spatialindex.Rtree
	optimizer *routing.RouteOptimizer
	metrics   *metrics.OptimizerMetrics
}

func (e *Engine) GetRouteOptimizer() *routing.RouteOptimizer {
	return e.optimizer
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

func (e *Engine) GetSpatialIndex() *spatialindex.Rtree {
	return e.rtree
}

func (e *Engine) GetMetrics() *metrics.OptimizerMetrics {
	return e.metrics
}

// NewEngine reads the graph file named in cfg and builds the query engine on top of it.
func NewEngine(cfg util.EngineConfig, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting elevation route engine...")

	logger.Info("Reading graph from ", zap.String("graphFilePath", cfg.GraphFile))
	graph, err := datastructure.ReadGraph(cfg.GraphFile)
	if err != nil {
		return nil, err
	}
	return NewEngineFromGraph(graph, cfg, logger), nil
}

func NewEngineFromGraph(graph *datastructure.Graph, cfg util.EngineConfig, logger *zap.Logger) *Engine {
	logger.Info("Graph loaded",
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("folded_parallel_edges", graph.NumberOfParallelEdges()))
	bb := graph.GetBoundingBox()
	logger.Info("Graph bounds",
		zap.Float64("min_lat", bb.GetMinLat()), zap.Float64("min_lon", bb.GetMinLon()),
		zap.Float64("max_lat", bb.GetMaxLat()), zap.Float64("max_lon", bb.GetMaxLon()))

	rt := spatialindex.NewRtree(cfg.SearchRadius, cfg.MaxSearchRadius)
	rt.Build(graph, cfg.LeafBoundingBoxRadius, logger)

	m := metrics.NewOptimizerMetrics()
	selector := routing.NewStrategySelector(graph, logger,
		routing.WithParallelStrategies(cfg.ParallelStrategies),
		routing.WithSearchObserver(m))

	return &Engine{
		graph:     graph,
		rtree:     rt,
		optimizer: routing.NewRouteOptimizer(graph, rt, selector, logger),
		metrics:   m,
	}
}
