package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/elenav/pkg/engine"
	"github.com/lintang-b-s/elenav/pkg/logger"
	"github.com/lintang-b-s/elenav/pkg/usecases"
	"github.com/lintang-b-s/elenav/pkg/util"
	"go.uber.org/zap"
)

var (
	configDir      = flag.String("config", "./data/", "directory holding config.yaml")
	originLat      = flag.Float64("origin_lat", 0, "origin latitude")
	originLon      = flag.Float64("origin_lon", 0, "origin longitude")
	destinationLat = flag.Float64("destination_lat", 0, "destination latitude")
	destinationLon = flag.Float64("destination_lon", 0, "destination longitude")
	overhead       = flag.Float64("overhead", 20, "allowed extra distance over the shortest route, in percent")
	objective      = flag.String("objective", "maximize", "maximize or minimize elevation gain")
	queriesFile    = flag.String("queries", "", "csv of batch queries; overrides the single query flags")
	metricsFile    = flag.String("metrics", "", "write prometheus text metrics here on exit")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(*configDir); err != nil {
		panic(err)
	}
	cfg := util.LoadEngineConfig()

	logger, err := logger.NewWithLevel(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngine(cfg, logger)
	if err != nil {
		logger.Fatal("load engine", zap.String("graph", cfg.GraphFile), zap.Error(err))
	}
	routingService := usecases.NewRoutingService(logger, routingEngine.GetRouteOptimizer(), cfg.Workers)

	ctx, cleanup := NewContext()
	defer cleanup()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *queriesFile != "" {
		reqs, err := usecases.ReadRouteRequestFile(*queriesFile)
		if err != nil {
			logger.Fatal("read queries", zap.String("file", *queriesFile), zap.Error(err))
		}
		results := routingService.OptimizeBatch(ctx, reqs)
		for _, res := range results {
			logger.Debug(res.String())
		}
		if err := enc.Encode(results); err != nil {
			logger.Fatal("write results", zap.Error(err))
		}
	} else {
		resp, err := routingService.Route(ctx, usecases.RouteRequest{
			OriginLat:      *originLat,
			OriginLon:      *originLon,
			DestinationLat: *destinationLat,
			DestinationLon: *destinationLon,
			Overhead:       *overhead,
			Objective:      *objective,
		})
		if err != nil {
			logger.Error("route", zap.Error(err))
			writeMetrics(routingEngine, logger)
			os.Exit(1)
		}
		if err := enc.Encode(resp); err != nil {
			logger.Fatal("write response", zap.Error(err))
		}
	}

	writeMetrics(routingEngine, logger)
}

func writeMetrics(routingEngine *engine.Engine, logger *zap.Logger) {
	if *metricsFile == "" {
		return
	}
	if err := routingEngine.GetMetrics().WriteToFile(*metricsFile); err != nil {
		logger.Error("write metrics", zap.String("file", *metricsFile), zap.Error(err))
	}
}

// NewContext is cancelled on SIGINT or SIGTERM.
func NewContext() (context.Context, func()) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
