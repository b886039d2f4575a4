package main

import (
	"flag"

	"github.com/lintang-b-s/elenav/pkg/logger"
	"github.com/lintang-b-s/elenav/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	mapFile       = flag.String("f", "./data/map.osm.pbf", "openstreetmap file (.osm.pbf or .osm)")
	elevationFile = flag.String("elevation", "", "optional csv of osm_node_id,elevation_meters")
	outFile       = flag.String("out", "./data/elenav.graph", "output graph file")
	logLevel      = flag.String("log_level", "info", "log level")
)

func main() {
	flag.Parse()
	logger, err := logger.NewWithLevel(*logLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var elevations map[int64]float64
	if *elevationFile != "" {
		elevations, err = osmparser.ReadElevationFile(*elevationFile)
		if err != nil {
			logger.Fatal("read elevation file", zap.String("file", *elevationFile), zap.Error(err))
		}
	}

	osmParser := osmparser.NewOSMParser(logger)
	graph, err := osmParser.Parse(*mapFile, elevations)
	if err != nil {
		logger.Fatal("parse openstreetmap file", zap.String("file", *mapFile), zap.Error(err))
	}

	if err := graph.WriteGraph(*outFile); err != nil {
		logger.Fatal("write graph", zap.String("file", *outFile), zap.Error(err))
	}

	logger.Sugar().Infof("Preprocessing completed successfully. graph written to %s", *outFile)
}
