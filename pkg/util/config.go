package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/elenav/pkg"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	envPrefix  = "ELENAV"
)

// ReadConfig loads config.yaml from dir (./data/ when empty). Environment variables
// prefixed with ELENAV_ override file values.
func ReadConfig(dir string) error {
	if dir == "" {
		dir = "./data/"
	}
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// defaults + env are enough to run
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("GRAPH_FILE", "./data/elenav.graph")
	viper.SetDefault("LEAF_BOUNDING_BOX_RADIUS", pkg.DEFAULT_LEAF_BBOX_RADIUS_KM)
	viper.SetDefault("SEARCH_RADIUS", pkg.DEFAULT_SEARCH_RADIUS_KM)
	viper.SetDefault("MAX_SEARCH_RADIUS", pkg.DEFAULT_MAX_SEARCH_RADIUS_KM)
	viper.SetDefault("PARALLEL_STRATEGIES", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("WORKERS", 4)
}

type EngineConfig struct {
	GraphFile             string
	LeafBoundingBoxRadius float64 // km
	SearchRadius          float64 // km
	MaxSearchRadius       float64 // km
	ParallelStrategies    bool
	LogLevel              string
	Workers               int
}

func LoadEngineConfig() EngineConfig {
	setDefaults()
	return EngineConfig{
		GraphFile:             viper.GetString("GRAPH_FILE"),
		LeafBoundingBoxRadius: viper.GetFloat64("LEAF_BOUNDING_BOX_RADIUS"),
		SearchRadius:          viper.GetFloat64("SEARCH_RADIUS"),
		MaxSearchRadius:       viper.GetFloat64("MAX_SEARCH_RADIUS"),
		ParallelStrategies:    viper.GetBool("PARALLEL_STRATEGIES"),
		LogLevel:              viper.GetString("LOG_LEVEL"),
		Workers:               viper.GetInt("WORKERS"),
	}
}
