package usecases

import (
	"context"

	"github.com/lintang-b-s/elenav/pkg"
	"github.com/lintang-b-s/elenav/pkg/engine/routing"
	"github.com/lintang-b-s/elenav/pkg/geo"
)

type RouteOptimizer interface {
	Optimize(ctx context.Context, start, end geo.Coordinate, overheadPercent float64,
		objective pkg.Objective) (routing.OptimizeResult, error)
}
