package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/elenav/pkg"
	"github.com/lintang-b-s/elenav/pkg/concurrent"
	"github.com/lintang-b-s/elenav/pkg/engine/routing"
	"github.com/lintang-b-s/elenav/pkg/util"
	"go.uber.org/zap"
)

var ErrInvalidRequest = errors.New("usecases: invalid route request")

type RoutingService struct {
	log       *zap.Logger
	optimizer RouteOptimizer
	validate  *validator.Validate
	trans     ut.Translator
	workers   int
}

func NewRoutingService(log *zap.Logger, optimizer RouteOptimizer, workers int) *RoutingService {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &RoutingService{
		log:       log,
		optimizer: optimizer,
		validate:  validate,
		trans:     trans,
		workers:   workers,
	}
}

// ValidateRequest returns a bad-param error listing every failed field.
func (rs *RoutingService) ValidateRequest(req RouteRequest) error {
	if err := rs.validate.Struct(req); err != nil {
		vv := translateError(err, rs.trans)
		vvString := make([]string, 0, len(vv))
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return util.WrapErrorf(ErrInvalidRequest, util.ErrBadParamInput, "validation error: [%s]",
			strings.Join(vvString, "; "))
	}
	return nil
}

// Route answers one request. origin and destination in different components is not an
// error: the response carries STATUS_NO_ROUTE.
func (rs *RoutingService) Route(ctx context.Context, req RouteRequest) (RouteResponse, error) {
	if err := rs.ValidateRequest(req); err != nil {
		return RouteResponse{}, err
	}
	objective, err := pkg.ParseObjective(req.Objective)
	if err != nil {
		return RouteResponse{}, util.WrapErrorf(err, util.ErrBadParamInput, "objective")
	}

	res, err := rs.optimizer.Optimize(ctx, req.Origin(), req.Destination(), req.Overhead, objective)
	if errors.Is(err, routing.ErrDisconnectedGraph) {
		rs.log.Info("no route between origin and destination",
			zap.Float64("origin_lat", req.OriginLat), zap.Float64("origin_lon", req.OriginLon),
			zap.Float64("destination_lat", req.DestinationLat), zap.Float64("destination_lon", req.DestinationLon))
		return NewNoRouteResponse(), nil
	}
	if err != nil {
		return RouteResponse{}, err
	}

	return NewRouteResponse(res), nil
}

// OptimizeBatch answers every request on the worker pool. results keep the request order.
func (rs *RoutingService) OptimizeBatch(ctx context.Context, reqs []RouteRequest) []BatchResult {
	rs.log.Info("running batch", zap.Int("requests", len(reqs)), zap.Int("workers", rs.workers))

	return concurrent.RunOrdered(rs.workers, reqs, func(req RouteRequest) BatchResult {
		resp, err := rs.Route(ctx, req)
		if err != nil {
			rs.log.Warn("batch request failed", zap.Error(err))
			return BatchResult{Request: req, Error: err.Error()}
		}
		return BatchResult{Request: req, Response: &resp}
	})
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf("%s", e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
