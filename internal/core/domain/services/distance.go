package services

import (
	"context"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

const (
	// DefaultDistanceKm is the assumed travel distance when neither endpoint
	// has a usable coordinate.
	DefaultDistanceKm = 10.0

	// roadFactor inflates the great-circle distance to approximate actual
	// road travel when the routing provider is unavailable.
	roadFactor = 1.2
)

// RouteClient asks an external routing provider for the road distance
// between two points. The adapters/out/routing package implements it.
type RouteClient interface {
	// RouteDistanceKm returns the road distance in kilometers.
	RouteDistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error)
}

// DistanceEstimator produces the travel distance between two points for
// pricing and dispatch. It never fails: when the routing provider errors
// or times out it degrades to a haversine estimate scaled by a road
// factor, and when coordinates are missing it falls back to a fixed
// default. The returned Distance carries its provenance so quotes can
// disclose how the figure was obtained.
type DistanceEstimator struct {
	routes  RouteClient
	timeout time.Duration
	log     *slog.Logger
}

// NewDistanceEstimator creates a DistanceEstimator. routes may be nil when
// no routing provider is configured; estimation then always uses the
// straight-line fallback.
func NewDistanceEstimator(routes RouteClient, timeout time.Duration, log *slog.Logger) (*DistanceEstimator, error) {
	if timeout <= 0 {
		return nil, errs.NewValueIsRequiredError("timeout")
	}
	if log == nil {
		log = slog.Default()
	}
	return &DistanceEstimator{routes: routes, timeout: timeout, log: log}, nil
}

// Estimate returns the travel distance between from and to. Either endpoint
// may be nil, in which case the fixed default distance applies.
//
// Provenance of the result:
//   - "routed": the routing provider answered within the timeout
//   - "straight_line": haversine x road factor (provider missing or failed)
//   - "default": at least one coordinate was unknown
func (e *DistanceEstimator) Estimate(ctx context.Context, from, to *kernel.GeoPoint) kernel.Distance {
	if from == nil || to == nil {
		return kernel.Distance{Km: DefaultDistanceKm, Source: kernel.DistanceSourceDefault}
	}

	if e.routes != nil {
		routeCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		km, err := e.routes.RouteDistanceKm(routeCtx, *from, *to)
		if err == nil && km >= 0 {
			return kernel.Distance{Km: km, Source: kernel.DistanceSourceRouted}
		}
		if err != nil {
			e.log.WarnContext(ctx, "routing provider failed, falling back to straight line",
				slog.Any("error", err))
		}
	}

	km, err := from.DistanceKm(*to)
	if err != nil {
		// Unconstructed points should not reach here; treat as unknown.
		return kernel.Distance{Km: DefaultDistanceKm, Source: kernel.DistanceSourceDefault}
	}

	return kernel.Distance{Km: km * roadFactor, Source: kernel.DistanceSourceStraightLine}
}
