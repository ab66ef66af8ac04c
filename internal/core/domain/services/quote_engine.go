package services

import (
	"context"
	"errors"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/zone"
	"lastmile/internal/pkg/errs"
)

// TariffSource provides tariff lookups by normalized district keys. The
// postgres zone repository implements it.
type TariffSource interface {
	// EffectiveTariff returns the tariff entry effective at the given
	// instant, or errs.ErrObjectNotFound when no specific entry applies.
	EffectiveTariff(ctx context.Context, originKey, destKey string, at time.Time) (zone.TariffEntry, error)
}

// QuoteRequest describes one endpoint pair and package for pricing.
// Coordinates are optional; the engine substitutes zone centroids and
// finally the default distance when they are missing.
type QuoteRequest struct {
	OriginDistrict     string
	OriginNeighborhood string
	OriginCoord        *kernel.GeoPoint

	DestDistrict     string
	DestNeighborhood string
	DestCoord        *kernel.GeoPoint

	Package   delivery.PackageSpec
	Immediate bool
	At        time.Time
}

// Quote is a fully disclosed price offer: the figure itself, the distance
// and where it came from, the resolved zones, and which coordinates the
// estimate was based on.
type Quote struct {
	Breakdown PriceBreakdown
	Distance  kernel.Distance

	OriginZone zone.Zone
	DestZone   zone.Zone

	OriginCoordSource CoordinateSource
	DestCoordSource   CoordinateSource

	BillableWeightKg float64

	// UsedDefaultRates is true when no tariff entry covered the pair and
	// the configured default rates applied.
	UsedDefaultRates bool
}

// QuoteEngine produces price quotes. It chains zone resolution, coordinate
// selection, distance estimation, tariff lookup, and the pricing formula.
//
// Coordinate selection per endpoint: a client-supplied coordinate wins,
// then the resolved zone's centroid, then nothing (which makes the
// distance estimator fall back to its default figure).
type QuoteEngine struct {
	zones        *ZoneDirectory
	tariffs      TariffSource
	distance     *DistanceEstimator
	calc         PriceCalculator
	defaultRates zone.Rates
}

// NewQuoteEngine creates a QuoteEngine. defaultRates apply whenever no
// tariff entry covers an origin/destination pair.
func NewQuoteEngine(
	zones *ZoneDirectory,
	tariffs TariffSource,
	distance *DistanceEstimator,
	defaultRates zone.Rates,
) (*QuoteEngine, error) {
	if zones == nil {
		return nil, errs.NewValueIsRequiredError("zones")
	}
	if tariffs == nil {
		return nil, errs.NewValueIsRequiredError("tariffs")
	}
	if distance == nil {
		return nil, errs.NewValueIsRequiredError("distance")
	}
	if err := defaultRates.Validate(); err != nil {
		return nil, err
	}

	return &QuoteEngine{
		zones:        zones,
		tariffs:      tariffs,
		distance:     distance,
		calc:         NewPriceCalculator(),
		defaultRates: defaultRates,
	}, nil
}

// Quote prices the request. Both endpoints must resolve to served zones;
// everything else degrades gracefully.
func (e *QuoteEngine) Quote(ctx context.Context, req QuoteRequest) (Quote, error) {
	if err := req.Package.Validate(); err != nil {
		return Quote{}, err
	}

	originZone, err := e.zones.Resolve(ctx, req.OriginDistrict, req.OriginNeighborhood)
	if err != nil {
		return Quote{}, err
	}
	destZone, err := e.zones.Resolve(ctx, req.DestDistrict, req.DestNeighborhood)
	if err != nil {
		return Quote{}, err
	}

	originCoord, originSource := pickCoordinate(req.OriginCoord, originZone)
	destCoord, destSource := pickCoordinate(req.DestCoord, destZone)

	distance := e.distance.Estimate(ctx, originCoord, destCoord)

	rates := e.defaultRates
	usedDefault := true
	entry, err := e.tariffs.EffectiveTariff(ctx, originZone.DistrictKey(), destZone.DistrictKey(), req.At)
	switch {
	case err == nil:
		rates = entry.Rates()
		usedDefault = false
	case errors.Is(err, errs.ErrObjectNotFound):
		// keep defaults
	default:
		return Quote{}, err
	}

	billable := req.Package.BillableWeightKg()
	breakdown, err := e.calc.Calculate(PriceInput{
		Rates:            rates,
		WeightKg:         req.Package.WeightKg,
		BillableWeightKg: billable,
		DistanceKm:       distance.Km,
		Fragile:          req.Package.Fragile,
		Immediate:        req.Immediate,
		At:               req.At,
	})
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Breakdown:         breakdown,
		Distance:          distance,
		OriginZone:        originZone,
		DestZone:          destZone,
		OriginCoordSource: originSource,
		DestCoordSource:   destSource,
		BillableWeightKg:  billable,
		UsedDefaultRates:  usedDefault,
	}, nil
}

func pickCoordinate(client *kernel.GeoPoint, z zone.Zone) (*kernel.GeoPoint, CoordinateSource) {
	if client != nil {
		return client, CoordinateFromClient
	}
	if centroid := z.Centroid(); centroid != nil {
		return centroid, CoordinateFromZone
	}
	return nil, CoordinateUnknown
}
