package queries

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/services"
)

var ErrQuoteEngineIsRequired = errors.New("quote engine is required")

// GetPriceQuoteQueryHandler prices a prospective delivery. Unlike the
// other queries it does not touch the database directly: the quote
// engine owns zone resolution, distance estimation and tariff lookup.
type GetPriceQuoteQueryHandler struct {
	engine *services.QuoteEngine
}

func NewGetPriceQuoteQueryHandler(engine *services.QuoteEngine) (GetPriceQuoteQueryHandler, error) {
	if engine == nil {
		return GetPriceQuoteQueryHandler{}, ErrQuoteEngineIsRequired
	}
	return GetPriceQuoteQueryHandler{engine: engine}, nil
}

func (h GetPriceQuoteQueryHandler) Handle(
	ctx context.Context, query GetPriceQuoteQuery,
) (GetPriceQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPriceQuoteQueryResponse{}, err
	}

	origin := query.Origin()
	destination := query.Destination()

	quote, err := h.engine.Quote(ctx, services.QuoteRequest{
		OriginDistrict:     origin.District,
		OriginNeighborhood: origin.Neighborhood,
		OriginCoord:        origin.Coord,
		DestDistrict:       destination.District,
		DestNeighborhood:   destination.Neighborhood,
		DestCoord:          destination.Coord,
		Package:            query.Package(),
		Immediate:          query.Immediate(),
		At:                 query.At(),
	})
	if err != nil {
		return GetPriceQuoteQueryResponse{}, err
	}

	multipliers := make([]AppliedMultiplierResponse, 0, len(quote.Breakdown.Multipliers))
	for _, m := range quote.Breakdown.Multipliers {
		multipliers = append(multipliers, AppliedMultiplierResponse{Name: m.Name, Factor: m.Factor})
	}

	return GetPriceQuoteQueryResponse{
		Total:            quote.Breakdown.Total,
		BaseFee:          quote.Breakdown.BaseFee,
		WeightFee:        quote.Breakdown.WeightFee,
		VolumeFee:        quote.Breakdown.VolumeFee,
		DistanceFee:      quote.Breakdown.DistanceFee,
		Subtotal:         quote.Breakdown.Subtotal,
		Multipliers:      multipliers,
		FragileSurcharge: quote.Breakdown.FragileSurcharge,

		BillableWeightKg: quote.BillableWeightKg,
		DistanceKm:       quote.Distance.Km,
		DistanceSource:   string(quote.Distance.Source),

		OriginZone:        quote.OriginZone.String(),
		DestinationZone:   quote.DestZone.String(),
		OriginCoordSource: string(quote.OriginCoordSource),
		DestCoordSource:   string(quote.DestCoordSource),
		UsedDefaultRates:  quote.UsedDefaultRates,
	}, nil
}
