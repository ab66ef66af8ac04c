// Package queries contains read-only operations in the CQRS architecture.
// Price quotes run through the domain quote engine; list queries read
// directly from the database for performance, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/guard"
)

var ErrGetPriceQuoteQueryIsNotConstructed = errors.New(
	"GetPriceQuoteQuery must be created via NewGetPriceQuoteQuery constructor",
)

// GetPriceQuoteQuery requests a price for a prospective delivery. Quotes
// are stateless: nothing is persisted, and accepting one simply replays
// the same inputs through delivery creation.
type GetPriceQuoteQuery struct { //nolint:recvcheck //using for validation
	origin      delivery.Waypoint
	destination delivery.Waypoint
	pack        delivery.PackageSpec
	immediate   bool
	at          time.Time

	guard guard.ConstructorGuard
}

// NewGetPriceQuoteQuery creates a quote query. at is the intended delivery
// time and drives the night/weekend multipliers; use time.Now() for
// as-soon-as-possible deliveries.
func NewGetPriceQuoteQuery(
	origin delivery.Waypoint,
	destination delivery.Waypoint,
	pack delivery.PackageSpec,
	immediate bool,
	at time.Time,
) (GetPriceQuoteQuery, error) {
	q := GetPriceQuoteQuery{
		immediate: immediate,
		at:        at,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOrigin(origin),
		q.setDestination(destination),
		q.setPackage(pack),
	); err != nil {
		return GetPriceQuoteQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPriceQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetPriceQuoteQueryIsNotConstructed)
}

// Origin returns the pickup waypoint.
func (q GetPriceQuoteQuery) Origin() delivery.Waypoint {
	return q.origin
}

// Destination returns the drop-off waypoint.
func (q GetPriceQuoteQuery) Destination() delivery.Waypoint {
	return q.destination
}

// Package returns the package specification.
func (q GetPriceQuoteQuery) Package() delivery.PackageSpec {
	return q.pack
}

// Immediate reports whether the immediate surcharge applies.
func (q GetPriceQuoteQuery) Immediate() bool {
	return q.immediate
}

// At returns the intended delivery time.
func (q GetPriceQuoteQuery) At() time.Time {
	return q.at
}

func (q *GetPriceQuoteQuery) setOrigin(origin delivery.Waypoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	q.origin = origin
	return nil
}

func (q *GetPriceQuoteQuery) setDestination(destination delivery.Waypoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	q.destination = destination
	return nil
}

func (q *GetPriceQuoteQuery) setPackage(pack delivery.PackageSpec) error {
	if err := pack.Validate(); err != nil {
		return err
	}
	q.pack = pack
	return nil
}

// AppliedMultiplierResponse is one surge factor in a quote response.
type AppliedMultiplierResponse struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// GetPriceQuoteQueryResponse is the fully itemized quote.
type GetPriceQuoteQueryResponse struct {
	Total            int64                       `json:"total"`
	BaseFee          float64                     `json:"base_fee"`
	WeightFee        float64                     `json:"weight_fee"`
	VolumeFee        float64                     `json:"volume_fee"`
	DistanceFee      float64                     `json:"distance_fee"`
	Subtotal         float64                     `json:"subtotal"`
	Multipliers      []AppliedMultiplierResponse `json:"multipliers"`
	FragileSurcharge int64                       `json:"fragile_surcharge"`

	BillableWeightKg float64 `json:"billable_weight_kg"`
	DistanceKm       float64 `json:"distance_km"`
	DistanceSource   string  `json:"distance_source"`

	OriginZone        string `json:"origin_zone"`
	DestinationZone   string `json:"destination_zone"`
	OriginCoordSource string `json:"origin_coord_source"`
	DestCoordSource   string `json:"dest_coord_source"`
	UsedDefaultRates  bool   `json:"used_default_rates"`
}
