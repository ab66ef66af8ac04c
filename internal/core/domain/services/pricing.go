package services

import (
	"math"
	"time"

	"lastmile/internal/core/domain/model/zone"
	"lastmile/internal/pkg/errs"
)

const (
	// fragileSurcharge is added after all multipliers, in minor units.
	fragileSurcharge = 500

	// roundingStep is the granularity quoted prices are rounded to.
	roundingStep = 50.0

	// Night hours: [nightStartHour, 24) and [0, nightEndHour).
	nightStartHour = 20
	nightEndHour   = 6

	immediateFactor = 1.5
	nightFactor     = 2.0
	weekendFactor   = 1.3
)

// CoordinateSource records where the coordinate used for an endpoint came
// from, so quotes can disclose estimation quality.
type CoordinateSource string

const (
	// CoordinateFromClient means the caller supplied exact coordinates.
	CoordinateFromClient CoordinateSource = "client"
	// CoordinateFromZone means the zone centroid stood in for the endpoint.
	CoordinateFromZone CoordinateSource = "zone"
	// CoordinateUnknown means no coordinate was available at all.
	CoordinateUnknown CoordinateSource = "fallback"
)

// AppliedMultiplier is one surge factor that contributed to the price.
type AppliedMultiplier struct {
	Name   string
	Factor float64
}

// PriceInput carries everything the calculator needs for one quote.
// WeightKg is the actual scale weight; BillableWeightKg is the greater of
// actual and volumetric weight and defaults to WeightKg when left zero.
// Distance comes from the estimator; rates from the tariff lookup or
// defaults.
type PriceInput struct {
	Rates            zone.Rates
	WeightKg         float64
	BillableWeightKg float64
	DistanceKm       float64
	Fragile          bool
	Immediate        bool
	At               time.Time
}

// PriceBreakdown itemizes a computed price. All monetary figures are in
// minor currency units; intermediate values stay fractional until the
// final rounding.
type PriceBreakdown struct {
	BaseFee float64
	// WeightFee charges the actual weight above the included allowance.
	WeightFee float64
	// VolumeFee charges the volumetric overhang: the part of the billable
	// weight that exists only because the package is bulky.
	VolumeFee   float64
	DistanceFee float64
	Subtotal    float64
	Multipliers []AppliedMultiplier
	// FragileSurcharge is applied after the multipliers.
	FragileSurcharge int64
	// Total is the final quoted price, rounded to the nearest 50.
	Total int64
}

// PriceCalculator computes delivery prices from rates, weight, distance,
// and timing. It is a pure domain service with no dependencies.
//
// The formula:
//
//	subtotal = base + perKg x weight over allowance + perKg x volume overhang + perKm x distance
//	price    = round50(subtotal x multipliers) + fragile surcharge
//
// Multipliers compound: an immediate night-time weekend delivery pays
// 1.5 x 2.0 x 1.3 times the subtotal. Rounding is half-up to the
// nearest 50 minor units and happens before the fragile surcharge, so
// the surcharge always survives intact in the final figure.
type PriceCalculator struct{}

// NewPriceCalculator creates a new PriceCalculator instance.
func NewPriceCalculator() PriceCalculator {
	return PriceCalculator{}
}

// Calculate computes the price for the given input.
//
// Returns an error only when the rates are invalid or the inputs are
// negative; a zero chargeable weight or distance is fine.
func (p PriceCalculator) Calculate(in PriceInput) (PriceBreakdown, error) {
	if err := in.Rates.Validate(); err != nil {
		return PriceBreakdown{}, err
	}
	if in.WeightKg < 0 {
		return PriceBreakdown{}, errs.NewValueIsInvalidError("weight must not be negative")
	}
	if in.BillableWeightKg < 0 {
		return PriceBreakdown{}, errs.NewValueIsInvalidError("billable weight must not be negative")
	}
	if in.DistanceKm < 0 {
		return PriceBreakdown{}, errs.NewValueIsInvalidError("distance must not be negative")
	}

	billableKg := in.BillableWeightKg
	if billableKg < in.WeightKg {
		billableKg = in.WeightKg
	}

	// The included allowance covers actual weight only; a bulky package
	// pays for its volumetric overhang from the first kilogram.
	chargeableKg := in.WeightKg - in.Rates.IncludedWeightKg
	if chargeableKg < 0 {
		chargeableKg = 0
	}
	volumeKg := billableKg - in.WeightKg

	breakdown := PriceBreakdown{
		BaseFee:     in.Rates.Base,
		WeightFee:   in.Rates.PerKg * chargeableKg,
		VolumeFee:   in.Rates.PerKg * volumeKg,
		DistanceFee: in.Rates.PerKm * in.DistanceKm,
		Multipliers: p.multipliers(in),
	}
	breakdown.Subtotal = breakdown.BaseFee + breakdown.WeightFee + breakdown.VolumeFee + breakdown.DistanceFee

	price := breakdown.Subtotal
	for _, m := range breakdown.Multipliers {
		price *= m.Factor
	}

	breakdown.Total = roundToStep(price)
	if in.Fragile {
		breakdown.FragileSurcharge = fragileSurcharge
		breakdown.Total += fragileSurcharge
	}

	return breakdown, nil
}

// multipliers returns the surge factors active for the input, in a fixed
// order so quotes render deterministically.
func (p PriceCalculator) multipliers(in PriceInput) []AppliedMultiplier {
	var applied []AppliedMultiplier
	if in.Immediate {
		applied = append(applied, AppliedMultiplier{Name: "immediate", Factor: immediateFactor})
	}
	if isNight(in.At) {
		applied = append(applied, AppliedMultiplier{Name: "night", Factor: nightFactor})
	}
	if isWeekend(in.At) {
		applied = append(applied, AppliedMultiplier{Name: "weekend", Factor: weekendFactor})
	}
	return applied
}

func isNight(at time.Time) bool {
	hour := at.Hour()
	return hour >= nightStartHour || hour < nightEndHour
}

func isWeekend(at time.Time) bool {
	switch at.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// roundToStep rounds half-up to the nearest multiple of the rounding step.
func roundToStep(price float64) int64 {
	return int64(math.Floor(price/roundingStep+0.5) * roundingStep)
}
