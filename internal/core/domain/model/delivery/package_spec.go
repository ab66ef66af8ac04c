package delivery

import (
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// volumetricDivisor converts package dimensions in centimeters into a
// volumetric weight in kilograms, per the standard air-freight formula.
const volumetricDivisor = 5000.0

// Dimensions are the package measurements in centimeters.
type Dimensions struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

// Validate checks that all dimensions are positive.
func (d Dimensions) Validate() error {
	if d.LengthCm <= 0 || d.WidthCm <= 0 || d.HeightCm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dimensions are invalid",
			fmt.Errorf("%.1fx%.1fx%.1f cm must all be greater than 0", d.LengthCm, d.WidthCm, d.HeightCm))
	}
	return nil
}

// VolumetricWeightKg returns length x width x height / 5000.
func (d Dimensions) VolumetricWeightKg() float64 {
	return d.LengthCm * d.WidthCm * d.HeightCm / volumetricDivisor
}

// PackageSpec describes what is being shipped: actual weight, optional
// dimensions, fragility, and an optional minimum vehicle class.
//
// PackageSpec is a value object; the zero value is invalid.
type PackageSpec struct {
	// WeightKg is the actual scale weight (must be positive).
	WeightKg float64

	// Dims are the package dimensions; nil when the sender did not measure.
	Dims *Dimensions

	// Fragile packages carry a handling surcharge and a care flag for couriers.
	Fragile bool

	// RequiredVehicle is the minimum vehicle class able to carry the package,
	// or nil when any vehicle will do.
	RequiredVehicle *kernel.VehicleType
}

// Validate checks weight, dimensions, and the vehicle requirement.
func (p PackageSpec) Validate() error {
	if p.WeightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%f is not greater than 0", p.WeightKg))
	}
	if p.Dims != nil {
		if err := p.Dims.Validate(); err != nil {
			return err
		}
	}
	if p.RequiredVehicle != nil {
		if err := p.RequiredVehicle.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// VolumetricWeightKg returns the volumetric weight, or 0 when no
// dimensions were supplied.
func (p PackageSpec) VolumetricWeightKg() float64 {
	if p.Dims == nil {
		return 0
	}
	return p.Dims.VolumetricWeightKg()
}

// BillableWeightKg returns the greater of actual and volumetric weight.
// Pricing always charges the billable weight.
func (p PackageSpec) BillableWeightKg() float64 {
	if v := p.VolumetricWeightKg(); v > p.WeightKg {
		return v
	}
	return p.WeightKg
}
