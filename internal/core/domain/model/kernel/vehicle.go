package kernel

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// VehicleType enumerates the vehicle classes a courier can operate and a
// delivery can require. The ordering reflects carrying capability: a courier
// whose vehicle ranks at or above the required type can serve the delivery.
type VehicleType string

const (
	VehicleBicycle   VehicleType = "bicycle"
	VehicleMotorbike VehicleType = "motorbike"
	VehicleCar       VehicleType = "car"
	VehicleVan       VehicleType = "van"
)

// vehicleRanks orders vehicle types by carrying capability.
func vehicleRanks() map[VehicleType]int {
	return map[VehicleType]int{
		VehicleBicycle:   1,
		VehicleMotorbike: 2,
		VehicleCar:       3,
		VehicleVan:       4,
	}
}

// ParseVehicleType converts a raw string to a VehicleType.
// Returns a validation error for unknown values.
func ParseVehicleType(s string) (VehicleType, error) {
	vt := VehicleType(s)
	if err := vt.Validate(); err != nil {
		return "", err
	}
	return vt, nil
}

// Validate checks that the vehicle type is one of the known classes.
func (v VehicleType) Validate() error {
	if _, ok := vehicleRanks()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type",
			fmt.Errorf("%q is not a valid vehicle type", string(v)))
	}
	return nil
}

// Satisfies reports whether this vehicle class can serve a delivery that
// requires the given type. A nil requirement is satisfied by any vehicle.
func (v VehicleType) Satisfies(required *VehicleType) bool {
	if required == nil {
		return true
	}

	ranks := vehicleRanks()
	return ranks[v] >= ranks[*required]
}

// String implements fmt.Stringer.
func (v VehicleType) String() string {
	return string(v)
}
