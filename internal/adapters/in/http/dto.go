package http

import (
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type waypointRequest struct {
	District     string   `json:"district"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	Address      string   `json:"address"`
	Lat          *float64 `json:"lat,omitempty"`
	Lon          *float64 `json:"lon,omitempty"`
}

func (r waypointRequest) toDomain() (delivery.Waypoint, error) {
	wp := delivery.Waypoint{
		District:     r.District,
		Neighborhood: r.Neighborhood,
		Address:      r.Address,
	}

	if (r.Lat == nil) != (r.Lon == nil) {
		return delivery.Waypoint{}, errs.NewValueIsInvalidError("lat and lon must be supplied together")
	}
	if r.Lat != nil {
		coord, err := kernel.NewGeoPoint(*r.Lat, *r.Lon)
		if err != nil {
			return delivery.Waypoint{}, err
		}
		wp.Coord = &coord
	}

	return wp, nil
}

type packageRequest struct {
	WeightKg        float64  `json:"weight_kg"`
	LengthCm        *float64 `json:"length_cm,omitempty"`
	WidthCm         *float64 `json:"width_cm,omitempty"`
	HeightCm        *float64 `json:"height_cm,omitempty"`
	Fragile         bool     `json:"fragile"`
	RequiredVehicle *string  `json:"required_vehicle,omitempty"`
}

func (r packageRequest) toDomain() (delivery.PackageSpec, error) {
	pack := delivery.PackageSpec{
		WeightKg: r.WeightKg,
		Fragile:  r.Fragile,
	}

	dims := 0
	for _, d := range []*float64{r.LengthCm, r.WidthCm, r.HeightCm} {
		if d != nil {
			dims++
		}
	}
	switch dims {
	case 0:
	case 3:
		pack.Dims = &delivery.Dimensions{
			LengthCm: *r.LengthCm,
			WidthCm:  *r.WidthCm,
			HeightCm: *r.HeightCm,
		}
	default:
		return delivery.PackageSpec{}, errs.NewValueIsInvalidError(
			"length_cm, width_cm and height_cm must be supplied together")
	}

	if r.RequiredVehicle != nil {
		vehicle, err := kernel.ParseVehicleType(*r.RequiredVehicle)
		if err != nil {
			return delivery.PackageSpec{}, err
		}
		pack.RequiredVehicle = &vehicle
	}

	return pack, nil
}

type contactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (r contactRequest) toDomain() delivery.Contact {
	return delivery.Contact{Name: r.Name, Phone: r.Phone}
}
