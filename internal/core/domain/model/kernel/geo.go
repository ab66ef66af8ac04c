package kernel

import (
	"errors"
	"fmt"
	"math"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// Latitude/longitude bounds for a valid WGS84 coordinate.
const (
	GeoMinLatitude  = -90.0
	GeoMaxLatitude  = 90.0
	GeoMinLongitude = -180.0
	GeoMaxLongitude = 180.0
)

// earthRadiusKm is the mean Earth radius used for great-circle distance.
const earthRadiusKm = 6371.0

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a WGS84 coordinate pair with validated bounds.
// GeoPoint is an immutable value object; the zero value is invalid and will
// fail validation - use NewGeoPoint to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(41.0082, 28.9784)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(point) // Output: GeoPoint(41.008200,28.978400)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint with the specified latitude and longitude.
// Latitude must be within [-90,90] and longitude within [-180,180].
//
// Returns:
//   - GeoPoint: A valid coordinate instance
//   - error: Validation error if either component is outside the valid bounds
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLat(lat), point.setLon(lon)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed using NewGeoPoint.
// The zero value of GeoPoint is invalid and will fail this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in decimal degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// String returns a human-readable representation in the format
// "GeoPoint(lat,lon)". This method implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lon)
}

// IsEqual compares two geo points for equality.
// Two points are considered equal if both components match exactly.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lon == other.lon, nil
}

// DistanceKm calculates the great-circle (haversine) distance to another point
// in kilometers. Both points must be properly constructed.
//
// Returns:
//   - float64: The great-circle distance in kilometers
//   - error: Validation error if either point is improperly constructed
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLon := (other.lon - p.lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// setLat sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value
// receivers, to enable self-encapsulated validation during object construction.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoMinLatitude || lat > GeoMaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, GeoMinLatitude, GeoMaxLatitude)
	}

	p.lat = lat
	return nil
}

// setLon sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value
// receivers, to enable self-encapsulated validation during object construction.
func (p *GeoPoint) setLon(lon float64) error {
	if lon < GeoMinLongitude || lon > GeoMaxLongitude {
		return errs.NewValueIsOutOfRangeError("lon", lon, GeoMinLongitude, GeoMaxLongitude)
	}

	p.lon = lon
	return nil
}
