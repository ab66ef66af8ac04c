package zone

import (
	"errors"
	"strings"
	"unicode"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrZoneIsNotConstructed is returned when using an improperly initialized Zone.
var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// nameFolder strips diacritics: decompose to NFD, drop combining marks, recompose.
var nameFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName converts a district or neighborhood name to its canonical lookup
// key: lower-cased, accent-folded, and with surrounding whitespace trimmed.
// Matching in the zone directory is performed on normalized keys only, so
// "Kadıköy", "kadikoy" and " KADIKÖY " all resolve to the same zone.
func NormalizeName(name string) string {
	folded, _, err := transform.String(nameFolder, name)
	if err != nil {
		// Fold failures leave the input as-is; lookup then degrades to
		// case-insensitive matching, which is still deterministic.
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Zone is a named tariff area keyed by administrative district and optionally a
// finer neighborhood. A zone may carry a centroid coordinate that serves as the
// geocoding fallback when a caller supplies no explicit coordinates.
//
// Zone is an immutable value object; use NewZone to create instances.
type Zone struct { //nolint:recvcheck //using for validation
	district     string
	neighborhood string
	centroid     *kernel.GeoPoint
	guard        guard.ConstructorGuard
}

// NewZone creates a tariff zone. The district name is required; neighborhood is
// optional (empty means the zone covers the whole district). The centroid is
// optional and, when present, must be a properly constructed GeoPoint.
func NewZone(district, neighborhood string, centroid *kernel.GeoPoint) (Zone, error) {
	z := Zone{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		z.setDistrict(district),
		z.setNeighborhood(neighborhood),
		z.setCentroid(centroid),
	); err != nil {
		return Zone{}, err
	}

	return z, nil
}

// Validate checks if the Zone was properly constructed using NewZone.
func (z Zone) Validate() error {
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// District returns the display name of the zone's district.
func (z Zone) District() string {
	return z.district
}

// Neighborhood returns the display name of the zone's neighborhood,
// or the empty string for a district-level zone.
func (z Zone) Neighborhood() string {
	return z.neighborhood
}

// Centroid returns the zone's reference coordinate, or nil if none is known.
func (z Zone) Centroid() *kernel.GeoPoint {
	return z.centroid
}

// DistrictKey returns the normalized lookup key of the district.
func (z Zone) DistrictKey() string {
	return NormalizeName(z.district)
}

// NeighborhoodKey returns the normalized lookup key of the neighborhood,
// or the empty string for a district-level zone.
func (z Zone) NeighborhoodKey() string {
	if z.neighborhood == "" {
		return ""
	}
	return NormalizeName(z.neighborhood)
}

// IsEqual compares two zones by their normalized keys.
func (z Zone) IsEqual(other Zone) bool {
	return z.DistrictKey() == other.DistrictKey() && z.NeighborhoodKey() == other.NeighborhoodKey()
}

// String implements fmt.Stringer.
func (z Zone) String() string {
	if z.neighborhood == "" {
		return z.district
	}
	return z.district + "/" + z.neighborhood
}

func (z *Zone) setDistrict(district string) error {
	if strings.TrimSpace(district) == "" {
		return errs.NewValueIsRequiredError("district")
	}

	z.district = strings.TrimSpace(district)
	return nil
}

func (z *Zone) setNeighborhood(neighborhood string) error {
	z.neighborhood = strings.TrimSpace(neighborhood)
	return nil
}

func (z *Zone) setCentroid(centroid *kernel.GeoPoint) error {
	if centroid == nil {
		return nil
	}

	if err := centroid.Validate(); err != nil {
		return err
	}

	point := *centroid
	z.centroid = &point
	return nil
}
