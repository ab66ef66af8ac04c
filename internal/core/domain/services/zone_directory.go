package services

import (
	"context"
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/zone"
	"lastmile/internal/pkg/errs"
)

// ErrUnknownZone is returned when a district is not served at all.
var ErrUnknownZone = errors.New("unknown zone")

// ZoneSource provides zone lookups by normalized keys. The postgres zone
// repository implements it.
type ZoneSource interface {
	// GetZone returns the zone for the given normalized district and
	// neighborhood keys, or errs.ErrObjectNotFound when absent.
	GetZone(ctx context.Context, districtKey, neighborhoodKey string) (zone.Zone, error)
}

// ZoneDirectory resolves free-form district/neighborhood names to registered
// zones. Matching is case- and accent-insensitive; an unknown neighborhood
// inside a known district falls back to the district-level zone.
type ZoneDirectory struct {
	source ZoneSource
}

// NewZoneDirectory creates a ZoneDirectory backed by the given source.
func NewZoneDirectory(source ZoneSource) (*ZoneDirectory, error) {
	if source == nil {
		return nil, errs.NewValueIsRequiredError("source")
	}
	return &ZoneDirectory{source: source}, nil
}

// Resolve maps a district and optional neighborhood name to a zone.
//
// Resolution order:
//  1. exact (district, neighborhood) match
//  2. district-level zone when the neighborhood is unknown or empty
//
// Returns ErrUnknownZone when the district itself is not served.
func (d *ZoneDirectory) Resolve(ctx context.Context, district, neighborhood string) (zone.Zone, error) {
	districtKey := zone.NormalizeName(district)
	if districtKey == "" {
		return zone.Zone{}, errs.NewValueIsRequiredError("district")
	}

	if neighborhoodKey := zone.NormalizeName(neighborhood); neighborhoodKey != "" {
		z, err := d.source.GetZone(ctx, districtKey, neighborhoodKey)
		if err == nil {
			return z, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return zone.Zone{}, err
		}
		// Unknown neighborhood: fall back to the district-level zone.
	}

	z, err := d.source.GetZone(ctx, districtKey, "")
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return zone.Zone{}, fmt.Errorf("%w: district %q is not served", ErrUnknownZone, district)
		}
		return zone.Zone{}, err
	}

	return z, nil
}
