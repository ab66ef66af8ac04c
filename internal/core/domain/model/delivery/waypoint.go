package delivery

import (
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/zone"
	"lastmile/internal/pkg/errs"
)

// Waypoint is one end of a delivery: a zone reference plus a free-form
// street address and, when the client supplied them, exact coordinates.
//
// Waypoint is a value object; the zero value is invalid.
type Waypoint struct {
	// District is the display name of the administrative district (required).
	District string

	// Neighborhood is the display name of the finer area, or empty.
	Neighborhood string

	// Address is the free-form street address (required).
	Address string

	// Coord is the exact coordinate, or nil when only the zone is known.
	Coord *kernel.GeoPoint
}

// Validate checks that district and address are present and any
// supplied coordinate is properly constructed.
func (w Waypoint) Validate() error {
	if strings.TrimSpace(w.District) == "" {
		return errs.NewValueIsRequiredError("district")
	}
	if strings.TrimSpace(w.Address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if w.Coord != nil {
		if err := w.Coord.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DistrictKey returns the normalized lookup key of the waypoint's district.
func (w Waypoint) DistrictKey() string {
	return zone.NormalizeName(w.District)
}

// NeighborhoodKey returns the normalized lookup key of the waypoint's
// neighborhood, or the empty string when none was given.
func (w Waypoint) NeighborhoodKey() string {
	if strings.TrimSpace(w.Neighborhood) == "" {
		return ""
	}
	return zone.NormalizeName(w.Neighborhood)
}

// Contact identifies the person receiving the package.
type Contact struct {
	Name  string
	Phone string
}

// Validate checks that both name and phone are present.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errs.NewValueIsRequiredError("recipient name")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return errs.NewValueIsRequiredError("recipient phone")
	}
	return nil
}
