package kernel

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// DistanceSource tags how a travel distance was obtained. The tag is persisted
// with the delivery and returned in price quotes for auditability.
type DistanceSource string

const (
	// DistanceSourceRouted means the distance came from the routing provider.
	DistanceSourceRouted DistanceSource = "routed"
	// DistanceSourceStraightLine means the routing provider failed and the
	// distance is great-circle scaled by the road factor.
	DistanceSourceStraightLine DistanceSource = "straight_line"
	// DistanceSourceDefault means at least one coordinate was absent and the
	// conservative default distance was used.
	DistanceSourceDefault DistanceSource = "default"
)

// Validate checks that the source is one of the known tags.
func (s DistanceSource) Validate() error {
	switch s {
	case DistanceSourceRouted, DistanceSourceStraightLine, DistanceSourceDefault:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("distance source",
			fmt.Errorf("%q is not a valid distance source", string(s)))
	}
}

// Distance is a measured travel distance in kilometers together with the
// provenance of the estimate. Distance values are produced exclusively by the
// distance estimator; they are never negative.
type Distance struct {
	Km     float64
	Source DistanceSource
}

// Validate checks the distance for internal consistency.
func (d Distance) Validate() error {
	if d.Km < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distance",
			fmt.Errorf("%f km is negative", d.Km))
	}
	return d.Source.Validate()
}

// String implements fmt.Stringer.
func (d Distance) String() string {
	return fmt.Sprintf("%.2f km (%s)", d.Km, d.Source)
}
