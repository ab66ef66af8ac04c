package queries

import (
	"errors"
	"time"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrGetDeliveryByTrackingQueryIsNotConstructed = errors.New(
	"GetDeliveryByTrackingQuery must be created via NewGetDeliveryByTrackingQuery constructor",
)

// GetDeliveryByTrackingQuery looks a delivery up by its human tracking code.
type GetDeliveryByTrackingQuery struct { //nolint:recvcheck //using for validation
	trackingCode string

	guard guard.ConstructorGuard
}

// NewGetDeliveryByTrackingQuery creates a tracking lookup query.
func NewGetDeliveryByTrackingQuery(trackingCode string) (GetDeliveryByTrackingQuery, error) {
	if trackingCode == "" {
		return GetDeliveryByTrackingQuery{}, errs.NewValueIsRequiredError("tracking code")
	}

	return GetDeliveryByTrackingQuery{
		trackingCode: trackingCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryByTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryByTrackingQueryIsNotConstructed)
}

// TrackingCode returns the code to look up.
func (q GetDeliveryByTrackingQuery) TrackingCode() string {
	return q.trackingCode
}

// GetDeliveryByTrackingQueryResponse is the public tracking view of a
// delivery: status and milestone timestamps, without pricing internals.
type GetDeliveryByTrackingQueryResponse struct {
	TrackingCode   string
	Status         string
	OriginDistrict string
	DestDistrict   string
	CreatedAt      time.Time
	AssignedAt     *time.Time
	PickedUpAt     *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
}
