package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves all deliveries that are not yet in a
// terminal state: pending, assigned and in_progress.
type GetActiveDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query for the active delivery board.
func NewGetActiveDeliveriesQuery() GetActiveDeliveriesQuery {
	return GetActiveDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// GetActiveDeliveriesQueryResponse is one row of the active delivery board.
// CourierID is nil while the delivery is still pending.
type GetActiveDeliveriesQueryResponse struct {
	ID              kernel.UUID
	TrackingCode    string
	Status          string
	OriginDistrict  string
	DestDistrict    string
	CourierID       *kernel.UUID
	CalculatedPrice int64
	DistanceKm      float64
	CreatedAt       time.Time
}
