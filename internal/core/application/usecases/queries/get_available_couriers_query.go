package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetAvailableCouriersQueryIsNotConstructed = errors.New(
	"GetAvailableCouriersQuery must be created via NewGetAvailableCouriersQuery constructor",
)

// GetAvailableCouriersQuery retrieves verified couriers currently marked
// available, i.e. the dispatch candidate pool.
type GetAvailableCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableCouriersQuery creates a query for the dispatchable courier list.
func NewGetAvailableCouriersQuery() GetAvailableCouriersQuery {
	return GetAvailableCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableCouriersQueryIsNotConstructed)
}

// GetAvailableCouriersQueryResponse is one dispatchable courier.
// Lat/Lon are nil when the courier has not reported a position yet.
type GetAvailableCouriersQueryResponse struct {
	ID                  kernel.UUID
	Name                string
	Vehicle             string
	CapacityKg          float64
	Lat                 *float64
	Lon                 *float64
	Rating              float64
	CompletedDeliveries int
	ActiveDeliveries    int
}
