// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, notification, caching,
// and the earning ledger. Adapters implement these interfaces, enabling
// dependency inversion and testability.
package ports

import (
	"context"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	// The delivery must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	// The quoted price, tracking code, and creation timestamp are
	// immutable and never touched by updates.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByTrackingCode retrieves a delivery by its public tracking code.
	GetByTrackingCode(ctx context.Context, trackingCode string) (*delivery.Delivery, error)

	// GetForUpdate retrieves a delivery and locks its row for the duration
	// of the surrounding transaction. Lifecycle commands use this to
	// serialize concurrent transitions on the same delivery.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetFirstPendingForUpdate retrieves the oldest pending delivery and
	// locks its row, skipping rows already locked by concurrent dispatchers.
	// Returns errs.ErrObjectNotFound when nothing is pending.
	GetFirstPendingForUpdate(ctx context.Context) (*delivery.Delivery, error)

	// GetAllActive retrieves deliveries in pending, assigned, or
	// in_progress status, oldest first.
	GetAllActive(ctx context.Context) ([]*delivery.Delivery, error)

	// CountActiveForCourier returns how many deliveries are currently
	// assigned to or being carried by the given courier.
	CountActiveForCourier(ctx context.Context, courierID kernel.UUID) (int, error)
}
