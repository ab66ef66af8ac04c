package ports

import (
	"context"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetForUpdate retrieves a courier and locks its row for the duration
	// of the surrounding transaction, serializing load counter changes.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllDispatchable retrieves all verified, available couriers.
	// The dispatcher narrows this pool further by capacity and zones.
	GetAllDispatchable(ctx context.Context) ([]*courier.Courier, error)
}
