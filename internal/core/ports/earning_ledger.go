package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
)

// EarningLedger records courier earnings for completed deliveries.
// The confirm-delivery handler posts exactly one entry per delivery,
// inside the same transaction that marks the earning as recorded on
// the aggregate.
type EarningLedger interface {
	// RecordEarning posts the courier's earning for a delivery.
	// amount is in minor currency units.
	RecordEarning(ctx context.Context, courierID, deliveryID kernel.UUID, amount int64) error
}
