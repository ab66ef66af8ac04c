package ports

import (
	"context"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
)

// Notifier pushes lifecycle events to the interested parties. Notification
// failures never fail the command that triggered them; implementations
// log and move on.
type Notifier interface {
	// NotifyAssigned tells the courier a delivery was assigned to them.
	NotifyAssigned(ctx context.Context, d *delivery.Delivery)

	// NotifyUnassigned tells a courier the delivery left their hands,
	// after a rejection or an operator reassignment. courierID is the
	// courier being released, not the one on the delivery now.
	NotifyUnassigned(ctx context.Context, d *delivery.Delivery, courierID kernel.UUID)

	// NotifyStatusChanged tells the requester the delivery moved to a new status.
	NotifyStatusChanged(ctx context.Context, d *delivery.Delivery)

	// NotifyDelivered tells the requester the package was handed over.
	NotifyDelivered(ctx context.Context, d *delivery.Delivery)
}
