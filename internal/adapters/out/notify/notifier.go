// Package notify implements ports.Notifier on top of structured logging.
// Real channels (push, SMS) plug in behind the same port later; for now every
// lifecycle event is emitted as a log record so operators can follow the flow.
package notify

import (
	"context"
	"log/slog"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
)

// SlogNotifier logs delivery lifecycle notifications. Notification delivery
// is fire-and-forget: it never returns an error to the calling handler.
type SlogNotifier struct {
	log *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger.
func NewSlogNotifier(log *slog.Logger) *SlogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &SlogNotifier{log: log}
}

// NotifyAssigned tells the courier a delivery was assigned to them.
func (n *SlogNotifier) NotifyAssigned(ctx context.Context, d *delivery.Delivery) {
	n.log.InfoContext(ctx, "delivery assigned",
		slog.String("tracking_code", d.TrackingCode()),
		slog.String("courier_id", courierAttr(d)),
		slog.String("destination", d.Destination().District),
	)
}

// NotifyUnassigned tells a courier the delivery left their hands.
func (n *SlogNotifier) NotifyUnassigned(ctx context.Context, d *delivery.Delivery, courierID kernel.UUID) {
	n.log.InfoContext(ctx, "delivery unassigned",
		slog.String("tracking_code", d.TrackingCode()),
		slog.String("courier_id", courierID.String()),
		slog.String("status", d.Status().String()),
	)
}

// NotifyStatusChanged tells the requester the delivery moved to a new status.
func (n *SlogNotifier) NotifyStatusChanged(ctx context.Context, d *delivery.Delivery) {
	n.log.InfoContext(ctx, "delivery status changed",
		slog.String("tracking_code", d.TrackingCode()),
		slog.String("status", d.Status().String()),
	)
}

// NotifyDelivered tells the requester the package was handed over.
func (n *SlogNotifier) NotifyDelivered(ctx context.Context, d *delivery.Delivery) {
	n.log.InfoContext(ctx, "delivery completed",
		slog.String("tracking_code", d.TrackingCode()),
		slog.String("recipient", d.Recipient().Name),
	)
}

func courierAttr(d *delivery.Delivery) string {
	if d.Courier() == nil {
		return ""
	}
	return d.Courier().String()
}
