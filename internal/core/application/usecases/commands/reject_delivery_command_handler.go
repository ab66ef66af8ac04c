package commands

import (
	"context"

	"lastmile/internal/core/ports"
)

// RejectDeliveryCommandHandler returns a declined delivery to the pending
// pool and releases the courier's active load. A later dispatch round may
// offer the same delivery to a different courier, or to the same one if
// nobody else qualifies.
type RejectDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewRejectDeliveryCommandHandler creates a handler for rejection.
func NewRejectDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) RejectDeliveryCommandHandler {
	return RejectDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the rejection command. Only the assigned courier may
// reject; a pending delivery has nothing to reject and yields a business
// rule error.
func (h RejectDeliveryCommandHandler) Handle(ctx context.Context, cmd RejectDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	courierRepo := uow.CourierRepository()

	aggregate, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	rejector, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.Reject(rejector.ID()); err != nil {
		return err
	}
	rejector.DecrementActiveLoad()

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, rejector); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyUnassigned(ctx, aggregate, rejector.ID())
	h.notifier.NotifyStatusChanged(ctx, aggregate)
	return nil
}
