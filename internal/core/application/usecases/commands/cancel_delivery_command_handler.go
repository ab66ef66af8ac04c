package commands

import (
	"context"
	"time"

	"lastmile/internal/core/ports"
)

// CancelDeliveryCommandHandler aborts a delivery and, when a courier was
// already involved, releases their active load.
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewCancelDeliveryCommandHandler creates a handler for cancellation.
func NewCancelDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the cancellation command. Role rules live on the
// aggregate; the handler only coordinates the courier side effect.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	// Snapshot the courier link before cancelling; the aggregate keeps it
	// for the audit trail but the load must be released here.
	courierID := aggregate.Courier()

	if err = aggregate.Cancel(cmd.Actor(), cmd.Reason(), time.Now()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if courierID != nil {
		carrier, courierErr := courierRepo.GetForUpdate(ctx, *courierID)
		if courierErr != nil {
			return courierErr
		}
		carrier.DecrementActiveLoad()
		if courierErr = courierRepo.Update(ctx, carrier); courierErr != nil {
			return courierErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyStatusChanged(ctx, aggregate)
	return nil
}
