package commands

import (
	"context"
	"time"

	"lastmile/internal/core/ports"
)

// ConfirmPickupCommandHandler moves an assigned delivery to in_progress
// when the courier collects the package. The courier's reported position
// also refreshes their last known location for future dispatch scoring.
type ConfirmPickupCommandHandler struct {
	uowFactory  UoWFactory
	notifier    ports.Notifier
	thresholdKm float64
}

// NewConfirmPickupCommandHandler creates a handler for pickup confirmation.
// thresholdKm bounds how far from the pickup point a confirmation is
// accepted when the courier reports a position.
func NewConfirmPickupCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	thresholdKm float64,
) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		uowFactory:  uowFactory,
		notifier:    notifier,
		thresholdKm: thresholdKm,
	}
}

// Handle processes the pickup confirmation. Repeated confirmations by the
// same courier succeed without side effects, so mobile clients can safely
// retry.
func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) error {
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

	if err = aggregate.ConfirmPickup(
		cmd.CourierID(), time.Now(), cmd.Position(), h.thresholdKm, cmd.BypassProximity(),
	); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if pos := cmd.Position(); pos != nil {
		carrier, courierErr := courierRepo.GetForUpdate(ctx, cmd.CourierID())
		if courierErr != nil {
			return courierErr
		}
		if courierErr = carrier.MoveTo(*pos); courierErr != nil {
			return courierErr
		}
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
