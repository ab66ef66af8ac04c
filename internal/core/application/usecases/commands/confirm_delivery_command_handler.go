package commands

import (
	"context"
	"time"

	"lastmile/internal/core/ports"
)

// ConfirmDeliveryCommandHandler completes a delivery: verifies the
// recipient's code, updates the courier's counters, and posts the earning
// to the ledger. The earning is recorded exactly once per delivery, inside
// the same transaction, no matter how often the confirmation is retried.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	ledger     ports.EarningLedger
}

// NewConfirmDeliveryCommandHandler creates a handler for handover confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	ledger ports.EarningLedger,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		ledger:     ledger,
	}
}

// Handle processes the handover confirmation.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
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

	carrier, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.ConfirmDelivery(carrier.ID(), cmd.ConfirmationCode(), time.Now()); err != nil {
		return err
	}
	carrier.RecordCompletedDelivery()

	if !aggregate.EarningRecorded() {
		amount := aggregate.CalculatedPrice()
		if actual := aggregate.ActualPrice(); actual != nil {
			amount = *actual
		}
		if err = h.ledger.RecordEarning(ctx, carrier.ID(), aggregate.ID(), amount); err != nil {
			return err
		}
		if err = aggregate.MarkEarningRecorded(); err != nil {
			return err
		}
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, carrier); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyDelivered(ctx, aggregate)
	return nil
}
