package commands

import (
	"context"
	"time"

	"lastmile/internal/core/ports"
)

// ReassignDeliveryCommandHandler moves a delivery from its current courier
// to a new one. The old courier's load is released, the new courier is
// validated like any manual assignment, and an in-progress delivery drops
// back to assigned so the new courier confirms pickup again.
type ReassignDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewReassignDeliveryCommandHandler creates a handler for reassignment.
func NewReassignDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) ReassignDeliveryCommandHandler {
	return ReassignDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the reassignment command.
func (h ReassignDeliveryCommandHandler) Handle(ctx context.Context, cmd ReassignDeliveryCommand) error {
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

	successor, err := courierRepo.GetForUpdate(ctx, cmd.NewCourierID())
	if err != nil {
		return err
	}

	pack := aggregate.Package()
	if err = successor.ValidateForAssignment(pack.WeightKg, pack.RequiredVehicle); err != nil {
		return err
	}

	predecessorID := aggregate.Courier()

	if err = aggregate.Reassign(successor.ID(), cmd.Reason(), time.Now()); err != nil {
		return err
	}
	successor.IncrementActiveLoad()

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, successor); err != nil {
		return err
	}

	if predecessorID != nil {
		predecessor, courierErr := courierRepo.GetForUpdate(ctx, *predecessorID)
		if courierErr != nil {
			return courierErr
		}
		predecessor.DecrementActiveLoad()
		if courierErr = courierRepo.Update(ctx, predecessor); courierErr != nil {
			return courierErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Both sides hear about the handover: the successor gets the offer,
	// the predecessor learns the delivery is no longer theirs.
	h.notifier.NotifyAssigned(ctx, aggregate)
	if predecessorID != nil {
		h.notifier.NotifyUnassigned(ctx, aggregate, *predecessorID)
	}
	return nil
}
