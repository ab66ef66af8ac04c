package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/delivery"
)

// AcceptDeliveryCommandHandler records a courier's acceptance. For an
// assigned delivery it acknowledges the offer, so a rejection or a timeout
// can be distinguished from a courier who simply has not looked at their
// phone yet. For a pending delivery it is a claim: the courier takes the
// job directly, subject to the same checks as a manual assignment.
type AcceptDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewAcceptDeliveryCommandHandler creates a handler for acceptance.
func NewAcceptDeliveryCommandHandler(uowFactory UoWFactory) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acceptance command. Accepting an assignment is
// allowed only for the courier the delivery was offered to; claiming a
// pending delivery is open to any courier that passes the assignment
// checks.
func (h AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) error {
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

	aggregate, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if aggregate.Status() == delivery.Pending {
		if err = h.claim(ctx, uow, aggregate, cmd); err != nil {
			return err
		}
	} else if err = aggregate.Accept(cmd.CourierID(), time.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// claim takes a pending delivery for the accepting courier: the courier is
// validated like a manual assignment, the delivery moves to assigned, and
// both sides are persisted.
func (h AcceptDeliveryCommandHandler) claim(
	ctx context.Context,
	uow UoW,
	aggregate *delivery.Delivery,
	cmd AcceptDeliveryCommand,
) error {
	courierRepo := uow.CourierRepository()

	claimer, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	pack := aggregate.Package()
	if err = claimer.ValidateForAssignment(pack.WeightKg, pack.RequiredVehicle); err != nil {
		return err
	}

	if err = aggregate.Accept(claimer.ID(), time.Now()); err != nil {
		return err
	}
	claimer.IncrementActiveLoad()

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	return courierRepo.Update(ctx, claimer)
}
