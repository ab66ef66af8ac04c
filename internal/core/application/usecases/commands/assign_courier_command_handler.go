package commands

import (
	"context"
	"time"

	"lastmile/internal/core/ports"
)

// AssignCourierCommandHandler executes manual courier assignments.
// Locks both aggregates, validates courier eligibility, and updates the
// delivery and the courier's active load in a single transaction.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, notifier)
//	cmd, _ := NewAssignCourierCommand(deliveryID, courierID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewAssignCourierCommandHandler creates a handler for manual assignment.
func NewAssignCourierCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the manual assignment command.
// The delivery must be pending and the courier must pass every
// eligibility rule except zone membership, which operators may override.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
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

	assignee, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	pack := aggregate.Package()
	if err = assignee.ValidateForAssignment(pack.WeightKg, pack.RequiredVehicle); err != nil {
		return err
	}

	if err = aggregate.Assign(assignee.ID(), time.Now()); err != nil {
		return err
	}
	assignee.IncrementActiveLoad()

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, assignee); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyAssigned(ctx, aggregate)
	return nil
}
