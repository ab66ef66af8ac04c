package commands

import (
	"context"
	"errors"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrNoPendingDelivery is returned by queue-driven dispatch when
	// nothing is waiting for a courier.
	ErrNoPendingDelivery = errors.New("no pending delivery found")
)

// AutoAssignCourierCommandHandler orchestrates automatic dispatch: it
// locks the target delivery, loads the dispatchable courier pool, and
// lets the Dispatcher pick and assign the best candidate.
//
// Example:
//
//	handler := NewAutoAssignCourierCommandHandler(uowFactory, notifier)
//	err := handler.Handle(ctx, NewAutoAssignNextCommand())
//	switch {
//	case errors.Is(err, ErrNoPendingDelivery):
//	    log.Println("Queue is empty")
//	case errors.Is(err, services.ErrNoEligibleCourier):
//	    log.Println("Nobody can take this delivery right now")
//	case err != nil:
//	    log.Printf("Dispatch failed: %v", err)
//	}
type AutoAssignCourierCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewAutoAssignCourierCommandHandler creates a handler for automatic dispatch.
func NewAutoAssignCourierCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AutoAssignCourierCommandHandler {
	return AutoAssignCourierCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the dispatch command.
// The delivery row stays locked while candidates are scored, so two
// dispatchers cannot assign the same delivery twice. Returns
// services.ErrNoEligibleCourier when the pool comes up empty even after
// zone widening.
func (h AutoAssignCourierCommandHandler) Handle(ctx context.Context, cmd AutoAssignCourierCommand) error {
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

	aggregate, err := h.lockTarget(ctx, deliveryRepo, cmd)
	if err != nil {
		return err
	}

	couriers, err := courierRepo.GetAllDispatchable(ctx)
	if err != nil {
		return err
	}

	// Rank by the repository's view of each courier's load rather than the
	// counter on the aggregate; the count survives restarts and repairs.
	loads := make(services.ActiveLoads, len(couriers))
	for _, c := range couriers {
		count, countErr := deliveryRepo.CountActiveForCourier(ctx, c.ID())
		if countErr != nil {
			return countErr
		}
		loads[c.ID().String()] = count
	}

	result, err := services.NewDispatcher().Dispatch(aggregate, couriers, loads, time.Now())
	if err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, result.Courier); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyAssigned(ctx, aggregate)
	return nil
}

func (h AutoAssignCourierCommandHandler) lockTarget(
	ctx context.Context,
	repo ports.DeliveryRepository,
	cmd AutoAssignCourierCommand,
) (*delivery.Delivery, error) {
	if id := cmd.DeliveryID(); id != nil {
		return repo.GetForUpdate(ctx, *id)
	}

	aggregate, err := repo.GetFirstPendingForUpdate(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoPendingDelivery
	}
	return aggregate, err
}
