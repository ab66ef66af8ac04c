package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"
)

// CreateDeliveryCommandHandler handles the business logic for delivery
// creation: it re-runs the quote at creation time, fixes the resulting
// price on the aggregate, and persists the delivery in pending status.
//
// Example:
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, quoteEngine)
//	cmd, _ := NewCreateDeliveryCommand(id, origin, dest, pack, recipient, false, nil)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("delivery creation failed: %w", err)
//	}
//	// Delivery is now pending and ready for dispatch
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	quotes     *services.QuoteEngine
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
// Requires a DeliveryUoWFactory for persistence and the quote engine for
// pricing at creation time.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	quotes *services.QuoteEngine,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		quotes:     quotes,
	}
}

// Handle processes the delivery creation command.
// The price is computed fresh (quotes are not persisted server-side) and
// becomes the delivery's immutable calculated price. Scheduled deliveries
// are priced at their slot, so night and weekend multipliers follow the
// intended time rather than the moment of booking. A quote that comes out
// non-positive rejects the creation.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()
	priceAt := now
	if slot := cmd.ScheduledAt(); slot != nil {
		priceAt = *slot
	}
	origin := cmd.Origin()
	destination := cmd.Destination()

	quote, err := h.quotes.Quote(ctx, services.QuoteRequest{
		OriginDistrict:     origin.District,
		OriginNeighborhood: origin.Neighborhood,
		OriginCoord:        origin.Coord,
		DestDistrict:       destination.District,
		DestNeighborhood:   destination.Neighborhood,
		DestCoord:          destination.Coord,
		Package:            cmd.Package(),
		Immediate:          cmd.Immediate(),
		At:                 priceAt,
	})
	if err != nil {
		return err
	}

	if quote.Breakdown.Total <= 0 {
		return errs.NewBusinessRuleError("quoted price must be positive")
	}

	aggregate, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		origin,
		destination,
		cmd.Package(),
		cmd.Recipient(),
		quote.Breakdown.Total,
		quote.Distance,
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
