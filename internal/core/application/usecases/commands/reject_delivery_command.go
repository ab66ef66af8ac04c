package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrRejectDeliveryCommandIsNotConstructed = errors.New(
	"RejectDeliveryCommand must be created via NewRejectDeliveryCommand constructor",
)

// RejectDeliveryCommand represents a courier declining an assignment.
// The delivery goes back to the pending pool for redispatch.
type RejectDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectDeliveryCommand creates a rejection command.
func NewRejectDeliveryCommand(deliveryID, courierID kernel.UUID) (RejectDeliveryCommand, error) {
	cmd := RejectDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCourierID(courierID),
	); err != nil {
		return RejectDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRejectDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the rejected delivery.
func (c RejectDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the rejecting courier.
func (c RejectDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *RejectDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *RejectDeliveryCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
