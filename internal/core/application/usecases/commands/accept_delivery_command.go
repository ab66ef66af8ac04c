package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand represents a courier acknowledging an assignment.
type AcceptDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand creates an acceptance command.
func NewAcceptDeliveryCommand(deliveryID, courierID kernel.UUID) (AcceptDeliveryCommand, error) {
	cmd := AcceptDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCourierID(courierID),
	); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the accepted delivery.
func (c AcceptDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the accepting courier.
func (c AcceptDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *AcceptDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *AcceptDeliveryCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
