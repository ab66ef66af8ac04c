package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents an operator's manual assignment of a
// specific courier to a specific delivery. Manual assignment skips the
// work zone check but still enforces capacity, vehicle, and availability.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a manual assignment command.
func NewAssignCourierCommand(deliveryID, courierID kernel.UUID) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// DeliveryID returns the delivery to assign.
func (c AssignCourierCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the courier chosen by the operator.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *AssignCourierCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *AssignCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
