package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrConfirmPickupCommandIsNotConstructed = errors.New(
	"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
)

// ConfirmPickupCommand represents a courier confirming package collection.
// The courier's reported position is optional; when present it is checked
// against the pickup point unless the operator override is set.
type ConfirmPickupCommand struct { //nolint:recvcheck //using for validation
	deliveryID      kernel.UUID
	courierID       kernel.UUID
	position        *kernel.GeoPoint
	bypassProximity bool

	guard guard.ConstructorGuard
}

// NewConfirmPickupCommand creates a pickup confirmation command.
func NewConfirmPickupCommand(
	deliveryID, courierID kernel.UUID,
	position *kernel.GeoPoint,
	bypassProximity bool,
) (ConfirmPickupCommand, error) {
	cmd := ConfirmPickupCommand{
		bypassProximity: bypassProximity,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCourierID(courierID),
		cmd.setPosition(position),
	); err != nil {
		return ConfirmPickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

// DeliveryID returns the delivery being picked up.
func (c ConfirmPickupCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the confirming courier.
func (c ConfirmPickupCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Position returns the courier's reported position, or nil.
func (c ConfirmPickupCommand) Position() *kernel.GeoPoint {
	return c.position
}

// BypassProximity reports whether the proximity check is overridden.
func (c ConfirmPickupCommand) BypassProximity() bool {
	return c.bypassProximity
}

func (c *ConfirmPickupCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *ConfirmPickupCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *ConfirmPickupCommand) setPosition(position *kernel.GeoPoint) error {
	if position == nil {
		return nil
	}
	if err := position.Validate(); err != nil {
		return err
	}
	point := *position
	c.position = &point
	return nil
}
