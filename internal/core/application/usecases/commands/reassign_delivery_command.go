package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrReassignDeliveryCommandIsNotConstructed = errors.New(
	"ReassignDeliveryCommand must be created via NewReassignDeliveryCommand constructor",
)

// ReassignDeliveryCommand represents an operator moving a delivery to a
// different courier, typically after a breakdown or no-show.
type ReassignDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID   kernel.UUID
	newCourierID kernel.UUID
	reason       string

	guard guard.ConstructorGuard
}

// NewReassignDeliveryCommand creates a reassignment command.
func NewReassignDeliveryCommand(
	deliveryID, newCourierID kernel.UUID,
	reason string,
) (ReassignDeliveryCommand, error) {
	cmd := ReassignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setNewCourierID(newCourierID),
		cmd.setReason(reason),
	); err != nil {
		return ReassignDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrReassignDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to move.
func (c ReassignDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// NewCourierID returns the courier taking over.
func (c ReassignDeliveryCommand) NewCourierID() kernel.UUID {
	return c.newCourierID
}

// Reason returns the reassignment reason.
func (c ReassignDeliveryCommand) Reason() string {
	return c.reason
}

func (c *ReassignDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *ReassignDeliveryCommand) setNewCourierID(newCourierID kernel.UUID) error {
	if err := newCourierID.Validate(); err != nil {
		return err
	}
	c.newCourierID = newCourierID
	return nil
}

func (c *ReassignDeliveryCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reassign reason")
	}
	c.reason = reason
	return nil
}
