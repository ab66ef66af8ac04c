package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand represents a cancellation request. Who is asking
// matters: requesters lose the right to cancel once the package is picked
// up, operators never do.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      delivery.ActorRole
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelDeliveryCommand creates a cancellation command.
func NewCancelDeliveryCommand(
	deliveryID kernel.UUID,
	actor delivery.ActorRole,
	reason string,
) (CancelDeliveryCommand, error) {
	cmd := CancelDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
		cmd.setReason(reason),
	); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to cancel.
func (c CancelDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns who is cancelling.
func (c CancelDeliveryCommand) Actor() delivery.ActorRole {
	return c.actor
}

// Reason returns the cancellation reason.
func (c CancelDeliveryCommand) Reason() string {
	return c.reason
}

func (c *CancelDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *CancelDeliveryCommand) setActor(actor delivery.ActorRole) error {
	switch actor {
	case delivery.RoleRequester, delivery.RoleAssignedCourier, delivery.RoleOperator:
		c.actor = actor
		return nil
	}
	return errs.NewValueIsInvalidError("actor role is invalid")
}

func (c *CancelDeliveryCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}
	c.reason = reason
	return nil
}
