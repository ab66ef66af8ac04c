package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents a courier completing the handover.
// The confirmation code is what the recipient reads out at the door.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID       kernel.UUID
	courierID        kernel.UUID
	confirmationCode string

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a handover confirmation command.
func NewConfirmDeliveryCommand(
	deliveryID, courierID kernel.UUID,
	confirmationCode string,
) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCourierID(courierID),
		cmd.setConfirmationCode(confirmationCode),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being handed over.
func (c ConfirmDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the confirming courier.
func (c ConfirmDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

// ConfirmationCode returns the code supplied by the recipient.
func (c ConfirmDeliveryCommand) ConfirmationCode() string {
	return c.confirmationCode
}

func (c *ConfirmDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *ConfirmDeliveryCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *ConfirmDeliveryCommand) setConfirmationCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("confirmation code")
	}
	c.confirmationCode = code
	return nil
}
