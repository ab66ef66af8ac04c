package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrAutoAssignCourierCommandIsNotConstructed = errors.New(
	"AutoAssignCourierCommand must be created via NewAutoAssignCourierCommand constructor",
)

// AutoAssignCourierCommand requests automatic dispatch. With a delivery ID
// it targets that delivery; without one it picks the oldest pending
// delivery, which is how the background dispatch job drives the queue.
type AutoAssignCourierCommand struct { //nolint:recvcheck //using for validation
	deliveryID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAutoAssignCourierCommand creates a dispatch command for a specific delivery.
func NewAutoAssignCourierCommand(deliveryID kernel.UUID) (AutoAssignCourierCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return AutoAssignCourierCommand{}, err
	}
	return AutoAssignCourierCommand{
		deliveryID: &deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewAutoAssignNextCommand creates a dispatch command for the oldest
// pending delivery, whichever that turns out to be.
func NewAutoAssignNextCommand() AutoAssignCourierCommand {
	return AutoAssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through a constructor.
func (c AutoAssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignCourierCommandIsNotConstructed)
}

// DeliveryID returns the targeted delivery, or nil for queue-driven dispatch.
func (c AutoAssignCourierCommand) DeliveryID() *kernel.UUID {
	return c.deliveryID
}
