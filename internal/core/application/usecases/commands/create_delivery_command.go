package commands

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to create a delivery from an
// accepted quote. It carries both endpoints, the package, the recipient,
// the immediate flag, and the optional scheduled slot that were part of
// the quoted terms.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand(kernel.NewUUID(), origin, dest, pack, recipient, true, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, quoteEngine)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create delivery: %w", err)
//	}
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	origin      delivery.Waypoint
	destination delivery.Waypoint
	pack        delivery.PackageSpec
	recipient   delivery.Contact
	immediate   bool
	scheduledAt *time.Time

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// All waypoint, package, and recipient validation from the domain model
// applies; the command fails fast before any transaction starts.
// scheduledAt is the intended delivery slot, or nil for as soon as
// possible; the slot drives the night and weekend price multipliers.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	origin delivery.Waypoint,
	destination delivery.Waypoint,
	pack delivery.PackageSpec,
	recipient delivery.Contact,
	immediate bool,
	scheduledAt *time.Time,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		immediate:   immediate,
		scheduledAt: scheduledAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setOrigin(origin),
		cmd.setDestination(destination),
		cmd.setPackage(pack),
		cmd.setRecipient(recipient),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the unique identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Origin returns the pickup waypoint.
func (c CreateDeliveryCommand) Origin() delivery.Waypoint {
	return c.origin
}

// Destination returns the drop-off waypoint.
func (c CreateDeliveryCommand) Destination() delivery.Waypoint {
	return c.destination
}

// Package returns the package specification.
func (c CreateDeliveryCommand) Package() delivery.PackageSpec {
	return c.pack
}

// Recipient returns the receiving contact.
func (c CreateDeliveryCommand) Recipient() delivery.Contact {
	return c.recipient
}

// Immediate reports whether the immediate surcharge was quoted.
func (c CreateDeliveryCommand) Immediate() bool {
	return c.immediate
}

// ScheduledAt returns the intended delivery slot, or nil for as soon as
// possible.
func (c CreateDeliveryCommand) ScheduledAt() *time.Time {
	return c.scheduledAt
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setOrigin(origin delivery.Waypoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	c.origin = origin
	return nil
}

func (c *CreateDeliveryCommand) setDestination(destination delivery.Waypoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	c.destination = destination
	return nil
}

func (c *CreateDeliveryCommand) setPackage(pack delivery.PackageSpec) error {
	if err := pack.Validate(); err != nil {
		return err
	}
	c.pack = pack
	return nil
}

func (c *CreateDeliveryCommand) setRecipient(recipient delivery.Contact) error {
	if err := recipient.Validate(); err != nil {
		return err
	}
	c.recipient = recipient
	return nil
}
