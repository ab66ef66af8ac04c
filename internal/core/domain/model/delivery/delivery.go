package delivery

import (
	"errors"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery. This ensures all
	// deliveries are properly validated.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// ActorRole identifies who is acting on a delivery. Lifecycle rules differ
// by role: requesters may cancel only before pickup, couriers act only on
// deliveries assigned to them, operators may override.
type ActorRole string

const (
	RoleRequester       ActorRole = "requester"
	RoleAssignedCourier ActorRole = "courier"
	RoleOperator        ActorRole = "operator"
)

// Delivery is the aggregate root of a single shipment. It manages the
// lifecycle from quote acceptance through assignment, pickup, and handover.
//
// Delivery follows these invariants:
//   - The quoted price is fixed at creation and never changes afterwards
//   - Status transitions follow the state machine defined on Status
//   - A courier is present exactly in the Assigned/InProgress/Delivered states
//   - Earnings are recorded at most once, on delivery confirmation
//   - Can only be created through NewDelivery or RestoreDelivery
type Delivery struct {
	id           kernel.UUID
	trackingCode string

	origin      Waypoint
	destination Waypoint
	pack        PackageSpec
	recipient   Contact

	// calculatedPrice is the price quoted at creation, in minor currency
	// units. It is immutable for the lifetime of the delivery.
	calculatedPrice int64

	// actualPrice is the price finally charged, set on completion. It may
	// differ from calculatedPrice after operator adjustments.
	actualPrice *int64

	distance  kernel.Distance
	courierID *kernel.UUID
	status    Status

	confirmationCode string
	earningRecorded  bool

	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	cancelReason   string
	reassignReason string

	isConstructed bool
}

// NewDelivery creates a delivery from an accepted quote. The delivery starts
// in Pending status with freshly generated tracking and confirmation codes.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - origin, destination: the two endpoints (district and address required)
//   - pack: the package being shipped
//   - recipient: who receives the package at the destination
//   - calculatedPrice: the quoted price in minor units (must be positive)
//   - distance: the estimated travel distance used for the quote
//   - createdAt: creation instant
//
// Returns:
//   - *Delivery: the created delivery if all validations pass
//   - error: joined validation errors otherwise
func NewDelivery(
	id kernel.UUID,
	origin Waypoint,
	destination Waypoint,
	pack PackageSpec,
	recipient Contact,
	calculatedPrice int64,
	distance kernel.Distance,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		trackingCode:     NewTrackingCode(),
		confirmationCode: NewConfirmationCode(),
		status:           Pending,
		createdAt:        createdAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrigin(origin),
		d.setDestination(destination),
		d.setPack(pack),
		d.setRecipient(recipient),
		d.setCalculatedPrice(calculatedPrice),
		d.setDistance(distance),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a delivery from persisted state. Unlike
// NewDelivery it accepts any valid status and pre-existing codes; it is
// intended for repository use only.
func RestoreDelivery(
	id kernel.UUID,
	trackingCode string,
	origin Waypoint,
	destination Waypoint,
	pack PackageSpec,
	recipient Contact,
	calculatedPrice int64,
	actualPrice *int64,
	distance kernel.Distance,
	courierID *kernel.UUID,
	status Status,
	confirmationCode string,
	earningRecorded bool,
	createdAt time.Time,
	assignedAt, pickedUpAt, deliveredAt, cancelledAt *time.Time,
	cancelReason, reassignReason string,
) (*Delivery, error) {
	d := &Delivery{
		trackingCode:     trackingCode,
		confirmationCode: confirmationCode,
		actualPrice:      actualPrice,
		courierID:        courierID,
		earningRecorded:  earningRecorded,
		createdAt:        createdAt,
		assignedAt:       assignedAt,
		pickedUpAt:       pickedUpAt,
		deliveredAt:      deliveredAt,
		cancelledAt:      cancelledAt,
		cancelReason:     cancelReason,
		reassignReason:   reassignReason,
		isConstructed:    true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrigin(origin),
		d.setDestination(destination),
		d.setPack(pack),
		d.setRecipient(recipient),
		d.setCalculatedPrice(calculatedPrice),
		d.setDistance(distance),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	d.status = status

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
//
// Returns:
//   - nil if the delivery is valid
//   - ErrDeliveryIsNotConstructed otherwise
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}

	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// TrackingCode returns the public tracking code.
func (d *Delivery) TrackingCode() string {
	return d.trackingCode
}

// Origin returns the pickup waypoint.
func (d *Delivery) Origin() Waypoint {
	return d.origin
}

// Destination returns the drop-off waypoint.
func (d *Delivery) Destination() Waypoint {
	return d.destination
}

// Package returns the package specification.
func (d *Delivery) Package() PackageSpec {
	return d.pack
}

// Recipient returns the receiving contact.
func (d *Delivery) Recipient() Contact {
	return d.recipient
}

// CalculatedPrice returns the immutable quoted price in minor units.
func (d *Delivery) CalculatedPrice() int64 {
	return d.calculatedPrice
}

// ActualPrice returns the final charged price, or nil while undetermined.
func (d *Delivery) ActualPrice() *int64 {
	return d.actualPrice
}

// Distance returns the estimated travel distance used for the quote.
func (d *Delivery) Distance() kernel.Distance {
	return d.distance
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (d *Delivery) Courier() *kernel.UUID {
	return d.courierID
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// ConfirmationCode returns the handover code shared with the recipient.
func (d *Delivery) ConfirmationCode() string {
	return d.confirmationCode
}

// EarningRecorded reports whether the courier earning for this delivery
// has already been posted to the ledger.
func (d *Delivery) EarningRecorded() bool {
	return d.earningRecorded
}

// CreatedAt returns the creation instant.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// AssignedAt returns the instant of the latest assignment, or nil.
func (d *Delivery) AssignedAt() *time.Time {
	return d.assignedAt
}

// PickedUpAt returns the pickup confirmation instant, or nil.
func (d *Delivery) PickedUpAt() *time.Time {
	return d.pickedUpAt
}

// DeliveredAt returns the handover instant, or nil.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// CancelledAt returns the cancellation instant, or nil.
func (d *Delivery) CancelledAt() *time.Time {
	return d.cancelledAt
}

// CancelReason returns the reason recorded on cancellation, or empty.
func (d *Delivery) CancelReason() string {
	return d.cancelReason
}

// ReassignReason returns the reason recorded on the latest reassignment.
func (d *Delivery) ReassignReason() string {
	return d.reassignReason
}

// Assign offers the delivery to a courier.
//
// Business rules:
//   - The courier ID must be valid
//   - The delivery must be Pending
//
// Parameters:
//   - courierID: the courier receiving the offer
//   - at: assignment instant
//
// Returns nil on success, or a validation/business rule error.
func (d *Delivery) Assign(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Assign()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.courierID = &courierID
	d.assignedAt = &at
	return nil
}

// Accept acknowledges the offer, or claims the delivery outright.
//
// Business rules:
//   - A Pending delivery may be claimed by any courier; the claim is an
//     assignment and moves the delivery to Assigned
//   - An Assigned delivery may be accepted only by the courier it was
//     offered to; acceptance does not change status, the courier signals
//     progress by confirming pickup
func (d *Delivery) Accept(courierID kernel.UUID, at time.Time) error {
	if d.status == Pending {
		return d.Assign(courierID, at)
	}
	if d.status != Assigned {
		return errs.NewBusinessRuleError(
			fmt.Sprintf("delivery in status %s cannot be accepted", d.status))
	}
	return d.requireAssignedCourier(courierID)
}

// Reject declines the offer and returns the delivery to the pending pool.
//
// Business rules:
//   - Only the assigned courier may reject
//   - The delivery must be Assigned (a pending delivery has nothing to reject)
//
// On success the courier link and assignment timestamp are cleared.
func (d *Delivery) Reject(courierID kernel.UUID) error {
	if err := d.requireAssignedCourier(courierID); err != nil {
		return err
	}

	newStatus, err := d.status.Release()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.courierID = nil
	d.assignedAt = nil
	return nil
}

// ConfirmPickup records that the courier collected the package.
//
// Business rules:
//   - Only the assigned courier may confirm
//   - The delivery must be Assigned; a repeat confirmation by the same
//     courier on an InProgress delivery is a no-op
//   - When both the courier position and the origin coordinate are known,
//     the courier must be within thresholdKm of the origin unless
//     bypassProximity is set (operator override)
//
// Parameters:
//   - courierID: the confirming courier
//   - at: pickup instant
//   - position: the courier's reported position, or nil if unknown
//   - thresholdKm: maximum allowed distance from the origin
//   - bypassProximity: skip the proximity check
func (d *Delivery) ConfirmPickup(
	courierID kernel.UUID,
	at time.Time,
	position *kernel.GeoPoint,
	thresholdKm float64,
	bypassProximity bool,
) error {
	if err := d.requireAssignedCourier(courierID); err != nil {
		return err
	}

	// Retried confirmations are expected: couriers tap twice on flaky
	// connections. The first transition wins; repeats succeed silently.
	if d.status == InProgress {
		return nil
	}

	newStatus, err := d.status.Start()
	if err != nil {
		return err
	}

	if !bypassProximity && position != nil && d.origin.Coord != nil {
		km, err := position.DistanceKm(*d.origin.Coord)
		if err != nil {
			return err
		}
		if km > thresholdKm {
			return errs.NewBusinessRuleError(
				fmt.Sprintf("courier is %.2f km from the pickup point, allowed at most %.2f km", km, thresholdKm))
		}
	}

	d.status = newStatus
	d.pickedUpAt = &at
	return nil
}

// ConfirmDelivery records the handover to the recipient.
//
// Business rules:
//   - Only the assigned courier may confirm
//   - The delivery must be InProgress
//   - The recipient's confirmation code must match
//
// On success the actual price is fixed to the quoted price unless an
// operator already adjusted it.
func (d *Delivery) ConfirmDelivery(courierID kernel.UUID, confirmationCode string, at time.Time) error {
	if err := d.requireAssignedCourier(courierID); err != nil {
		return err
	}

	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}

	if confirmationCode != d.confirmationCode {
		return errs.NewBusinessRuleError("confirmation code does not match")
	}

	d.status = newStatus
	d.deliveredAt = &at
	if d.actualPrice == nil {
		price := d.calculatedPrice
		d.actualPrice = &price
	}
	return nil
}

// Cancel aborts the delivery.
//
// Business rules:
//   - Requesters may cancel only before pickup (Pending or Assigned)
//   - Operators may cancel any non-terminal delivery
//   - Couriers do not cancel; they reject the offer instead
//
// Parameters:
//   - actor: who is cancelling
//   - reason: free-form cancellation reason (required)
//   - at: cancellation instant
func (d *Delivery) Cancel(actor ActorRole, reason string, at time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}

	switch actor {
	case RoleOperator:
	case RoleRequester:
		if d.status == InProgress {
			return errs.NewBusinessRuleError("delivery already picked up, requester can no longer cancel")
		}
	case RoleAssignedCourier:
		return errs.NewBusinessRuleError("couriers reject deliveries instead of cancelling them")
	default:
		return errs.NewValueIsInvalidError("actor role is invalid")
	}

	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.cancelledAt = &at
	d.cancelReason = reason
	return nil
}

// Reassign moves the delivery to a different courier.
//
// Business rules:
//   - The delivery must be Assigned or InProgress
//   - The new courier must differ from the current one
//   - A reason is required
//
// Reassigning an InProgress delivery returns it to Assigned: the new
// courier has to confirm pickup again, so the pickup timestamp is cleared.
func (d *Delivery) Reassign(newCourierID kernel.UUID, reason string, at time.Time) error {
	if err := newCourierID.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reassign reason")
	}
	if d.status != Assigned && d.status != InProgress {
		return errs.NewBusinessRuleError(
			fmt.Sprintf("delivery in status %s cannot be reassigned", d.status))
	}
	if d.courierID != nil && d.courierID.IsEqual(newCourierID) {
		return errs.NewBusinessRuleError("delivery is already assigned to this courier")
	}

	d.status = Assigned
	d.courierID = &newCourierID
	d.assignedAt = &at
	d.pickedUpAt = nil
	d.reassignReason = reason
	return nil
}

// MarkEarningRecorded flags the courier earning as posted. The application
// layer calls this exactly once, inside the same transaction that writes
// the ledger entry.
func (d *Delivery) MarkEarningRecorded() error {
	if d.status != Delivered {
		return errs.NewBusinessRuleError(
			fmt.Sprintf("earnings can only be recorded for delivered deliveries, status is %s", d.status))
	}
	if d.earningRecorded {
		return errs.NewBusinessRuleError("earning is already recorded for this delivery")
	}

	d.earningRecorded = true
	return nil
}

// SetActualPrice overrides the final charged price. Operator use only;
// the quoted price is never touched.
func (d *Delivery) SetActualPrice(price int64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("actual price is invalid",
			fmt.Errorf("%d is not greater than 0", price))
	}

	d.actualPrice = &price
	return nil
}

func (d *Delivery) requireAssignedCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if d.courierID == nil {
		return errs.NewBusinessRuleError("delivery has no assigned courier")
	}
	if !d.courierID.IsEqual(courierID) {
		return errs.NewBusinessRuleError("delivery is assigned to a different courier")
	}
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrigin(origin Waypoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	d.origin = origin
	return nil
}

func (d *Delivery) setDestination(destination Waypoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	d.destination = destination
	return nil
}

func (d *Delivery) setPack(pack PackageSpec) error {
	if err := pack.Validate(); err != nil {
		return err
	}
	d.pack = pack
	return nil
}

func (d *Delivery) setRecipient(recipient Contact) error {
	if err := recipient.Validate(); err != nil {
		return err
	}
	d.recipient = recipient
	return nil
}

func (d *Delivery) setCalculatedPrice(price int64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("calculated price is invalid",
			fmt.Errorf("%d is not greater than 0", price))
	}
	d.calculatedPrice = price
	return nil
}

func (d *Delivery) setDistance(distance kernel.Distance) error {
	if err := distance.Validate(); err != nil {
		return err
	}
	d.distance = distance
	return nil
}
