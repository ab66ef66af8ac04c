package courier

import (
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/zone"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	// minRating and maxRating bound the courier's average rating scale.
	minRating = 0.0
	maxRating = 5.0
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier in the system. It is an aggregate
// root that manages courier identity, capability, and dispatch state.
//
// Key responsibilities:
//   - Managing courier identity (ID, name, vehicle, capacity)
//   - Tracking work zones, last known position, and availability
//   - Answering dispatch eligibility questions (CanCarry, ServesDistrict)
//   - Maintaining the active load and completion counters
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name, and positive capacity
//   - Only verified, available couriers are dispatchable
//   - An empty work zone list means the courier serves every district
//   - Rating stays within [0, 5]; counters never go negative
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// vehicle is the courier's vehicle class, which bounds what they can carry
	vehicle kernel.VehicleType
	// capacityKg is the maximum package weight the courier accepts
	capacityKg float64
	// workZones holds normalized district keys; empty means city-wide
	workZones []string
	// location is the last reported position, nil when never reported
	location *kernel.GeoPoint
	// verification is the onboarding state
	verification VerificationStatus
	// availability is the self-reported working state
	availability Availability
	// rating is the average review score in [0, 5]
	rating float64
	// completedDeliveries counts lifetime completed deliveries
	completedDeliveries int
	// activeDeliveries counts deliveries currently assigned or in progress
	activeDeliveries int
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified parameters.
// This is the only way to create a fresh Courier instance.
//
// New couriers start pending verification, offline, unrated, with zero
// counters. Work zone names are normalized on the way in, so "Kadıköy"
// and "kadikoy" register as the same zone.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: human-readable name (must be non-empty)
//   - vehicle: the courier's vehicle class
//   - capacityKg: maximum package weight (must be positive)
//   - workZones: district names the courier serves; empty means city-wide
//
// Returns:
//   - *Courier: a fully initialized courier
//   - error: joined validation errors if any parameter is invalid
func NewCourier(
	id kernel.UUID,
	name string,
	vehicle kernel.VehicleType,
	capacityKg float64,
	workZones []string,
) (*Courier, error) {
	c := &Courier{
		verification: VerificationPending,
		availability: Offline,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicle(vehicle),
		c.setCapacity(capacityKg),
		c.setWorkZones(workZones),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
// Unlike NewCourier it accepts the full persisted state, including counters
// and the last known position. Work zone keys are assumed to be already
// normalized by the repository.
func RestoreCourier(
	id kernel.UUID,
	name string,
	vehicle kernel.VehicleType,
	capacityKg float64,
	workZones []string,
	location *kernel.GeoPoint,
	verification VerificationStatus,
	availability Availability,
	rating float64,
	completedDeliveries int,
	activeDeliveries int,
) (*Courier, error) {
	c := &Courier{
		workZones:           workZones,
		completedDeliveries: completedDeliveries,
		activeDeliveries:    activeDeliveries,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicle(vehicle),
		c.setCapacity(capacityKg),
		c.setLocation(location),
		c.setVerification(verification),
		c.setAvailability(availability),
		c.setRating(rating),
	); err != nil {
		return nil, err
	}

	if completedDeliveries < 0 || activeDeliveries < 0 {
		return nil, errs.NewValueIsInvalidError("delivery counters must not be negative")
	}

	return c, nil
}

// Validate checks if the Courier was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's name.
func (c *Courier) Name() string {
	return c.name
}

// Vehicle returns the courier's vehicle class.
func (c *Courier) Vehicle() kernel.VehicleType {
	return c.vehicle
}

// CapacityKg returns the maximum package weight the courier accepts.
func (c *Courier) CapacityKg() float64 {
	return c.capacityKg
}

// WorkZones returns the normalized district keys the courier serves.
// An empty slice means the courier serves every district.
func (c *Courier) WorkZones() []string {
	return c.workZones
}

// Location returns the last reported position, or nil if never reported.
func (c *Courier) Location() *kernel.GeoPoint {
	return c.location
}

// Verification returns the onboarding state.
func (c *Courier) Verification() VerificationStatus {
	return c.verification
}

// Availability returns the self-reported working state.
func (c *Courier) Availability() Availability {
	return c.availability
}

// Rating returns the average review score in [0, 5].
func (c *Courier) Rating() float64 {
	return c.rating
}

// CompletedDeliveries returns the lifetime completed delivery count.
func (c *Courier) CompletedDeliveries() int {
	return c.completedDeliveries
}

// ActiveDeliveries returns the count of currently assigned deliveries.
func (c *Courier) ActiveDeliveries() int {
	return c.activeDeliveries
}

// IsDispatchable reports whether the dispatcher may consider the courier
// at all: verified and currently available.
func (c *Courier) IsDispatchable() bool {
	return c.verification == VerificationVerified && c.availability == Available
}

// CanCarry reports whether the courier's capacity and vehicle class suffice
// for a package of the given weight and vehicle requirement.
func (c *Courier) CanCarry(weightKg float64, required *kernel.VehicleType) bool {
	return weightKg <= c.capacityKg && c.vehicle.Satisfies(required)
}

// ServesDistrict reports whether the given district key falls inside the
// courier's work zones. An empty zone list means the courier serves all.
func (c *Courier) ServesDistrict(districtKey string) bool {
	if len(c.workZones) == 0 {
		return true
	}
	for _, z := range c.workZones {
		if z == districtKey {
			return true
		}
	}
	return false
}

// ValidateForAssignment checks every eligibility rule for a manual
// assignment and returns the first violated rule as a business error.
// Zone membership is intentionally not checked here: operators assigning
// by hand may override zones.
func (c *Courier) ValidateForAssignment(weightKg float64, required *kernel.VehicleType) error {
	if c.verification != VerificationVerified {
		return errs.NewBusinessRuleError(
			fmt.Sprintf("courier %s is not verified", c.name))
	}
	if c.availability != Available {
		return errs.NewBusinessRuleError(
			fmt.Sprintf("courier %s is %s, not available", c.name, c.availability))
	}
	if weightKg > c.capacityKg {
		return errs.NewBusinessRuleError(
			fmt.Sprintf("package weight %.1f kg exceeds courier capacity %.1f kg", weightKg, c.capacityKg))
	}
	if !c.vehicle.Satisfies(required) {
		return errs.NewBusinessRuleError(
			fmt.Sprintf("courier vehicle %s does not satisfy required class %s", c.vehicle, *required))
	}
	return nil
}

// Verify marks the courier as verified and eligible for dispatch.
func (c *Courier) Verify() error {
	if c.verification == VerificationRejected {
		return errs.NewBusinessRuleError("rejected couriers cannot be verified")
	}
	c.verification = VerificationVerified
	return nil
}

// RejectVerification marks the courier's onboarding as rejected.
func (c *Courier) RejectVerification() error {
	if c.verification == VerificationVerified {
		return errs.NewBusinessRuleError("verified couriers cannot be rejected")
	}
	c.verification = VerificationRejected
	return nil
}

// SetAvailability updates the self-reported working state.
func (c *Courier) SetAvailability(availability Availability) error {
	return c.setAvailability(availability)
}

// MoveTo updates the courier's last known position.
func (c *Courier) MoveTo(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	c.location = &position
	return nil
}

// DistanceToKm returns the great-circle distance from the courier to the
// given point, or false if the courier has no known position.
func (c *Courier) DistanceToKm(point kernel.GeoPoint) (float64, bool) {
	if c.location == nil {
		return 0, false
	}
	km, err := c.location.DistanceKm(point)
	if err != nil {
		return 0, false
	}
	return km, true
}

// IncrementActiveLoad records one more delivery in the courier's hands.
func (c *Courier) IncrementActiveLoad() {
	c.activeDeliveries++
}

// DecrementActiveLoad records one delivery leaving the courier's hands.
// The counter never goes below zero.
func (c *Courier) DecrementActiveLoad() {
	if c.activeDeliveries > 0 {
		c.activeDeliveries--
	}
}

// RecordCompletedDelivery bumps the completion counter and releases one
// unit of active load.
func (c *Courier) RecordCompletedDelivery() {
	c.completedDeliveries++
	c.DecrementActiveLoad()
}

// SetRating replaces the courier's average review score.
func (c *Courier) SetRating(rating float64) error {
	return c.setRating(rating)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setVehicle(vehicle kernel.VehicleType) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	c.vehicle = vehicle
	return nil
}

func (c *Courier) setCapacity(capacityKg float64) error {
	if capacityKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity is invalid",
			fmt.Errorf("%f is not greater than 0", capacityKg))
	}
	c.capacityKg = capacityKg
	return nil
}

func (c *Courier) setWorkZones(workZones []string) error {
	keys := make([]string, 0, len(workZones))
	for _, z := range workZones {
		key := zone.NormalizeName(z)
		if key == "" {
			return errs.NewValueIsInvalidError("work zone name must not be empty")
		}
		keys = append(keys, key)
	}
	c.workZones = keys
	return nil
}

func (c *Courier) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	point := *location
	c.location = &point
	return nil
}

func (c *Courier) setVerification(verification VerificationStatus) error {
	if err := verification.Validate(); err != nil {
		return err
	}
	c.verification = verification
	return nil
}

func (c *Courier) setAvailability(availability Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	c.availability = availability
	return nil
}

func (c *Courier) setRating(rating float64) error {
	if rating < minRating || rating > maxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, minRating, maxRating)
	}
	c.rating = rating
	return nil
}
