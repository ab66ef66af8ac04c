package courier

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// VerificationStatus tracks the onboarding state of a courier. Only verified
// couriers are eligible for dispatch.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Validate checks if the verification status is one of the known values.
func (v VerificationStatus) Validate() error {
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("verification status is invalid",
		fmt.Errorf("%q is not a valid verification status", string(v)))
}

// String implements fmt.Stringer.
func (v VerificationStatus) String() string {
	return string(v)
}

// ParseVerificationStatus converts a string to a VerificationStatus.
func ParseVerificationStatus(raw string) (VerificationStatus, error) {
	v := VerificationStatus(raw)
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

// Availability is the courier's self-reported working state. Only available
// couriers are considered by the dispatcher.
type Availability string

const (
	Available Availability = "available"
	Busy      Availability = "busy"
	OnBreak   Availability = "on_break"
	Offline   Availability = "offline"
)

// Validate checks if the availability is one of the known values.
func (a Availability) Validate() error {
	switch a {
	case Available, Busy, OnBreak, Offline:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("availability is invalid",
		fmt.Errorf("%q is not a valid availability", string(a)))
}

// String implements fmt.Stringer.
func (a Availability) String() string {
	return string(a)
}

// ParseAvailability converts a string to an Availability.
func ParseAvailability(raw string) (Availability, error) {
	a := Availability(raw)
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}
