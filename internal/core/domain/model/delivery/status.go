package delivery

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions to ensure
// deliveries follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> InProgress ──> Delivered
//	   ▲           │
//	   └───────────┘
//	  (courier rejection releases the delivery)
//
//	Cancelled is reachable from any non-terminal state.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a delivery is first created.
	// Deliveries in this status are waiting to be assigned to a courier.
	Pending

	// Assigned indicates the delivery has been offered to a courier.
	// The courier may accept, reject, or confirm pickup from this status.
	Assigned

	// InProgress indicates the assigned courier has picked the package up
	// and is on the way to the destination.
	InProgress

	// Delivered indicates the package reached the recipient.
	// This is a final state with no further transitions allowed.
	Delivered

	// Cancelled indicates the delivery was aborted before completion.
	// This is a final state with no further transitions allowed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Assigned:   "assigned",
		InProgress: "in_progress",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Assigned:   "assigned",
		InProgress: "in_progress",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// statusAliases maps historical status spellings, still present in older
// persisted rows and client payloads, to their canonical values.
var statusAliases = map[string]Status{
	"created":   Pending,
	"new":       Pending,
	"accepted":  Assigned,
	"picked_up": InProgress,
	"completed": Delivered,
	"canceled":  Cancelled,
}

// ParseStatus converts a string to a Status value. Canonical names and
// legacy aliases are both accepted; anything else is an error.
//
// Returns:
//   - the parsed Status and nil for a recognized name
//   - (Unknown, error) for an unrecognized name
func ParseStatus(raw string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if raw == str {
			return status, nil
		}
	}
	if status, ok := statusAliases[raw]; ok {
		return status, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", raw))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Assigned, InProgress, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (courier offered the delivery)
//
// Returns:
//   - (Assigned, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, errs.NewBusinessRuleError(
			fmt.Sprintf("delivery in status %s cannot be assigned", s))
	}

	return Assigned, nil
}

// Start transitions the status to InProgress on pickup confirmation.
//
// Valid transitions:
//   - Assigned -> InProgress
//
// Returns:
//   - (InProgress, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Start() (Status, error) {
	if s != Assigned {
		return 0, errs.NewBusinessRuleError(
			fmt.Sprintf("delivery in status %s cannot start", s))
	}

	return InProgress, nil
}

// Complete transitions the status to Delivered.
//
// Valid transitions:
//   - InProgress -> Delivered
//
// Returns:
//   - (Delivered, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, errs.NewBusinessRuleError(
			fmt.Sprintf("delivery in status %s cannot be completed", s))
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions: any non-terminal status -> Cancelled.
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, error) if the delivery already reached a terminal state
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewBusinessRuleError(
			fmt.Sprintf("delivery in status %s cannot be cancelled", s))
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}

	return Cancelled, nil
}

// Release returns an assigned delivery to the pool after a courier rejection.
//
// Valid transitions:
//   - Assigned -> Pending
//
// Returns:
//   - (Pending, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Release() (Status, error) {
	if s != Assigned {
		return 0, errs.NewBusinessRuleError(
			fmt.Sprintf("delivery in status %s cannot be released", s))
	}

	return Pending, nil
}
