package delivery

import (
	"fmt"

	"pharmadelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions so deliveries follow
// the correct operational workflow.
//
// State transitions:
//
//	pending ──> assigned ──> picked_up ──> in_transit ──> delivered
//	   │            │            │             │
//	   └────────────┴────────────┴─────────────┴──> failed / cancelled
//
// pending is the only initial state; delivered, failed, and cancelled are
// terminal. Illegal transitions are rejected with an InvalidTransitionError,
// never silently coerced.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: the delivery awaits a partner.
	StatusPending

	// StatusAssigned indicates a partner has accepted the delivery.
	StatusAssigned

	// StatusPickedUp indicates the package left the pharmacy.
	StatusPickedUp

	// StatusInTransit indicates the courier is moving toward the dropoff.
	StatusInTransit

	// StatusDelivered is the successful terminal state. Reachable only
	// through a validated proof of delivery.
	StatusDelivered

	// StatusFailed is the terminal state for deliveries that could not be
	// completed.
	StatusFailed

	// StatusCancelled is the terminal state for deliveries withdrawn before
	// completion.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusAssigned:  "assigned",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusFailed:    "failed",
		StatusCancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "pending",
		StatusAssigned:  "assigned",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusFailed:    "failed",
		StatusCancelled: "cancelled",
	}
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Safe to call on any value, including
// invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusCancelled
}

// Assign transitions pending to assigned.
// Returns an InvalidTransitionError from any other state.
func (s Status) Assign() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusAssigned.String())
	}
	return StatusAssigned, nil
}

// PickUp transitions assigned to picked_up.
// This is the transition that stamps the delivery's actual pickup time.
func (s Status) PickUp() (Status, error) {
	if s != StatusAssigned {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusPickedUp.String())
	}
	return StatusPickedUp, nil
}

// StartTransit transitions picked_up to in_transit.
// A location update only; no timestamp side effect.
func (s Status) StartTransit() (Status, error) {
	if s != StatusPickedUp {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusInTransit.String())
	}
	return StatusInTransit, nil
}

// Deliver transitions in_transit to delivered. Callers must have validated a
// proof of delivery before performing this transition; the Delivery aggregate
// enforces that.
func (s Status) Deliver() (Status, error) {
	if s != StatusInTransit {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusDelivered.String())
	}
	return StatusDelivered, nil
}

// Fail transitions any non-terminal state to failed.
func (s Status) Fail() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusFailed.String())
	}
	return StatusFailed, nil
}

// Cancel transitions any non-terminal state to cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusCancelled.String())
	}
	return StatusCancelled, nil
}
