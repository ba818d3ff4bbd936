package route

import (
	"fmt"

	"pharmadelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a route.
//
// State transitions:
//
//	planned ──> in_progress ──> completed
//	   │             │
//	   └─────────────┴──> cancelled
type Status int

const (
	StatusUnknown Status = iota
	StatusPlanned
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPlanned:    "planned",
		StatusInProgress: "in_progress",
		StatusCompleted:  "completed",
		StatusCancelled:  "cancelled",
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
		fmt.Errorf("%q is not a valid route status", s))
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid route status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getValidStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Start transitions planned to in_progress.
func (s Status) Start() (Status, error) {
	if s != StatusPlanned {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusInProgress.String())
	}
	return StatusInProgress, nil
}

// Complete transitions in_progress to completed.
func (s Status) Complete() (Status, error) {
	if s != StatusInProgress {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusCompleted.String())
	}
	return StatusCompleted, nil
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
