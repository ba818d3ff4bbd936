package delivery

import (
	"fmt"

	"pharmadelivery/internal/pkg/errs"
)

// Priority ranks how urgently a delivery must reach the customer.
// Higher priorities carry a fee surcharge and bias dispatch ordering.
type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

func getValidPriorityStrings() map[Priority]string {
	//nolint:exhaustive // PriorityUnknown is intentionally excluded as it's invalid
	return map[Priority]string{
		PriorityLow:    "low",
		PriorityNormal: "normal",
		PriorityHigh:   "high",
		PriorityUrgent: "urgent",
	}
}

// PriorityFromString parses a priority from its wire representation.
func PriorityFromString(s string) (Priority, error) {
	for priority, str := range getValidPriorityStrings() {
		if str == s {
			return priority, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority",
		fmt.Errorf("%q is not a valid priority", s))
}

// Validate checks that the priority is one of the defined levels.
func (p Priority) Validate() error {
	if _, ok := getValidPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	if str, ok := getValidPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// SurchargePercent returns the fee surcharge applied for this priority,
// expressed as a percentage of the distance-based subtotal.
func (p Priority) SurchargePercent() float64 {
	switch p {
	case PriorityHigh:
		return 15.0
	case PriorityUrgent:
		return 30.0
	default:
		return 0.0
	}
}
