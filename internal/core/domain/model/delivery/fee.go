package delivery

import (
	"errors"
	"fmt"

	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

const (
	// BaseFee is the flat charge applied to every delivery.
	BaseFee = 5.0

	// PerKmRate is the charge per kilometer of straight-line distance
	// between pickup and dropoff.
	PerKmRate = 1.2
)

// Fee is the value object holding the delivery fee breakdown.
// Computed once at delivery creation and never recalculated afterward, so a
// later tariff change does not reprice existing deliveries.
type Fee struct {
	base      float64
	distance  float64
	surcharge float64

	guard guard.ConstructorGuard
}

// CalculateFee builds the fee breakdown for a delivery over the given
// straight-line distance at the given priority.
func CalculateFee(distanceKm float64, priority Priority) (Fee, error) {
	if distanceKm < 0 {
		return Fee{}, errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}
	if err := priority.Validate(); err != nil {
		return Fee{}, err
	}

	distanceCharge := distanceKm * PerKmRate
	surcharge := (BaseFee + distanceCharge) * priority.SurchargePercent() / 100.0

	return RestoreFee(BaseFee, distanceCharge, surcharge)
}

// RestoreFee reconstructs a Fee from persisted components.
func RestoreFee(base, distance, surcharge float64) (Fee, error) {
	f := Fee{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		f.setComponent("base", &f.base, base),
		f.setComponent("distance", &f.distance, distance),
		f.setComponent("surcharge", &f.surcharge, surcharge),
	)
	if err != nil {
		return Fee{}, err
	}
	return f, nil
}

func (f *Fee) setComponent(name string, dst *float64, v float64) error {
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%f is negative", v))
	}
	*dst = v
	return nil
}

// Validate checks the constructor guard.
func (f Fee) Validate() error {
	return f.guard.Validate(errs.NewValueIsRequiredError("fee"))
}

func (f Fee) Base() float64      { return f.base }
func (f Fee) Distance() float64  { return f.distance }
func (f Fee) Surcharge() float64 { return f.surcharge }

// Total returns the sum of all fee components.
func (f Fee) Total() float64 {
	return f.base + f.distance + f.surcharge
}
