package services

import (
	"context"
	"math"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
)

// OptimizedPlan is the output of route optimization: the visiting order over
// the input deliveries plus the computed trip metrics. The plan is a pure
// computation result; persisting it as a Route record is the caller's job.
type OptimizedPlan struct {
	// Order is the optimizer's visiting order, a permutation of the input
	// delivery ids.
	Order []kernel.UUID

	// TotalDistanceKm is the sum of consecutive-leg distances, starting at
	// the first delivery's pickup.
	TotalDistanceKm float64

	// EstimatedDurationMinutes is the travel estimate for the whole trip,
	// including a per-stop allowance.
	EstimatedDurationMinutes float64

	// StartAddress is the first pickup; EndAddress is the last dropoff in
	// the optimized order.
	StartAddress delivery.Address
	EndAddress   delivery.Address
}

// RouteOptimizer orders a batch of deliveries into a single route using a
// nearest-neighbor heuristic: start at the first delivery's pickup, then
// repeatedly step to the not-yet-routed delivery whose dropoff is
// geographically nearest to the current position.
//
// This is a greedy heuristic, not an optimal TSP solver. Ties are broken by
// insertion order, so the result is deterministic for a given input.
//
// Optimize touches no shared state; it is safe to cancel at any point and
// safe to run concurrently with status updates on the same deliveries.
type RouteOptimizer struct {
	speedProfile kernel.SpeedProfile
}

// NewRouteOptimizer creates a RouteOptimizer with the given travel-time
// estimation profile.
func NewRouteOptimizer(speedProfile kernel.SpeedProfile) (RouteOptimizer, error) {
	if err := speedProfile.Validate(); err != nil {
		return RouteOptimizer{}, err
	}
	return RouteOptimizer{speedProfile: speedProfile}, nil
}

// Optimize computes the visiting order for the given deliveries.
// Rejects empty input. For a single delivery, the route is that delivery
// alone.
func (o RouteOptimizer) Optimize(ctx context.Context, deliveries []*delivery.Delivery) (OptimizedPlan, error) {
	if len(deliveries) == 0 {
		return OptimizedPlan{}, errs.NewValueIsRequiredError("deliveries")
	}
	for _, d := range deliveries {
		if err := d.Validate(); err != nil {
			return OptimizedPlan{}, err
		}
	}

	current := deliveries[0].PickupAddress().Point()
	remaining := make([]*delivery.Delivery, len(deliveries))
	copy(remaining, deliveries)

	order := make([]kernel.UUID, 0, len(deliveries))
	totalDistance := 0.0
	last := deliveries[0]

	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return OptimizedPlan{}, err
		}

		nearestIdx := 0
		nearestDistance := math.MaxFloat64
		for i, d := range remaining {
			distance, err := current.DistanceKm(d.DropoffAddress().Point())
			if err != nil {
				return OptimizedPlan{}, err
			}
			// Strict less keeps the earliest candidate on ties.
			if distance < nearestDistance {
				nearestDistance = distance
				nearestIdx = i
			}
		}

		last = remaining[nearestIdx]
		order = append(order, last.ID())
		totalDistance += nearestDistance
		current = last.DropoffAddress().Point()
		remaining = append(remaining[:nearestIdx], remaining[nearestIdx+1:]...)
	}

	duration, err := o.speedProfile.EstimateDurationMinutes(totalDistance, len(deliveries))
	if err != nil {
		return OptimizedPlan{}, err
	}

	return OptimizedPlan{
		Order:                    order,
		TotalDistanceKm:          totalDistance,
		EstimatedDurationMinutes: duration,
		StartAddress:             deliveries[0].PickupAddress(),
		EndAddress:               last.DropoffAddress(),
	}, nil
}
