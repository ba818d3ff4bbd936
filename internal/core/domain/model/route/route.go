package route

import (
	"errors"
	"fmt"
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
)

var (
	// ErrRouteIsNotConstructed is returned when a Route instance was not
	// created through the NewRoute or RestoreRoute factory methods.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")
)

// Route is an ordered batch of deliveries assigned to one partner for a
// single trip.
//
// Route follows these invariants:
//   - The optimized order is always a permutation of the input delivery set,
//     never a subset and never with duplicates
//   - Total distance and estimated duration are computed by the optimizer at
//     planning time and immutable afterward
//   - Status transitions follow the state machine in Status
type Route struct {
	id        kernel.UUID
	partnerID kernel.UUID

	deliveries     []kernel.UUID
	optimizedOrder []kernel.UUID

	totalDistanceKm          float64
	estimatedDurationMinutes float64

	startAddress delivery.Address
	endAddress   delivery.Address

	status Status

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewRoute creates a planned Route from the optimizer's output.
// The optimized order must be a permutation of the input delivery ids.
func NewRoute(id, partnerID kernel.UUID, deliveries, optimizedOrder []kernel.UUID,
	totalDistanceKm, estimatedDurationMinutes float64,
	startAddress, endAddress delivery.Address, now time.Time) (*Route, error) {
	r := &Route{
		status:        StatusPlanned,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setPartnerID(partnerID),
		r.setDeliveries(deliveries, optimizedOrder),
		r.setMetrics(totalDistanceKm, estimatedDurationMinutes),
		r.setAddress("startAddress", &r.startAddress, startAddress),
		r.setAddress("endAddress", &r.endAddress, endAddress),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRoute reconstructs a Route from persistence.
func RestoreRoute(id, partnerID kernel.UUID, deliveries, optimizedOrder []kernel.UUID,
	totalDistanceKm, estimatedDurationMinutes float64,
	startAddress, endAddress delivery.Address, status Status,
	createdAt, updatedAt time.Time) (*Route, error) {
	r := &Route{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setPartnerID(partnerID),
		r.setDeliveries(deliveries, optimizedOrder),
		r.setMetrics(totalDistanceKm, estimatedDurationMinutes),
		r.setAddress("startAddress", &r.startAddress, startAddress),
		r.setAddress("endAddress", &r.endAddress, endAddress),
		r.setStatus(status),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Route was properly constructed through a factory.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// IsEqual compares two routes by their unique identifiers.
func (r *Route) IsEqual(other *Route) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Route) ID() kernel.UUID        { return r.id }
func (r *Route) PartnerID() kernel.UUID { return r.partnerID }
func (r *Route) Status() Status         { return r.status }
func (r *Route) CreatedAt() time.Time   { return r.createdAt }
func (r *Route) UpdatedAt() time.Time   { return r.updatedAt }

func (r *Route) TotalDistanceKm() float64          { return r.totalDistanceKm }
func (r *Route) EstimatedDurationMinutes() float64 { return r.estimatedDurationMinutes }

func (r *Route) StartAddress() delivery.Address { return r.startAddress }
func (r *Route) EndAddress() delivery.Address   { return r.endAddress }

// Deliveries returns a copy of the input delivery id set.
func (r *Route) Deliveries() []kernel.UUID {
	return append([]kernel.UUID(nil), r.deliveries...)
}

// OptimizedOrder returns a copy of the optimizer's visiting order.
func (r *Route) OptimizedOrder() []kernel.UUID {
	return append([]kernel.UUID(nil), r.optimizedOrder...)
}

// Start moves the route to InProgress.
func (r *Route) Start(now time.Time) error {
	newStatus, err := r.status.Start()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.touch(now)
	return nil
}

// Complete moves the route to Completed.
func (r *Route) Complete(now time.Time) error {
	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.touch(now)
	return nil
}

// Cancel moves the route to Cancelled from any non-terminal status.
func (r *Route) Cancel(now time.Time) error {
	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.touch(now)
	return nil
}

func (r *Route) touch(now time.Time) {
	r.updatedAt = now.UTC()
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("partnerID", err)
	}
	r.partnerID = partnerID
	return nil
}

// setDeliveries validates that optimizedOrder is a permutation of deliveries:
// same length, same multiset, no duplicates on either side.
func (r *Route) setDeliveries(deliveries, optimizedOrder []kernel.UUID) error {
	if len(deliveries) == 0 {
		return errs.NewValueIsRequiredError("deliveries")
	}
	if len(optimizedOrder) != len(deliveries) {
		return errs.NewValueIsInvalidErrorWithCause("optimizedOrder",
			fmt.Errorf("length %d does not match deliveries length %d",
				len(optimizedOrder), len(deliveries)))
	}

	input := make(map[kernel.UUID]bool, len(deliveries))
	for _, id := range deliveries {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("deliveries", err)
		}
		if input[id] {
			return errs.NewValueIsInvalidErrorWithCause("deliveries",
				fmt.Errorf("duplicate delivery id %s", id))
		}
		input[id] = true
	}

	seen := make(map[kernel.UUID]bool, len(optimizedOrder))
	for _, id := range optimizedOrder {
		if !input[id] {
			return errs.NewValueIsInvalidErrorWithCause("optimizedOrder",
				fmt.Errorf("id %s is not in the delivery set", id))
		}
		if seen[id] {
			return errs.NewValueIsInvalidErrorWithCause("optimizedOrder",
				fmt.Errorf("duplicate id %s", id))
		}
		seen[id] = true
	}

	r.deliveries = append([]kernel.UUID(nil), deliveries...)
	r.optimizedOrder = append([]kernel.UUID(nil), optimizedOrder...)
	return nil
}

func (r *Route) setMetrics(totalDistanceKm, estimatedDurationMinutes float64) error {
	if totalDistanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalDistanceKm",
			fmt.Errorf("%f is negative", totalDistanceKm))
	}
	if estimatedDurationMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDurationMinutes",
			fmt.Errorf("%f is negative", estimatedDurationMinutes))
	}
	r.totalDistanceKm = totalDistanceKm
	r.estimatedDurationMinutes = estimatedDurationMinutes
	return nil
}

func (r *Route) setAddress(name string, dst *delivery.Address, a delivery.Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	*dst = a
	return nil
}

func (r *Route) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.status = s
	return nil
}
