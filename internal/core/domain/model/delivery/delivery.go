package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"
	"pharmadelivery/internal/core/domain/model/proof"
	"pharmadelivery/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery or RestoreDelivery factory methods.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrRouteAlreadyClaimed is returned when a route tries to claim a
	// delivery that already belongs to another route.
	ErrRouteAlreadyClaimed = errors.New("delivery is already claimed by a route")
)

// Delivery is the aggregate root for one courier-fulfilled movement of a
// package from a pickup to a dropoff address.
//
// Delivery follows these invariants:
//   - Status transitions follow the state machine in Status; every mutation
//     goes through a transition method, never direct field writes
//   - actualPickup is set exactly once, by MarkPickedUp
//   - actualDelivery and the proof of delivery are set together, only by
//     MarkDelivered, and only with a proof that passes integrity verification
//   - The tracking number is immutable once assigned
//   - Can only be created through NewDelivery or RestoreDelivery
type Delivery struct {
	id         kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	pharmacyID kernel.UUID

	// partnerID is the assigned partner's ID (nil if unassigned)
	partnerID *kernel.UUID

	// routeID is the claiming route's ID (nil if unrouted)
	routeID *kernel.UUID

	status   Status
	priority Priority

	pickupAddress   Address
	dropoffAddress  Address
	packageInfo     PackageInfo
	packageNotes    string
	trackingNumber  string
	fee             Fee
	currentLocation *kernel.GeoPoint

	scheduledPickup   *time.Time
	scheduledDelivery *time.Time
	actualPickup      *time.Time
	actualDelivery    *time.Time

	proofOfDelivery *proof.Proof
	failureReason   string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewDelivery creates a new Delivery in Pending status. The fee breakdown is
// computed once here, from the straight-line pickup-to-dropoff distance and
// the priority, and never recalculated afterward.
func NewDelivery(id, orderID, customerID, pharmacyID kernel.UUID,
	pickupAddress, dropoffAddress Address, packageInfo PackageInfo, packageNotes string,
	priority Priority, trackingNumber string, now time.Time) (*Delivery, error) {
	d := &Delivery{
		status:        StatusPending,
		packageNotes:  strings.TrimSpace(packageNotes),
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setReference("orderID", &d.orderID, orderID),
		d.setReference("customerID", &d.customerID, customerID),
		d.setReference("pharmacyID", &d.pharmacyID, pharmacyID),
		d.setAddress("pickupAddress", &d.pickupAddress, pickupAddress),
		d.setAddress("dropoffAddress", &d.dropoffAddress, dropoffAddress),
		d.setPackageInfo(packageInfo),
		d.setPriority(priority),
		d.setTrackingNumber(trackingNumber),
	); err != nil {
		return nil, err
	}

	distanceKm, err := d.pickupAddress.Point().DistanceKm(d.dropoffAddress.Point())
	if err != nil {
		return nil, err
	}
	fee, err := CalculateFee(distanceKm, d.priority)
	if err != nil {
		return nil, err
	}
	d.fee = fee

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence without re-running
// creation-time side effects. Status-dependent fields are accepted as stored;
// the state machine guarded their writes when they originally happened.
func RestoreDelivery(id, orderID, customerID, pharmacyID kernel.UUID,
	partnerID, routeID *kernel.UUID, status Status, priority Priority,
	pickupAddress, dropoffAddress Address, packageInfo PackageInfo, packageNotes string,
	trackingNumber string, fee Fee, currentLocation *kernel.GeoPoint,
	scheduledPickup, scheduledDelivery, actualPickup, actualDelivery *time.Time,
	proofOfDelivery *proof.Proof, failureReason string,
	createdAt, updatedAt time.Time) (*Delivery, error) {
	d := &Delivery{
		partnerID:         partnerID,
		routeID:           routeID,
		packageNotes:      packageNotes,
		currentLocation:   currentLocation,
		scheduledPickup:   scheduledPickup,
		scheduledDelivery: scheduledDelivery,
		actualPickup:      actualPickup,
		actualDelivery:    actualDelivery,
		proofOfDelivery:   proofOfDelivery,
		failureReason:     failureReason,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setReference("orderID", &d.orderID, orderID),
		d.setReference("customerID", &d.customerID, customerID),
		d.setReference("pharmacyID", &d.pharmacyID, pharmacyID),
		d.setAddress("pickupAddress", &d.pickupAddress, pickupAddress),
		d.setAddress("dropoffAddress", &d.dropoffAddress, dropoffAddress),
		d.setPackageInfo(packageInfo),
		d.setPriority(priority),
		d.setStatus(status),
		d.setTrackingNumber(trackingNumber),
		d.setFee(fee),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Delivery was properly constructed through a factory.
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

func (d *Delivery) ID() kernel.UUID               { return d.id }
func (d *Delivery) OrderID() kernel.UUID          { return d.orderID }
func (d *Delivery) CustomerID() kernel.UUID       { return d.customerID }
func (d *Delivery) PharmacyID() kernel.UUID       { return d.pharmacyID }
func (d *Delivery) Status() Status                { return d.status }
func (d *Delivery) Priority() Priority            { return d.priority }
func (d *Delivery) PickupAddress() Address        { return d.pickupAddress }
func (d *Delivery) DropoffAddress() Address       { return d.dropoffAddress }
func (d *Delivery) PackageInfo() PackageInfo      { return d.packageInfo }
func (d *Delivery) PackageNotes() string          { return d.packageNotes }
func (d *Delivery) TrackingNumber() string        { return d.trackingNumber }
func (d *Delivery) Fee() Fee                      { return d.fee }
func (d *Delivery) FailureReason() string         { return d.failureReason }
func (d *Delivery) CreatedAt() time.Time          { return d.createdAt }
func (d *Delivery) UpdatedAt() time.Time          { return d.updatedAt }
func (d *Delivery) ScheduledPickup() *time.Time   { return copyTime(d.scheduledPickup) }
func (d *Delivery) ScheduledDelivery() *time.Time { return copyTime(d.scheduledDelivery) }
func (d *Delivery) ActualPickup() *time.Time      { return copyTime(d.actualPickup) }
func (d *Delivery) ActualDelivery() *time.Time    { return copyTime(d.actualDelivery) }

// Partner returns the assigned partner's ID, or nil if unassigned.
func (d *Delivery) Partner() *kernel.UUID {
	if d.partnerID == nil {
		return nil
	}
	id := *d.partnerID
	return &id
}

// Route returns the claiming route's ID, or nil if the delivery is unrouted.
func (d *Delivery) Route() *kernel.UUID {
	if d.routeID == nil {
		return nil
	}
	id := *d.routeID
	return &id
}

// CurrentLocation returns the latest known location snapshot, or nil.
func (d *Delivery) CurrentLocation() *kernel.GeoPoint {
	if d.currentLocation == nil {
		return nil
	}
	p := *d.currentLocation
	return &p
}

// ProofOfDelivery returns the attached proof, or nil before delivery.
func (d *Delivery) ProofOfDelivery() *proof.Proof {
	if d.proofOfDelivery == nil {
		return nil
	}
	p := *d.proofOfDelivery
	return &p
}

// Schedule sets the promised pickup and delivery windows. Either may be nil.
func (d *Delivery) Schedule(pickup, delivery *time.Time, now time.Time) error {
	if pickup != nil && delivery != nil && delivery.Before(*pickup) {
		return errs.NewValueIsInvalidErrorWithCause("scheduledDelivery",
			fmt.Errorf("%s is before scheduled pickup %s", delivery, pickup))
	}
	d.scheduledPickup = copyTime(pickup)
	d.scheduledDelivery = copyTime(delivery)
	d.touch(now)
	return nil
}

// Assign assigns the delivery to a partner and moves it to Assigned.
// The partner must be eligible at the given instant: active and inside its
// working-hours window. Assignment to an ineligible partner is rejected with
// PartnerNotEligibleError and leaves the delivery untouched.
func (d *Delivery) Assign(p *partner.Partner, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := p.IsEligibleAt(now); err != nil {
		return err
	}

	newStatus, err := d.status.Assign()
	if err != nil {
		return err
	}

	d.status = newStatus
	partnerID := p.ID()
	d.partnerID = &partnerID
	d.touch(now)
	return nil
}

// MarkPickedUp moves the delivery to PickedUp and stamps actualPickup.
func (d *Delivery) MarkPickedUp(location *kernel.GeoPoint, now time.Time) error {
	newStatus, err := d.status.PickUp()
	if err != nil {
		return err
	}

	d.status = newStatus
	pickedAt := now.UTC()
	d.actualPickup = &pickedAt
	d.setCurrentLocation(location)
	d.touch(now)
	return nil
}

// MarkInTransit moves the delivery to InTransit. Location update only,
// no timestamp side effect beyond updatedAt.
func (d *Delivery) MarkInTransit(location *kernel.GeoPoint, now time.Time) error {
	newStatus, err := d.status.StartTransit()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.setCurrentLocation(location)
	d.touch(now)
	return nil
}

// MarkDelivered finalizes the delivery with a proof of delivery. The proof
// must pass integrity verification; a tampered proof is rejected with
// IntegrityCheckFailedError and the delivery stays in its current status.
// actualDelivery and the proof are set together, atomically with the
// transition.
func (d *Delivery) MarkDelivered(pf proof.Proof, now time.Time) error {
	if err := pf.Validate(); err != nil {
		return err
	}

	ok, err := pf.Verify()
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewIntegrityCheckFailedError("proofOfDelivery checksum mismatch")
	}

	newStatus, err := d.status.Deliver()
	if err != nil {
		return err
	}

	d.status = newStatus
	deliveredAt := pf.CompletedAt().UTC()
	d.actualDelivery = &deliveredAt
	d.proofOfDelivery = &pf
	location := pf.Location()
	d.setCurrentLocation(&location)
	d.touch(now)
	return nil
}

// Fail moves the delivery to Failed from any non-terminal status.
// A reason is required.
func (d *Delivery) Fail(reason string, now time.Time) error {
	return d.terminate(reason, now, Status.Fail, func(newStatus Status) {
		d.status = newStatus
	})
}

// Cancel moves the delivery to Cancelled from any non-terminal status.
// A reason is required.
func (d *Delivery) Cancel(reason string, now time.Time) error {
	return d.terminate(reason, now, Status.Cancel, func(newStatus Status) {
		d.status = newStatus
	})
}

func (d *Delivery) terminate(reason string, now time.Time,
	transition func(Status) (Status, error), apply func(Status)) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	newStatus, err := transition(d.status)
	if err != nil {
		return err
	}

	apply(newStatus)
	d.failureReason = reason
	d.touch(now)
	return nil
}

// AttachRoute claims the delivery for a route. A delivery may belong to at
// most one route; a second claim is rejected with ErrRouteAlreadyClaimed.
func (d *Delivery) AttachRoute(routeID kernel.UUID, now time.Time) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	if d.routeID != nil && !d.routeID.IsEqual(routeID) {
		return ErrRouteAlreadyClaimed
	}

	d.routeID = &routeID
	d.touch(now)
	return nil
}

// RecordLocation updates the current location snapshot without a status
// transition. Used for mid-transit courier pings.
func (d *Delivery) RecordLocation(location kernel.GeoPoint, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if d.status.IsTerminal() {
		return errs.NewInvalidTransitionError(d.status.String(), d.status.String())
	}

	d.currentLocation = &location
	d.touch(now)
	return nil
}

func (d *Delivery) setCurrentLocation(location *kernel.GeoPoint) {
	if location != nil {
		p := *location
		d.currentLocation = &p
	}
}

func (d *Delivery) touch(now time.Time) {
	d.updatedAt = now.UTC()
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setReference(name string, dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	*dst = id
	return nil
}

func (d *Delivery) setAddress(name string, dst *Address, a Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	*dst = a
	return nil
}

func (d *Delivery) setPackageInfo(p PackageInfo) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.packageInfo = p
	return nil
}

func (d *Delivery) setPriority(p Priority) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.priority = p
	return nil
}

func (d *Delivery) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d.status = s
	return nil
}

func (d *Delivery) setTrackingNumber(trackingNumber string) error {
	if !ValidTrackingNumber(trackingNumber) {
		return errs.NewValueIsInvalidErrorWithCause("trackingNumber",
			fmt.Errorf("%q does not match the tracking number format", trackingNumber))
	}
	d.trackingNumber = trackingNumber
	return nil
}

func (d *Delivery) setFee(f Fee) error {
	if err := f.Validate(); err != nil {
		return err
	}
	d.fee = f
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
