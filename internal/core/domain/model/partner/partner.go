package partner

import (
	"errors"
	"fmt"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

// Domain errors for partner operations.
var (
	// ErrNameIsRequired is returned when attempting to create a partner without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a partner without a contact phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrPartnerIsNotConstructed is returned when using an improperly initialized Partner.
	ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner constructor")
	// ErrPartnerIsDeactivated names the eligibility rule broken by inactive partners.
	ErrPartnerIsDeactivated = errors.New("partner is deactivated")
	// ErrOutsideWorkingHours names the eligibility rule broken outside the working-hours window.
	ErrOutsideWorkingHours = errors.New("partner is outside working hours")
)

// LocationPing is a partner's last reported position with the time it was
// captured. Pings are compared by timestamp; an older ping never replaces a
// newer one.
type LocationPing struct {
	Point kernel.GeoPoint
	At    time.Time
}

// Partner represents a courier partner in the system. It is an aggregate root
// that manages the partner's identity, availability, and delivery statistics.
//
// Business rules:
//   - A partner must have a valid UUID, non-empty name and phone, a valid
//     kind, and a constructed working-hours window
//   - Partners are deactivated, never deleted
//   - Location updates are last-write-wins by capture timestamp; stale
//     updates are discarded without error
//   - Eligibility requires the active flag and the working-hours window to
//     contain the instant being checked
type Partner struct {
	id   kernel.UUID
	name string
	kind Kind
	// phone is the primary contact channel used by dispatch and support
	phone   string
	vehicle string
	// rating is the average customer rating, 0 until first rated
	rating float64
	// completedDeliveries is the cumulative count of delivered assignments
	completedDeliveries int
	active              bool
	lastLocation        *LocationPing
	workingHours        WorkingHours
	guard               guard.ConstructorGuard
}

// NewPartner creates a new active Partner with no delivery history.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: display name (must be non-empty)
//   - kind: internal or third_party
//   - phone: contact phone (must be non-empty)
//   - vehicle: free-text vehicle descriptor (may be empty)
//   - workingHours: weekly availability window
//
// Returns a validation error if any parameter is invalid; errors for multiple
// invalid parameters are joined.
func NewPartner(
	id kernel.UUID,
	name string,
	kind Kind,
	phone string,
	vehicle string,
	workingHours WorkingHours,
) (*Partner, error) {
	partner := &Partner{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		partner.setID(id),
		partner.setName(name),
		partner.setKind(kind),
		partner.setPhone(phone),
		partner.setWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	partner.vehicle = vehicle
	return partner, nil
}

// RestorePartner reconstructs a Partner aggregate from persistent storage,
// including its activity flag, statistics, and last reported location.
// The restored partner behaves identically to one mutated through normal
// domain operations.
func RestorePartner(
	id kernel.UUID,
	name string,
	kind Kind,
	phone string,
	vehicle string,
	rating float64,
	completedDeliveries int,
	active bool,
	lastLocation *LocationPing,
	workingHours WorkingHours,
) (*Partner, error) {
	partner, err := NewPartner(id, name, kind, phone, vehicle, workingHours)
	if err != nil {
		return nil, err
	}

	if rating < 0 || rating > 5 {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, 0, 5)
	}
	if completedDeliveries < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("completedDeliveries",
			fmt.Errorf("%d is negative", completedDeliveries))
	}
	if lastLocation != nil {
		if err = lastLocation.Point.Validate(); err != nil {
			return nil, err
		}
	}

	partner.rating = rating
	partner.completedDeliveries = completedDeliveries
	partner.active = active
	partner.lastLocation = lastLocation
	return partner, nil
}

// Validate ensures the Partner was constructed through NewPartner or RestorePartner.
func (p *Partner) Validate() error {
	if p == nil || p.guard.Validate(ErrPartnerIsNotConstructed) != nil {
		return ErrPartnerIsNotConstructed
	}
	return nil
}

// IsEqual compares two partners by identity.
func (p *Partner) IsEqual(other *Partner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *Partner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's display name.
func (p *Partner) Name() string {
	return p.name
}

// Kind returns whether the partner is internal or third-party.
func (p *Partner) Kind() Kind {
	return p.kind
}

// Phone returns the partner's contact phone.
func (p *Partner) Phone() string {
	return p.phone
}

// Vehicle returns the free-text vehicle descriptor.
func (p *Partner) Vehicle() string {
	return p.vehicle
}

// Rating returns the partner's average customer rating.
func (p *Partner) Rating() float64 {
	return p.rating
}

// CompletedDeliveries returns the cumulative delivered count.
func (p *Partner) CompletedDeliveries() int {
	return p.completedDeliveries
}

// IsActive reports whether the partner can currently receive work.
func (p *Partner) IsActive() bool {
	return p.active
}

// LastLocation returns a copy of the last reported location ping, or nil if
// the partner has never reported a position.
func (p *Partner) LastLocation() *LocationPing {
	if p.lastLocation == nil {
		return nil
	}
	ping := *p.lastLocation
	return &ping
}

// WorkingHours returns the partner's weekly availability window.
func (p *Partner) WorkingHours() WorkingHours {
	return p.workingHours
}

// Activate marks the partner as able to receive work again.
func (p *Partner) Activate() {
	p.active = true
}

// Deactivate takes the partner out of rotation. Deactivation is the only
// removal mechanism; partner records are never deleted.
func (p *Partner) Deactivate() {
	p.active = false
}

// UpdateLocation records a position ping. Updates are last-write-wins by
// capture timestamp: a ping older than the stored one is discarded, not
// applied, and the method reports false without error.
func (p *Partner) UpdateLocation(point kernel.GeoPoint, at time.Time) (bool, error) {
	if err := point.Validate(); err != nil {
		return false, err
	}
	if at.IsZero() {
		return false, errs.NewValueIsRequiredError("capturedAt")
	}

	if p.lastLocation != nil && !at.After(p.lastLocation.At) {
		return false, nil
	}

	p.lastLocation = &LocationPing{Point: point, At: at}
	return true, nil
}

// IsEligibleAt is the single eligibility predicate consulted before
// committing this partner to a delivery or route. It returns nil when the
// partner is active and the working-hours window contains now; otherwise a
// PartnerNotEligibleError whose cause names the rule that failed.
func (p *Partner) IsEligibleAt(now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if !p.active {
		return errs.NewPartnerNotEligibleError(p.id.String(), ErrPartnerIsDeactivated)
	}

	within, err := p.workingHours.Contains(now)
	if err != nil {
		return err
	}
	if !within {
		return errs.NewPartnerNotEligibleError(p.id.String(), ErrOutsideWorkingHours)
	}

	return nil
}

// RecordCompletedDelivery increments the cumulative delivered count.
// Called when a delivery assigned to this partner reaches its terminal
// delivered state.
func (p *Partner) RecordCompletedDelivery() {
	p.completedDeliveries++
}

func (p *Partner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Partner) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Partner) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	p.kind = kind
	return nil
}

func (p *Partner) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	p.phone = phone
	return nil
}

func (p *Partner) setWorkingHours(workingHours WorkingHours) error {
	if err := workingHours.Validate(); err != nil {
		return err
	}
	p.workingHours = workingHours
	return nil
}
