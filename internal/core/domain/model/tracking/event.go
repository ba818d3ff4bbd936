package tracking

import (
	"errors"
	"strings"
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
)

var (
	// ErrEventIsNotConstructed is returned when an Event instance was not
	// created through the NewEvent or RestoreEvent factory methods.
	ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")
)

// Event is one immutable entry in a delivery's append-only tracking log.
// Events are never mutated or deleted after creation; the ordered sequence of
// events for a delivery id is its full audit trail.
type Event struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	status     delivery.Status
	location   *kernel.GeoPoint
	message    string
	partnerID  *kernel.UUID
	recordedAt time.Time

	isConstructed bool
}

// NewEvent creates a tracking event for a delivery status observation.
// Location and partner id are optional.
func NewEvent(id, deliveryID kernel.UUID, status delivery.Status,
	location *kernel.GeoPoint, message string, partnerID *kernel.UUID,
	recordedAt time.Time) (*Event, error) {
	e := &Event{
		message:       strings.TrimSpace(message),
		recordedAt:    recordedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setDeliveryID(deliveryID),
		e.setStatus(status),
		e.setLocation(location),
		e.setPartnerID(partnerID),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(id, deliveryID kernel.UUID, status delivery.Status,
	location *kernel.GeoPoint, message string, partnerID *kernel.UUID,
	recordedAt time.Time) (*Event, error) {
	return NewEvent(id, deliveryID, status, location, message, partnerID, recordedAt)
}

// Validate ensures the Event was properly constructed through a factory.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// IsEqual compares two events by their unique identifiers.
func (e *Event) IsEqual(other *Event) bool {
	return other != nil && e.id.IsEqual(other.id)
}

func (e *Event) ID() kernel.UUID         { return e.id }
func (e *Event) DeliveryID() kernel.UUID { return e.deliveryID }
func (e *Event) Status() delivery.Status { return e.status }
func (e *Event) Message() string         { return e.message }
func (e *Event) RecordedAt() time.Time   { return e.recordedAt }

// Location returns the location snapshot at the time of the event, or nil.
func (e *Event) Location() *kernel.GeoPoint {
	if e.location == nil {
		return nil
	}
	p := *e.location
	return &p
}

// Partner returns the acting partner's ID, or nil for system events.
func (e *Event) Partner() *kernel.UUID {
	if e.partnerID == nil {
		return nil
	}
	id := *e.partnerID
	return &id
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveryID", err)
	}
	e.deliveryID = deliveryID
	return nil
}

func (e *Event) setStatus(status delivery.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	e.status = status
	return nil
}

func (e *Event) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("location", err)
	}
	p := *location
	e.location = &p
	return nil
}

func (e *Event) setPartnerID(partnerID *kernel.UUID) error {
	if partnerID == nil {
		return nil
	}
	if err := partnerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("partnerID", err)
	}
	id := *partnerID
	e.partnerID = &id
	return nil
}
