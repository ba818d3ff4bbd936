// Package trackingrepo persists the append-only tracking log.
package trackingrepo

import (
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingEventDTO represents the database structure for tracking events.
// Rows are only ever inserted; history reads are served by the composite
// (delivery_id, recorded_at) index. Seq is database-assigned and pins the
// append order even when two events share a timestamp.
type TrackingEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"autoIncrement"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index:idx_tracking_delivery_recorded,priority:1"`
	Status     int
	Lat        *float64
	Lon        *float64
	Message    string
	PartnerID  *uuid.UUID `gorm:"type:uuid"`
	RecordedAt time.Time  `gorm:"index:idx_tracking_delivery_recorded,priority:2"`
}

// TableName overrides GORM's default naming to use "tracking_events".
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

// fromDomain converts a tracking event to its database representation.
func fromDomain(e *tracking.Event) TrackingEventDTO {
	dto := TrackingEventDTO{
		ID:         e.ID().Bytes(),
		DeliveryID: e.DeliveryID().Bytes(),
		Status:     int(e.Status()),
		Message:    e.Message(),
		RecordedAt: e.RecordedAt(),
	}

	if loc := e.Location(); loc != nil {
		lat, lon := loc.Lat(), loc.Lon()
		dto.Lat = &lat
		dto.Lon = &lon
	}

	if p := e.Partner(); p != nil {
		raw := p.Bytes()
		dto.PartnerID = &raw
	}

	return dto
}

// toDomain converts a database DTO to a tracking event using RestoreEvent.
func toDomain(dto TrackingEventDTO) (*tracking.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, locErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if locErr != nil {
			return nil, locErr
		}
		location = &point
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if pErr != nil {
			return nil, pErr
		}
		partnerID = &pID
	}

	return tracking.RestoreEvent(id, deliveryID, delivery.Status(dto.Status),
		location, dto.Message, partnerID, dto.RecordedAt)
}
