// Package partnerrepo provides data transfer objects and mapping functions
// for partner persistence.
package partnerrepo

import (
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PartnerDTO represents the database structure for persisting partner
// aggregates. The working-hours window is stored as minutes from midnight
// plus a weekday array; the last location ping is a nullable column group
// keyed on last_location_at.
type PartnerDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"index"`
	Kind                int
	Phone               string
	Vehicle             string
	Rating              float64
	CompletedDeliveries int
	Active              bool `gorm:"index"`

	LastLat        *float64
	LastLon        *float64
	LastLocationAt *time.Time

	WorkStartMinute int
	WorkEndMinute   int
	WorkWeekdays    pq.Int64Array `gorm:"type:integer[]"`
}

// TableName overrides GORM's default naming to use "partners".
func (PartnerDTO) TableName() string {
	return "partners"
}

// fromDomain converts a partner aggregate to its database representation.
func fromDomain(p *partner.Partner) PartnerDTO {
	hours := p.WorkingHours()
	weekdays := hours.Weekdays()
	days := make(pq.Int64Array, 0, len(weekdays))
	for _, d := range weekdays {
		days = append(days, int64(d))
	}

	dto := PartnerDTO{
		ID:                  p.ID().Bytes(),
		Name:                p.Name(),
		Kind:                int(p.Kind()),
		Phone:               p.Phone(),
		Vehicle:             p.Vehicle(),
		Rating:              p.Rating(),
		CompletedDeliveries: p.CompletedDeliveries(),
		Active:              p.IsActive(),
		WorkStartMinute:     hours.StartMinute(),
		WorkEndMinute:       hours.EndMinute(),
		WorkWeekdays:        days,
	}

	if ping := p.LastLocation(); ping != nil {
		lat, lon := ping.Point.Lat(), ping.Point.Lon()
		at := ping.At
		dto.LastLat = &lat
		dto.LastLon = &lon
		dto.LastLocationAt = &at
	}

	return dto
}

// toDomain converts a database DTO to a partner aggregate using RestorePartner.
func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	weekdays := make([]time.Weekday, 0, len(dto.WorkWeekdays))
	for _, d := range dto.WorkWeekdays {
		weekdays = append(weekdays, time.Weekday(d))
	}

	hours, err := partner.NewWorkingHours(
		dto.WorkStartMinute/60, dto.WorkStartMinute%60,
		dto.WorkEndMinute/60, dto.WorkEndMinute%60,
		weekdays)
	if err != nil {
		return nil, err
	}

	var lastLocation *partner.LocationPing
	if dto.LastLat != nil && dto.LastLon != nil && dto.LastLocationAt != nil {
		point, locErr := kernel.NewGeoPoint(*dto.LastLat, *dto.LastLon)
		if locErr != nil {
			return nil, locErr
		}
		lastLocation = &partner.LocationPing{Point: point, At: *dto.LastLocationAt}
	}

	return partner.RestorePartner(id, dto.Name, partner.Kind(dto.Kind),
		dto.Phone, dto.Vehicle, dto.Rating, dto.CompletedDeliveries,
		dto.Active, lastLocation, hours)
}
