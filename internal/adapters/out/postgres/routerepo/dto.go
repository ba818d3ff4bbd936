// Package routerepo provides data transfer objects and mapping functions for
// route persistence.
package routerepo

import (
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/route"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RouteDTO represents the database structure for persisting route aggregates.
// Member delivery ids and the optimized visiting order are stored as text
// arrays of UUID strings.
type RouteDTO struct {
	ID                       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PartnerID                uuid.UUID      `gorm:"type:uuid;index"`
	Deliveries               pq.StringArray `gorm:"type:text[]"`
	OptimizedOrder           pq.StringArray `gorm:"type:text[]"`
	TotalDistanceKm          float64
	EstimatedDurationMinutes float64
	Start                    AddressDTO `gorm:"embedded;embeddedPrefix:start_"`
	End                      AddressDTO `gorm:"embedded;embeddedPrefix:end_"`
	Status                   int        `gorm:"index"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName overrides GORM's default naming to use "routes".
func (RouteDTO) TableName() string {
	return "routes"
}

// AddressDTO represents an embedded address column group.
type AddressDTO struct {
	Street       string
	City         string
	Region       string
	Country      string
	Landmark     string
	Instructions string
	Lat          float64
	Lon          float64
}

func addressToDTO(a delivery.Address) AddressDTO {
	return AddressDTO{
		Street:       a.Street(),
		City:         a.City(),
		Region:       a.Region(),
		Country:      a.Country(),
		Landmark:     a.Landmark(),
		Instructions: a.Instructions(),
		Lat:          a.Point().Lat(),
		Lon:          a.Point().Lon(),
	}
}

func addressFromDTO(dto AddressDTO) (delivery.Address, error) {
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return delivery.Address{}, err
	}
	return delivery.NewAddress(dto.Street, dto.City, dto.Region, dto.Country,
		dto.Landmark, dto.Instructions, point)
}

func uuidsToStrings(ids []kernel.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func uuidsFromStrings(raw pq.StringArray) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// fromDomain converts a route aggregate to its database representation.
func fromDomain(r *route.Route) RouteDTO {
	return RouteDTO{
		ID:                       r.ID().Bytes(),
		PartnerID:                r.PartnerID().Bytes(),
		Deliveries:               uuidsToStrings(r.Deliveries()),
		OptimizedOrder:           uuidsToStrings(r.OptimizedOrder()),
		TotalDistanceKm:          r.TotalDistanceKm(),
		EstimatedDurationMinutes: r.EstimatedDurationMinutes(),
		Start:                    addressToDTO(r.StartAddress()),
		End:                      addressToDTO(r.EndAddress()),
		Status:                   int(r.Status()),
		CreatedAt:                r.CreatedAt(),
		UpdatedAt:                r.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a route aggregate using RestoreRoute.
func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	partnerID, err := kernel.UUIDFromBytes(dto.PartnerID[:])
	if err != nil {
		return nil, err
	}

	deliveries, err := uuidsFromStrings(dto.Deliveries)
	if err != nil {
		return nil, err
	}
	optimizedOrder, err := uuidsFromStrings(dto.OptimizedOrder)
	if err != nil {
		return nil, err
	}

	start, err := addressFromDTO(dto.Start)
	if err != nil {
		return nil, err
	}
	end, err := addressFromDTO(dto.End)
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(id, partnerID, deliveries, optimizedOrder,
		dto.TotalDistanceKm, dto.EstimatedDurationMinutes,
		start, end, route.Status(dto.Status), dto.CreatedAt, dto.UpdatedAt)
}
