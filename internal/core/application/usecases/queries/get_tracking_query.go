// Package queries contains the read side of the service: raw-SQL handlers
// that bypass the aggregates and return flat read models.
package queries

import (
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery retrieves the tracking history of a delivery: its current
// status plus every logged event, oldest first.
type GetTrackingQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for a delivery's tracking history.
func NewGetTrackingQuery(deliveryID kernel.UUID) (GetTrackingQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetTrackingQuery{}, err
	}

	return GetTrackingQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

func (q GetTrackingQuery) DeliveryID() kernel.UUID { return q.deliveryID }

// GetTrackingQueryResponse is the read model for a delivery's tracking view.
type GetTrackingQueryResponse struct {
	DeliveryID     kernel.UUID
	Status         string
	TrackingNumber string
	Events         []TrackingEventResponse
}

// TrackingEventResponse is a single entry of the tracking log.
type TrackingEventResponse struct {
	ID         kernel.UUID
	Status     string
	Message    string
	Location   *kernel.GeoPoint
	PartnerID  *kernel.UUID
	RecordedAt time.Time
}
