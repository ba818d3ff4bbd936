package queries

import (
	"context"
	"database/sql"
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingQueryHandler serves the tracking view of a delivery from the
// database with direct SQL. The event list is ordered by the insertion
// sequence, matching the append order of the log.
type GetTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingQueryHandler creates a handler for tracking history queries.
func NewGetTrackingQueryHandler(db *gorm.DB) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db}
}

// Handle executes the query.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	response, err := h.loadDelivery(ctx, query.DeliveryID())
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	events, err := h.loadEvents(ctx, query.DeliveryID())
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}
	response.Events = events

	return response, nil
}

func (h GetTrackingQueryHandler) loadDelivery(ctx context.Context, deliveryID kernel.UUID) (GetTrackingQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			tracking_number
		FROM deliveries
		WHERE id = ?
	`, deliveryID.Bytes()).Row()

	var id uuid.UUID
	var status int
	var trackingNumber string
	if err := row.Scan(&id, &status, &trackingNumber); err != nil {
		if err == sql.ErrNoRows {
			return GetTrackingQueryResponse{}, errs.NewObjectNotFoundError("delivery", deliveryID.String())
		}
		return GetTrackingQueryResponse{}, err
	}

	respID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	return GetTrackingQueryResponse{
		DeliveryID:     respID,
		Status:         delivery.Status(status).String(),
		TrackingNumber: trackingNumber,
	}, nil
}

func (h GetTrackingQueryHandler) loadEvents(ctx context.Context, deliveryID kernel.UUID) ([]TrackingEventResponse, error) {
	events := make([]TrackingEventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			message,
			lat,
			lon,
			partner_id,
			recorded_at
		FROM tracking_events
		WHERE delivery_id = ?
		ORDER BY seq
	`, deliveryID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var status int
		var message string
		var lat, lon sql.NullFloat64
		var partnerID uuid.NullUUID
		var recordedAt time.Time

		if err = rows.Scan(&id, &status, &message, &lat, &lon, &partnerID, &recordedAt); err != nil {
			return nil, err
		}

		event := TrackingEventResponse{
			Status:     delivery.Status(status).String(),
			Message:    message,
			RecordedAt: recordedAt,
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		event.ID = eventID

		if lat.Valid && lon.Valid {
			point, locErr := kernel.NewGeoPoint(lat.Float64, lon.Float64)
			if locErr != nil {
				return nil, locErr
			}
			event.Location = &point
		}

		if partnerID.Valid {
			pID, pErr := kernel.UUIDFromBytes(partnerID.UUID[:])
			if pErr != nil {
				return nil, pErr
			}
			event.PartnerID = &pID
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
