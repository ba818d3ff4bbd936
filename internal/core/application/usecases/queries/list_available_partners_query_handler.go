package queries

import (
	"context"
	"database/sql"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListAvailablePartnersQueryHandler retrieves available partners with direct
// SQL. The active flag is filtered in the database; the working-hours window
// check runs on the domain value object so overnight windows behave the same
// way here as during dispatch.
type ListAvailablePartnersQueryHandler struct {
	db *gorm.DB
}

// NewListAvailablePartnersQueryHandler creates a handler for availability queries.
func NewListAvailablePartnersQueryHandler(db *gorm.DB) ListAvailablePartnersQueryHandler {
	return ListAvailablePartnersQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by name.
func (h ListAvailablePartnersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailablePartnersQuery,
) ([]ListAvailablePartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	partners := make([]ListAvailablePartnersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			kind,
			vehicle,
			rating,
			completed_deliveries,
			last_lat,
			last_lon,
			work_start_minute,
			work_end_minute,
			work_weekdays
		FROM partners
		WHERE active = true
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var resp ListAvailablePartnersQueryResponse
		var kind int
		var lastLat, lastLon sql.NullFloat64
		var startMinute, endMinute int
		var weekdays pq.Int64Array

		err = rows.Scan(&id, &resp.Name, &kind, &resp.Vehicle, &resp.Rating,
			&resp.CompletedDeliveries, &lastLat, &lastLon,
			&startMinute, &endMinute, &weekdays)
		if err != nil {
			return nil, err
		}

		within, hoursErr := withinWorkingHours(startMinute, endMinute, weekdays, query.At())
		if hoursErr != nil {
			return nil, hoursErr
		}
		if !within {
			continue
		}

		partnerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = partnerID
		resp.Kind = partner.Kind(kind).String()

		if lastLat.Valid && lastLon.Valid {
			point, locErr := kernel.NewGeoPoint(lastLat.Float64, lastLon.Float64)
			if locErr != nil {
				return nil, locErr
			}
			resp.LastLocation = &point
		}

		partners = append(partners, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}

// withinWorkingHours rebuilds the domain working-hours window from its stored
// columns and evaluates it at the given instant.
func withinWorkingHours(startMinute, endMinute int, weekdays pq.Int64Array, at time.Time) (bool, error) {
	days := make([]time.Weekday, 0, len(weekdays))
	for _, d := range weekdays {
		days = append(days, time.Weekday(d))
	}

	hours, err := partner.NewWorkingHours(
		startMinute/60, startMinute%60,
		endMinute/60, endMinute%60,
		days)
	if err != nil {
		return false, err
	}

	return hours.Contains(at)
}
