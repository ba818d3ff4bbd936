package queries

import (
	"context"
	"database/sql"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListPartnerDeliveriesQueryHandler retrieves a partner's active deliveries
// with direct SQL, bypassing the aggregates.
type ListPartnerDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListPartnerDeliveriesQueryHandler creates a handler for partner workload queries.
func NewListPartnerDeliveriesQueryHandler(db *gorm.DB) ListPartnerDeliveriesQueryHandler {
	return ListPartnerDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Urgent deliveries come first, then older ones.
func (h ListPartnerDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListPartnerDeliveriesQuery,
) ([]DeliveryListItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			status,
			priority,
			dropoff_street,
			dropoff_city,
			fee_base + fee_distance + fee_surcharge,
			created_at
		FROM deliveries
		WHERE partner_id = ?
		  AND status NOT IN (?, ?, ?)
		ORDER BY priority DESC, created_at
	`, query.PartnerID().Bytes(),
		int(delivery.StatusDelivered), int(delivery.StatusFailed), int(delivery.StatusCancelled),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeliveryList(rows)
}

// scanDeliveryList reads delivery list rows produced by the shared column set
// of the list queries.
func scanDeliveryList(rows *sql.Rows) ([]DeliveryListItemResponse, error) {
	deliveries := make([]DeliveryListItemResponse, 0)

	for rows.Next() {
		var id uuid.UUID
		var item DeliveryListItemResponse
		var status, priority int

		err := rows.Scan(&id, &item.TrackingNumber, &status, &priority,
			&item.DropoffStreet, &item.DropoffCity, &item.FeeTotal, &item.CreatedAt)
		if err != nil {
			return nil, err
		}

		deliveryID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		item.ID = deliveryID
		item.Status = delivery.Status(status).String()
		item.Priority = delivery.Priority(priority).String()

		deliveries = append(deliveries, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
