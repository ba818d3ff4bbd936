package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListCustomerDeliveriesQueryHandler retrieves a customer's deliveries with
// direct SQL.
type ListCustomerDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListCustomerDeliveriesQueryHandler creates a handler for customer history queries.
func NewListCustomerDeliveriesQueryHandler(db *gorm.DB) ListCustomerDeliveriesQueryHandler {
	return ListCustomerDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Results are ordered newest first.
func (h ListCustomerDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerDeliveriesQuery,
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
		WHERE customer_id = ?
		ORDER BY created_at DESC
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeliveryList(rows)
}
