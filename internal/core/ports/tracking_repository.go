package ports

import (
	"context"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/tracking"
)

// TrackingEventRepository defines the persistence contract for the append-only
// tracking log. Events are only ever appended; there is no update or delete.
type TrackingEventRepository interface {
	// Append persists a new tracking event.
	Append(ctx context.Context, event *tracking.Event) error

	// GetByDeliveryID retrieves the full event history for a delivery in
	// creation order, oldest first.
	GetByDeliveryID(ctx context.Context, deliveryID kernel.UUID) ([]*tracking.Event, error)
}
