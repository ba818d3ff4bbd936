package ports

import (
	"context"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetForUpdate retrieves a delivery aggregate and locks its row for the
	// duration of the surrounding transaction. Concurrent status updates to
	// the same delivery serialize on this lock; updates to different
	// deliveries proceed without blocking each other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByTrackingNumber retrieves a delivery by its external tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*delivery.Delivery, error)

	// TrackingNumberExists reports whether a tracking number is already taken.
	// Used by creation to guarantee uniqueness within the registry.
	TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error)

	// GetAllInPendingStatus retrieves deliveries awaiting partner assignment,
	// oldest first. Used by the dispatch job.
	GetAllInPendingStatus(ctx context.Context) ([]*delivery.Delivery, error)
}
