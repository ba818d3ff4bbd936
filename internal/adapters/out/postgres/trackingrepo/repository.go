package trackingrepo

import (
	"context"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

// GormTrackingEventRepository implements TrackingEventRepository using GORM.
// The log is append-only; there is no update path.
type GormTrackingEventRepository struct {
	db *gorm.DB
}

// NewGormTrackingEventRepository creates a new GORM tracking event repository.
func NewGormTrackingEventRepository(db *gorm.DB) *GormTrackingEventRepository {
	return &GormTrackingEventRepository{db: db}
}

// Append persists a new tracking event.
func (r *GormTrackingEventRepository) Append(ctx context.Context, event *tracking.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByDeliveryID retrieves the event history for a delivery, oldest first.
func (r *GormTrackingEventRepository) GetByDeliveryID(ctx context.Context, deliveryID kernel.UUID) ([]*tracking.Event, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackingEventDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*tracking.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, nil
}
