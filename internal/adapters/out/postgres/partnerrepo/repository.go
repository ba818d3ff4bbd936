package partnerrepo

import (
	"context"
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"
	"pharmadelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPartnerRepository implements PartnerRepository using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPartnerRepository creates a new GORM partner repository.
func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new partner to the database.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing partner to the database.
// Select("*") forces zero-valued columns into the update; a struct update
// would silently skip active=false and drop deactivations.
func (r *GormPartnerRepository) Update(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PartnerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a partner by ID.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every partner whose active flag is set, by name.
func (r *GormPartnerRepository) GetAllActive(ctx context.Context) ([]*partner.Partner, error) {
	var dtos []PartnerDTO
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	partners := make([]*partner.Partner, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}

	return partners, nil
}

// GetAllAvailableAt retrieves active partners whose working-hours window
// contains the given instant. The window check runs on the domain value
// object, so overnight windows behave exactly as the aggregate defines them.
func (r *GormPartnerRepository) GetAllAvailableAt(ctx context.Context, now time.Time) ([]*partner.Partner, error) {
	active, err := r.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]*partner.Partner, 0, len(active))
	for _, p := range active {
		if p.IsEligibleAt(now) != nil {
			continue
		}
		available = append(available, p)
	}

	return available, nil
}
