package ports

import (
	"context"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for partner aggregates.
// Partners are never deleted, only deactivated.
type PartnerRepository interface {
	// Add persists a new partner aggregate to storage.
	Add(ctx context.Context, aggregate *partner.Partner) error

	// Update persists changes to an existing partner aggregate.
	Update(ctx context.Context, aggregate *partner.Partner) error

	// Get retrieves a partner aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error)

	// GetAllActive retrieves every partner whose active flag is set.
	// Working-hours eligibility at a given instant is a domain rule; callers
	// filter the result through Partner.IsEligibleAt.
	GetAllActive(ctx context.Context) ([]*partner.Partner, error)

	// GetAllAvailableAt retrieves active partners whose working-hours window
	// contains the given instant.
	GetAllAvailableAt(ctx context.Context, now time.Time) ([]*partner.Partner, error)
}
