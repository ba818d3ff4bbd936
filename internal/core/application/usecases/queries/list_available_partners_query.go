package queries

import (
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

var ErrListAvailablePartnersQueryIsNotConstructed = errors.New(
	"ListAvailablePartnersQuery must be created via NewListAvailablePartnersQuery constructor",
)

// ListAvailablePartnersQuery retrieves the partners available for dispatch at
// a given instant: active, with a working-hours window containing it.
type ListAvailablePartnersQuery struct {
	at time.Time

	guard guard.ConstructorGuard
}

// NewListAvailablePartnersQuery creates a query for partners available at the
// given instant.
func NewListAvailablePartnersQuery(at time.Time) (ListAvailablePartnersQuery, error) {
	if at.IsZero() {
		return ListAvailablePartnersQuery{}, errs.NewValueIsRequiredError("at")
	}

	return ListAvailablePartnersQuery{
		at:    at,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAvailablePartnersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailablePartnersQueryIsNotConstructed)
}

func (q ListAvailablePartnersQuery) At() time.Time { return q.at }

// ListAvailablePartnersQueryResponse is the read model of one available
// partner.
type ListAvailablePartnersQueryResponse struct {
	ID                  kernel.UUID
	Name                string
	Kind                string
	Vehicle             string
	Rating              float64
	CompletedDeliveries int
	LastLocation        *kernel.GeoPoint
}
