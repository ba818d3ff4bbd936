package queries

import (
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/guard"
)

var ErrListPartnerDeliveriesQueryIsNotConstructed = errors.New(
	"ListPartnerDeliveriesQuery must be created via NewListPartnerDeliveriesQuery constructor",
)

// ListPartnerDeliveriesQuery retrieves the active workload of a partner: every
// delivery assigned to them that has not reached a terminal status.
type ListPartnerDeliveriesQuery struct {
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListPartnerDeliveriesQuery creates a query for a partner's active deliveries.
func NewListPartnerDeliveriesQuery(partnerID kernel.UUID) (ListPartnerDeliveriesQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return ListPartnerDeliveriesQuery{}, err
	}

	return ListPartnerDeliveriesQuery{
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListPartnerDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListPartnerDeliveriesQueryIsNotConstructed)
}

func (q ListPartnerDeliveriesQuery) PartnerID() kernel.UUID { return q.partnerID }

// DeliveryListItemResponse is the flat read model of one delivery in a list
// view. The dropoff is reduced to street and city; the full address lives on
// the aggregate.
type DeliveryListItemResponse struct {
	ID             kernel.UUID
	TrackingNumber string
	Status         string
	Priority       string
	DropoffStreet  string
	DropoffCity    string
	FeeTotal       float64
	CreatedAt      time.Time
}
