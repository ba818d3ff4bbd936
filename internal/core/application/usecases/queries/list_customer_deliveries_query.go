package queries

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/guard"
)

var ErrListCustomerDeliveriesQueryIsNotConstructed = errors.New(
	"ListCustomerDeliveriesQuery must be created via NewListCustomerDeliveriesQuery constructor",
)

// ListCustomerDeliveriesQuery retrieves the delivery history of a customer,
// newest first, terminal statuses included.
type ListCustomerDeliveriesQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListCustomerDeliveriesQuery creates a query for a customer's deliveries.
func NewListCustomerDeliveriesQuery(customerID kernel.UUID) (ListCustomerDeliveriesQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ListCustomerDeliveriesQuery{}, err
	}

	return ListCustomerDeliveriesQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListCustomerDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerDeliveriesQueryIsNotConstructed)
}

func (q ListCustomerDeliveriesQuery) CustomerID() kernel.UUID { return q.customerID }
