package commands

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

var ErrOptimizeRouteCommandIsNotConstructed = errors.New(
	"OptimizeRouteCommand must be created via NewOptimizeRouteCommand constructor",
)

// OptimizeRouteCommand represents a request to batch a set of deliveries into
// an optimized route for one partner.
type OptimizeRouteCommand struct { //nolint:recvcheck //using for validation
	routeID     kernel.UUID
	partnerID   kernel.UUID
	deliveryIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewOptimizeRouteCommand creates a command to plan a route. Rejects an empty
// delivery set.
func NewOptimizeRouteCommand(routeID, partnerID kernel.UUID,
	deliveryIDs []kernel.UUID) (OptimizeRouteCommand, error) {
	cmd := OptimizeRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteID(routeID),
		cmd.setPartnerID(partnerID),
		cmd.setDeliveryIDs(deliveryIDs),
	); err != nil {
		return OptimizeRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OptimizeRouteCommand) Validate() error {
	return c.guard.Validate(ErrOptimizeRouteCommandIsNotConstructed)
}

func (c OptimizeRouteCommand) RouteID() kernel.UUID   { return c.routeID }
func (c OptimizeRouteCommand) PartnerID() kernel.UUID { return c.partnerID }

// DeliveryIDs returns a copy of the delivery id batch.
func (c OptimizeRouteCommand) DeliveryIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.deliveryIDs...)
}

func (c *OptimizeRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}

func (c *OptimizeRouteCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}

func (c *OptimizeRouteCommand) setDeliveryIDs(deliveryIDs []kernel.UUID) error {
	if len(deliveryIDs) == 0 {
		return errs.NewValueIsRequiredError("deliveryIDs")
	}
	for _, id := range deliveryIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.deliveryIDs = append([]kernel.UUID(nil), deliveryIDs...)
	return nil
}
