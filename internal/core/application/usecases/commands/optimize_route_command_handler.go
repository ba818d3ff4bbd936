package commands

import (
	"context"
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/route"
	"pharmadelivery/internal/core/domain/services"
)

// OptimizeRouteCommandHandler plans a route over a batch of deliveries.
//
// The computation splits into two phases. The pure phase reads the deliveries
// without row locks and runs the nearest-neighbor optimizer; it touches no
// shared state and is safe to cancel at any point. The commit phase then
// locks each constituent delivery, claims it for the route, and persists the
// route record, so a delivery can never be claimed by two routes.
type OptimizeRouteCommandHandler struct {
	uowFactory UoWFactory
	optimizer  services.RouteOptimizer
}

// NewOptimizeRouteCommandHandler creates a handler for route planning.
func NewOptimizeRouteCommandHandler(uowFactory UoWFactory,
	optimizer services.RouteOptimizer) OptimizeRouteCommandHandler {
	return OptimizeRouteCommandHandler{
		uowFactory: uowFactory,
		optimizer:  optimizer,
	}
}

// Handle processes the route planning command.
func (h *OptimizeRouteCommandHandler) Handle(ctx context.Context, cmd OptimizeRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	partnerRepo := uow.PartnerRepository()
	routeRepo := uow.RouteRepository()
	now := time.Now()

	p, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}
	if err = p.IsEligibleAt(now); err != nil {
		return err
	}

	// Pure phase: plain reads, no row locks held during the computation.
	deliveries := make([]*delivery.Delivery, 0, len(cmd.DeliveryIDs()))
	for _, id := range cmd.DeliveryIDs() {
		d, err := deliveryRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		deliveries = append(deliveries, d)
	}

	plan, err := h.optimizer.Optimize(ctx, deliveries)
	if err != nil {
		return err
	}

	r, err := route.NewRoute(cmd.RouteID(), p.ID(), cmd.DeliveryIDs(), plan.Order,
		plan.TotalDistanceKm, plan.EstimatedDurationMinutes,
		plan.StartAddress, plan.EndAddress, now)
	if err != nil {
		return err
	}

	// Commit phase: lock each delivery while writing the route claim back.
	for _, id := range cmd.DeliveryIDs() {
		d, err := deliveryRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err = d.AttachRoute(r.ID(), now); err != nil {
			return err
		}
		if err = deliveryRepo.Update(ctx, d); err != nil {
			return err
		}
	}

	if err = routeRepo.Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
