package commands

import (
	"context"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"
	"pharmadelivery/internal/core/domain/model/tracking"
	"pharmadelivery/internal/core/ports"
)

// AssignPartnerCommandHandler handles assigning a chosen partner to a pending
// delivery. The transition and its tracking event commit in one transaction;
// the delivery row is locked for the duration so concurrent updates to the
// same delivery serialize.
//
// For third-party partners the external courier service is notified after the
// commit. A notification failure does not undo the assignment; it surfaces to
// the caller as a transient provider error for a later retry.
type AssignPartnerCommandHandler struct {
	uowFactory       UoWFactory
	dispatchProvider ports.DispatchProvider
}

// NewAssignPartnerCommandHandler creates a handler for partner assignment.
func NewAssignPartnerCommandHandler(uowFactory UoWFactory,
	dispatchProvider ports.DispatchProvider) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{
		uowFactory:       uowFactory,
		dispatchProvider: dispatchProvider,
	}
}

// Handle processes the partner assignment command.
func (h *AssignPartnerCommandHandler) Handle(ctx context.Context, cmd AssignPartnerCommand) error {
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
	trackingRepo := uow.TrackingEventRepository()
	now := time.Now()

	d, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	p, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	if err = d.Assign(p, now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	partnerID := p.ID()
	event, err := tracking.NewEvent(kernel.NewUUID(), d.ID(), d.Status(),
		nil, "assigned to "+p.Name(), &partnerID, now)
	if err != nil {
		return err
	}

	if err = trackingRepo.Append(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if p.Kind() == partner.KindThirdParty && h.dispatchProvider != nil {
		return h.dispatchProvider.NotifyAssignment(ctx, d, p)
	}

	return nil
}
