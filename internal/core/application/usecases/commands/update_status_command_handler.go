package commands

import (
	"context"
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/tracking"
	"pharmadelivery/internal/pkg/errs"
)

// UpdateStatusCommandHandler handles state-machine transitions requested by
// couriers and operators: picked_up, in_transit, failed, and cancelled.
//
// The delivered target is deliberately not reachable here: a delivery only
// becomes delivered through SubmitProofCommandHandler, which validates the
// proof of delivery first. The pending and assigned targets are also
// rejected; assignment has its own command.
//
// The transition and its tracking event commit in one transaction over a
// locked delivery row, so an accepted update produces exactly one event and
// a rejected update produces none.
type UpdateStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewUpdateStatusCommandHandler creates a handler for status updates.
func NewUpdateStatusCommandHandler(uowFactory DeliveryUoWFactory) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update command.
func (h *UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) error {
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
	trackingRepo := uow.TrackingEventRepository()
	now := time.Now()

	d, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = h.applyTransition(d, cmd, now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	event, err := tracking.NewEvent(kernel.NewUUID(), d.ID(), d.Status(),
		cmd.Location(), h.eventMessage(cmd), d.Partner(), now)
	if err != nil {
		return err
	}

	if err = trackingRepo.Append(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpdateStatusCommandHandler) applyTransition(d *delivery.Delivery,
	cmd UpdateStatusCommand, now time.Time) error {
	switch cmd.NewStatus() {
	case delivery.StatusPickedUp:
		return d.MarkPickedUp(cmd.Location(), now)
	case delivery.StatusInTransit:
		return d.MarkInTransit(cmd.Location(), now)
	case delivery.StatusFailed:
		return d.Fail(cmd.Reason(), now)
	case delivery.StatusCancelled:
		return d.Cancel(cmd.Reason(), now)
	default:
		// delivered requires a proof of delivery; pending and assigned are
		// not reachable through a plain status update.
		return errs.NewInvalidTransitionError(d.Status().String(), cmd.NewStatus().String())
	}
}

func (h *UpdateStatusCommandHandler) eventMessage(cmd UpdateStatusCommand) string {
	switch cmd.NewStatus() {
	case delivery.StatusPickedUp:
		return "package picked up"
	case delivery.StatusInTransit:
		return "package in transit"
	case delivery.StatusFailed, delivery.StatusCancelled:
		return cmd.Reason()
	default:
		return ""
	}
}
