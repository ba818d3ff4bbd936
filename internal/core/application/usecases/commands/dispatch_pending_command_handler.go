package commands

import (
	"context"
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"
	"pharmadelivery/internal/core/domain/model/tracking"
	"pharmadelivery/internal/core/domain/services"
	"pharmadelivery/internal/core/ports"
	"pharmadelivery/internal/pkg/errs"
)

// DispatchPendingCommandHandler sweeps the pending backlog and assigns each
// delivery to the nearest eligible partner. Deliveries for which no partner
// qualifies stay pending for the next sweep.
//
// Third-party assignments are reported to the external courier service after
// the commit; notification failures do not undo the assignments.
type DispatchPendingCommandHandler struct {
	uowFactory       UoWFactory
	dispatcher       services.PartnerDispatcher
	dispatchProvider ports.DispatchProvider
}

// NewDispatchPendingCommandHandler creates a handler for backlog dispatch.
func NewDispatchPendingCommandHandler(uowFactory UoWFactory,
	dispatcher services.PartnerDispatcher,
	dispatchProvider ports.DispatchProvider) DispatchPendingCommandHandler {
	return DispatchPendingCommandHandler{
		uowFactory:       uowFactory,
		dispatcher:       dispatcher,
		dispatchProvider: dispatchProvider,
	}
}

type pendingAssignment struct {
	d *delivery.Delivery
	p *partner.Partner
}

// Handle processes the backlog dispatch command.
func (h *DispatchPendingCommandHandler) Handle(ctx context.Context, cmd DispatchPendingCommand) error {
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

	pending, err := deliveryRepo.GetAllInPendingStatus(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return uow.Commit(ctx)
	}

	partners, err := partnerRepo.GetAllAvailableAt(ctx, now)
	if err != nil {
		return err
	}

	assigned := make([]pendingAssignment, 0, len(pending))
	for _, candidate := range pending {
		// The backlog scan runs unlocked. Re-read each candidate under a row
		// lock so a concurrent assignment serializes with this sweep, and skip
		// deliveries claimed in between.
		d, err := deliveryRepo.GetForUpdate(ctx, candidate.ID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if d.Status() != delivery.StatusPending {
			continue
		}

		p, err := h.dispatcher.Dispatch(d, partners, now)
		if errors.Is(err, services.ErrPartnerNotFound) {
			continue
		}
		if err != nil {
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

		assigned = append(assigned, pendingAssignment{d: d, p: p})
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.notifyThirdParties(ctx, assigned)
}

func (h *DispatchPendingCommandHandler) notifyThirdParties(ctx context.Context,
	assigned []pendingAssignment) error {
	if h.dispatchProvider == nil {
		return nil
	}

	var notifyErr error
	for _, a := range assigned {
		if a.p.Kind() != partner.KindThirdParty {
			continue
		}
		if err := h.dispatchProvider.NotifyAssignment(ctx, a.d, a.p); err != nil {
			notifyErr = errors.Join(notifyErr, err)
		}
	}
	return notifyErr
}
