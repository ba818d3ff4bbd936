package commands

import (
	"context"
)

// UpdatePartnerLocationCommandHandler records partner location pings with
// last-write-wins semantics by client timestamp. A ping older than the
// partner's stored location is discarded without error: the command succeeds
// but writes nothing, so out-of-order pings cannot roll a partner's position
// backwards.
type UpdatePartnerLocationCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewUpdatePartnerLocationCommandHandler creates a handler for location pings.
func NewUpdatePartnerLocationCommandHandler(uowFactory PartnerUoWFactory) UpdatePartnerLocationCommandHandler {
	return UpdatePartnerLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location ping command.
func (h *UpdatePartnerLocationCommandHandler) Handle(ctx context.Context,
	cmd UpdatePartnerLocationCommand) error {
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

	partnerRepo := uow.PartnerRepository()

	p, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	applied, err := p.UpdateLocation(cmd.Point(), cmd.At())
	if err != nil {
		return err
	}
	if !applied {
		// Stale ping; nothing to persist.
		return uow.Commit(ctx)
	}

	if err = partnerRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
