package commands

import (
	"context"
)

// SetPartnerActiveCommandHandler toggles a partner's active flag.
type SetPartnerActiveCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewSetPartnerActiveCommandHandler creates a handler for activation toggles.
func NewSetPartnerActiveCommandHandler(uowFactory PartnerUoWFactory) SetPartnerActiveCommandHandler {
	return SetPartnerActiveCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the activation toggle command.
func (h *SetPartnerActiveCommandHandler) Handle(ctx context.Context, cmd SetPartnerActiveCommand) error {
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

	if cmd.Active() {
		p.Activate()
	} else {
		p.Deactivate()
	}

	if err = partnerRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
