package commands

import (
	"context"

	"pharmadelivery/internal/core/domain/model/partner"
)

// RegisterPartnerCommandHandler handles the business logic for partner
// registration. New partners start active.
type RegisterPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewRegisterPartnerCommandHandler creates a handler for partner registration.
func NewRegisterPartnerCommandHandler(uowFactory PartnerUoWFactory) RegisterPartnerCommandHandler {
	return RegisterPartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the partner registration command.
func (h *RegisterPartnerCommandHandler) Handle(ctx context.Context, cmd RegisterPartnerCommand) error {
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

	p, err := partner.NewPartner(cmd.PartnerID(), cmd.Name(), cmd.Kind(),
		cmd.Phone(), cmd.Vehicle(), cmd.WorkingHours())
	if err != nil {
		return err
	}

	if err = uow.PartnerRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
