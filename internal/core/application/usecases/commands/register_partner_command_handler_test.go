package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pharmadelivery/internal/core/application/usecases/commands"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"
	"pharmadelivery/internal/pkg/errs"
)

func TestRegisterPartnerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	partnerID := kernel.NewUUID()

	cmd, err := commands.NewRegisterPartnerCommand(partnerID, "Amina Courier",
		partner.KindInternal, "+237650000001", "motorbike", testWorkingHours(t))
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Add", ctx, mock.AnythingOfType("*partner.Partner")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterPartnerCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	added := partnerRepo.Calls[0].Arguments[1].(*partner.Partner)
	assert.True(t, added.ID().IsEqual(partnerID))
	assert.True(t, added.IsActive())
	assert.Nil(t, added.LastLocation())
	assert.Equal(t, 0, added.CompletedDeliveries())

	partnerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRegisterPartnerCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockPartnerUoWFactory)
	handler := commands.NewRegisterPartnerCommandHandler(factory)
	err := handler.Handle(ctx, commands.RegisterPartnerCommand{})

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRegisterPartnerCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestRegisterPartnerCommand_RequiresName(t *testing.T) {
	_, err := commands.NewRegisterPartnerCommand(kernel.NewUUID(), "  ",
		partner.KindInternal, "+237650000001", "motorbike", testWorkingHours(t))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
