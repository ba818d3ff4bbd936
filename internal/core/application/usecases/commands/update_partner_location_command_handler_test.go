package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pharmadelivery/internal/core/application/usecases/commands"
	"pharmadelivery/internal/core/domain/model/partner"
)

func TestUpdatePartnerLocationCommandHandler_Handle_AppliesNewerPing(t *testing.T) {
	ctx := t.Context()
	p := testPartner(t, partner.KindInternal)
	point := mustGeoPoint(t, 3.870, 11.530)
	at := time.Now().Add(-time.Minute)

	cmd, err := commands.NewUpdatePartnerLocationCommand(p.ID(), point, at)
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		partnerRepo.On("Update", ctx, p).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdatePartnerLocationCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, p.LastLocation())
	equal, err := p.LastLocation().Point.IsEqual(point)
	require.NoError(t, err)
	assert.True(t, equal)

	partnerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdatePartnerLocationCommandHandler_Handle_DiscardsStalePing(t *testing.T) {
	ctx := t.Context()
	p := testPartner(t, partner.KindInternal)

	current := mustGeoPoint(t, 3.870, 11.530)
	currentAt := time.Now().Add(-time.Minute)
	applied, err := p.UpdateLocation(current, currentAt)
	require.NoError(t, err)
	require.True(t, applied)

	// The ping carries an older client timestamp than the stored location.
	stale := mustGeoPoint(t, 3.800, 11.400)
	cmd, err := commands.NewUpdatePartnerLocationCommand(p.ID(), stale, currentAt.Add(-10*time.Minute))
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PartnerRepository").Return(partnerRepo).Once(),
		partnerRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdatePartnerLocationCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	// Stale pings succeed without writing anything.
	require.NoError(t, err)
	partnerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	equal, err := p.LastLocation().Point.IsEqual(current)
	require.NoError(t, err)
	assert.True(t, equal)
	uow.AssertExpectations(t)
}

func TestSetPartnerActiveCommandHandler_Handle_Toggles(t *testing.T) {
	tests := []struct {
		name   string
		active bool
	}{
		{name: "deactivate", active: false},
		{name: "reactivate", active: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			p := testPartner(t, partner.KindInternal)
			if tt.active {
				p.Deactivate()
			}

			cmd, err := commands.NewSetPartnerActiveCommand(p.ID(), tt.active)
			require.NoError(t, err)

			partnerRepo := new(MockPartnerRepository)
			uow := new(MockUoW)

			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("PartnerRepository").Return(partnerRepo).Once(),
				partnerRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
				partnerRepo.On("Update", ctx, p).Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockPartnerUoWFactory)
			factory.On("Create").Return(uow).Once()

			handler := commands.NewSetPartnerActiveCommandHandler(factory)
			err = handler.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tt.active, p.IsActive())
			partnerRepo.AssertExpectations(t)
			uow.AssertExpectations(t)
		})
	}
}
