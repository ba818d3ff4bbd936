package cmd

import (
	"pharmadelivery/internal/adapters/out/postgres"
	"pharmadelivery/internal/core/application/usecases/commands"
	"pharmadelivery/internal/core/application/usecases/queries"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/services"
	"pharmadelivery/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires handlers to their infrastructure dependencies.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	blobStore        ports.BlobStore
	dispatchProvider ports.DispatchProvider
	optimizer        services.RouteOptimizer
	dispatcher       services.PartnerDispatcher
}

// NewCompositionRoot builds the dependency graph. The blob store and dispatch
// provider are injected because their construction touches the network.
func NewCompositionRoot(_ Config, gormDB *gorm.DB,
	blobStore ports.BlobStore, dispatchProvider ports.DispatchProvider) (CompositionRoot, error) {
	optimizer, err := services.NewRouteOptimizer(kernel.DefaultSpeedProfile())
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:           gormDB,
		uowFactory:       *postgres.NewGormUnitOfWorkFactory(gormDB),
		blobStore:        blobStore,
		dispatchProvider: dispatchProvider,
		optimizer:        optimizer,
		dispatcher:       services.NewPartnerDispatcher(),
	}, nil
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPartnerCommandHandler(f, c.dispatchProvider)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateSubmitProofCommandHandler() commands.SubmitProofCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitProofCommandHandler(f, c.blobStore)
}

func (c *CompositionRoot) CreateOptimizeRouteCommandHandler() commands.OptimizeRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewOptimizeRouteCommandHandler(f, c.optimizer)
}

func (c *CompositionRoot) CreateDispatchPendingCommandHandler() commands.DispatchPendingCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchPendingCommandHandler(f, c.dispatcher, c.dispatchProvider)
}

func (c *CompositionRoot) CreateRegisterPartnerCommandHandler() commands.RegisterPartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterPartnerCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdatePartnerLocationCommandHandler() commands.UpdatePartnerLocationCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePartnerLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateSetPartnerActiveCommandHandler() commands.SetPartnerActiveCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetPartnerActiveCommandHandler(f)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAvailablePartnersQueryHandler() queries.ListAvailablePartnersQueryHandler {
	return queries.NewListAvailablePartnersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPartnerDeliveriesQueryHandler() queries.ListPartnerDeliveriesQueryHandler {
	return queries.NewListPartnerDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCustomerDeliveriesQueryHandler() queries.ListCustomerDeliveriesQueryHandler {
	return queries.NewListCustomerDeliveriesQueryHandler(c.gormDB)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
