package commands

import (
	"context"
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/tracking"
	"pharmadelivery/internal/core/ports"
)

// CreateDeliveryCommandHandler handles the business logic for delivery
// creation. Generates a unique tracking number and creates the delivery
// together with its first tracking event in one transaction, so the delivery
// and its audit trail are born atomically.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery creation command.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
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

	trackingNumber, err := h.uniqueTrackingNumber(ctx, deliveryRepo, now)
	if err != nil {
		return err
	}

	d, err := delivery.NewDelivery(
		cmd.DeliveryID(), cmd.OrderID(), cmd.CustomerID(), cmd.PharmacyID(),
		cmd.PickupAddress(), cmd.DropoffAddress(), cmd.PackageInfo(), cmd.PackageNotes(),
		cmd.Priority(), trackingNumber, now)
	if err != nil {
		return err
	}

	if cmd.ScheduledPickup() != nil || cmd.ScheduledDelivery() != nil {
		if err = d.Schedule(cmd.ScheduledPickup(), cmd.ScheduledDelivery(), now); err != nil {
			return err
		}
	}

	if err = deliveryRepo.Add(ctx, d); err != nil {
		return err
	}

	event, err := tracking.NewEvent(kernel.NewUUID(), d.ID(), d.Status(),
		nil, "delivery created", nil, now)
	if err != nil {
		return err
	}

	if err = trackingRepo.Append(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// uniqueTrackingNumber draws tracking numbers until one is free in the
// registry. The repository check runs inside the creation transaction, so
// uniqueness holds at commit time.
func (h *CreateDeliveryCommandHandler) uniqueTrackingNumber(ctx context.Context,
	repo ports.DeliveryRepository, now time.Time) (string, error) {
	var checkErr error
	trackingNumber, err := delivery.UniqueTrackingNumber(now, func(candidate string) bool {
		taken, err := repo.TrackingNumberExists(ctx, candidate)
		if err != nil {
			checkErr = err
			return true
		}
		return taken
	})
	if checkErr != nil {
		return "", checkErr
	}
	return trackingNumber, err
}
