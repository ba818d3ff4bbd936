package commands

import (
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to create a new delivery.
// Encapsulates the order/customer/pharmacy references, addresses, package
// descriptor, and priority for the new delivery.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	pharmacyID kernel.UUID

	pickupAddress  delivery.Address
	dropoffAddress delivery.Address
	packageInfo    delivery.PackageInfo
	packageNotes   string
	priority       delivery.Priority

	scheduledPickup   *time.Time
	scheduledDelivery *time.Time

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// All referenced ids must be valid; addresses, package descriptor, and
// priority are validated by their own constructors before reaching here and
// re-checked for construction.
func NewCreateDeliveryCommand(deliveryID, orderID, customerID, pharmacyID kernel.UUID,
	pickupAddress, dropoffAddress delivery.Address, packageInfo delivery.PackageInfo,
	packageNotes string, priority delivery.Priority,
	scheduledPickup, scheduledDelivery *time.Time) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		packageNotes:      packageNotes,
		scheduledPickup:   scheduledPickup,
		scheduledDelivery: scheduledDelivery,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUUID(&cmd.deliveryID, deliveryID),
		cmd.setUUID(&cmd.orderID, orderID),
		cmd.setUUID(&cmd.customerID, customerID),
		cmd.setUUID(&cmd.pharmacyID, pharmacyID),
		cmd.setAddress(&cmd.pickupAddress, pickupAddress),
		cmd.setAddress(&cmd.dropoffAddress, dropoffAddress),
		cmd.setPackageInfo(packageInfo),
		cmd.setPriority(priority),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c CreateDeliveryCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateDeliveryCommand) CustomerID() kernel.UUID { return c.customerID }
func (c CreateDeliveryCommand) PharmacyID() kernel.UUID { return c.pharmacyID }

func (c CreateDeliveryCommand) PickupAddress() delivery.Address   { return c.pickupAddress }
func (c CreateDeliveryCommand) DropoffAddress() delivery.Address  { return c.dropoffAddress }
func (c CreateDeliveryCommand) PackageInfo() delivery.PackageInfo { return c.packageInfo }
func (c CreateDeliveryCommand) PackageNotes() string              { return c.packageNotes }
func (c CreateDeliveryCommand) Priority() delivery.Priority       { return c.priority }
func (c CreateDeliveryCommand) ScheduledPickup() *time.Time       { return c.scheduledPickup }
func (c CreateDeliveryCommand) ScheduledDelivery() *time.Time     { return c.scheduledDelivery }

func (c *CreateDeliveryCommand) setUUID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}

func (c *CreateDeliveryCommand) setAddress(dst *delivery.Address, a delivery.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}
	*dst = a
	return nil
}

func (c *CreateDeliveryCommand) setPackageInfo(p delivery.PackageInfo) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.packageInfo = p
	return nil
}

func (c *CreateDeliveryCommand) setPriority(p delivery.Priority) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.priority = p
	return nil
}
