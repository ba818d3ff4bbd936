package commands

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand represents a request to move a delivery to a new status.
// Location is optional and recorded as the delivery's current position.
// Reason is required for the failed and cancelled targets and ignored
// otherwise.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	newStatus  delivery.Status
	location   *kernel.GeoPoint
	reason     string

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand creates a command to update a delivery's status.
func NewUpdateStatusCommand(deliveryID kernel.UUID, newStatus delivery.Status,
	location *kernel.GeoPoint, reason string) (UpdateStatusCommand, error) {
	cmd := UpdateStatusCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setNewStatus(newStatus),
		cmd.setLocation(location),
	); err != nil {
		return UpdateStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

func (c UpdateStatusCommand) DeliveryID() kernel.UUID    { return c.deliveryID }
func (c UpdateStatusCommand) NewStatus() delivery.Status { return c.newStatus }
func (c UpdateStatusCommand) Location() *kernel.GeoPoint { return c.location }
func (c UpdateStatusCommand) Reason() string             { return c.reason }

func (c *UpdateStatusCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *UpdateStatusCommand) setNewStatus(newStatus delivery.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}

func (c *UpdateStatusCommand) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	point := *location
	c.location = &point
	return nil
}
