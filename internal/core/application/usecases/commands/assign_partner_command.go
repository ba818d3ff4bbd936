package commands

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand represents a request to assign a specific partner to a
// pending delivery.
type AssignPartnerCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	partnerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignPartnerCommand creates a command to assign a partner to a delivery.
func NewAssignPartnerCommand(deliveryID, partnerID kernel.UUID) (AssignPartnerCommand, error) {
	cmd := AssignPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setPartnerID(partnerID),
	); err != nil {
		return AssignPartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}

func (c AssignPartnerCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c AssignPartnerCommand) PartnerID() kernel.UUID  { return c.partnerID }

func (c *AssignPartnerCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *AssignPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}
