package commands

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/guard"
)

var ErrSetPartnerActiveCommandIsNotConstructed = errors.New(
	"SetPartnerActiveCommand must be created via NewSetPartnerActiveCommand constructor",
)

// SetPartnerActiveCommand represents a request to activate or deactivate a
// partner. Partners are never deleted; deactivation is the retirement path.
type SetPartnerActiveCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	active    bool

	guard guard.ConstructorGuard
}

// NewSetPartnerActiveCommand creates a command to toggle a partner's active flag.
func NewSetPartnerActiveCommand(partnerID kernel.UUID, active bool) (SetPartnerActiveCommand, error) {
	cmd := SetPartnerActiveCommand{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setPartnerID(partnerID); err != nil {
		return SetPartnerActiveCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetPartnerActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetPartnerActiveCommandIsNotConstructed)
}

func (c SetPartnerActiveCommand) PartnerID() kernel.UUID { return c.partnerID }
func (c SetPartnerActiveCommand) Active() bool           { return c.active }

func (c *SetPartnerActiveCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}
