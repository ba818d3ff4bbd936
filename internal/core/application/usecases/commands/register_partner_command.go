package commands

import (
	"errors"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

var ErrRegisterPartnerCommandIsNotConstructed = errors.New(
	"RegisterPartnerCommand must be created via NewRegisterPartnerCommand constructor",
)

// RegisterPartnerCommand represents a request to register a new courier
// partner with its contact details and working-hours window.
type RegisterPartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID    kernel.UUID
	name         string
	kind         partner.Kind
	phone        string
	vehicle      string
	workingHours partner.WorkingHours

	guard guard.ConstructorGuard
}

// NewRegisterPartnerCommand creates a command to register a new partner.
func NewRegisterPartnerCommand(partnerID kernel.UUID, name string, kind partner.Kind,
	phone, vehicle string, workingHours partner.WorkingHours) (RegisterPartnerCommand, error) {
	cmd := RegisterPartnerCommand{
		vehicle: vehicle,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setName(name),
		cmd.setKind(kind),
		cmd.setPhone(phone),
		cmd.setWorkingHours(workingHours),
	); err != nil {
		return RegisterPartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPartnerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartnerCommandIsNotConstructed)
}

func (c RegisterPartnerCommand) PartnerID() kernel.UUID             { return c.partnerID }
func (c RegisterPartnerCommand) Name() string                       { return c.name }
func (c RegisterPartnerCommand) Kind() partner.Kind                 { return c.kind }
func (c RegisterPartnerCommand) Phone() string                      { return c.phone }
func (c RegisterPartnerCommand) Vehicle() string                    { return c.vehicle }
func (c RegisterPartnerCommand) WorkingHours() partner.WorkingHours { return c.workingHours }

func (c *RegisterPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}

func (c *RegisterPartnerCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterPartnerCommand) setKind(kind partner.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *RegisterPartnerCommand) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *RegisterPartnerCommand) setWorkingHours(workingHours partner.WorkingHours) error {
	if err := workingHours.Validate(); err != nil {
		return err
	}
	c.workingHours = workingHours
	return nil
}
