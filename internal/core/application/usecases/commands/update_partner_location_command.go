package commands

import (
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

var ErrUpdatePartnerLocationCommandIsNotConstructed = errors.New(
	"UpdatePartnerLocationCommand must be created via NewUpdatePartnerLocationCommand constructor",
)

// UpdatePartnerLocationCommand represents a location ping from a partner's
// mobile client. Pings carry the client's capture timestamp; stale pings are
// discarded rather than applied.
type UpdatePartnerLocationCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	point     kernel.GeoPoint
	at        time.Time

	guard guard.ConstructorGuard
}

// NewUpdatePartnerLocationCommand creates a command to record a partner
// location ping.
func NewUpdatePartnerLocationCommand(partnerID kernel.UUID, point kernel.GeoPoint,
	at time.Time) (UpdatePartnerLocationCommand, error) {
	cmd := UpdatePartnerLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setPoint(point),
		cmd.setAt(at),
	); err != nil {
		return UpdatePartnerLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePartnerLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePartnerLocationCommandIsNotConstructed)
}

func (c UpdatePartnerLocationCommand) PartnerID() kernel.UUID { return c.partnerID }
func (c UpdatePartnerLocationCommand) Point() kernel.GeoPoint { return c.point }
func (c UpdatePartnerLocationCommand) At() time.Time          { return c.at }

func (c *UpdatePartnerLocationCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}

func (c *UpdatePartnerLocationCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	c.point = point
	return nil
}

func (c *UpdatePartnerLocationCommand) setAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	c.at = at
	return nil
}
