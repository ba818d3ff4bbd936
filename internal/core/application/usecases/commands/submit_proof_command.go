package commands

import (
	"errors"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

var ErrSubmitProofCommandIsNotConstructed = errors.New(
	"SubmitProofCommand must be created via NewSubmitProofCommand constructor",
)

// SubmitProofCommand represents a proof-of-delivery submission: the recipient
// details, the captured photo (required) and signature (optional) payloads,
// and the GPS location and instant of capture.
type SubmitProofCommand struct { //nolint:recvcheck //using for validation
	deliveryID    kernel.UUID
	recipientName string
	notes         string
	location      kernel.GeoPoint
	completedAt   time.Time

	photo                []byte
	photoContentType     string
	signature            []byte
	signatureContentType string

	guard guard.ConstructorGuard
}

// NewSubmitProofCommand creates a command to finalize a delivery with a proof
// of delivery. The photo payload is mandatory; the signature may be empty.
func NewSubmitProofCommand(deliveryID kernel.UUID, recipientName, notes string,
	location kernel.GeoPoint, completedAt time.Time,
	photo []byte, photoContentType string,
	signature []byte, signatureContentType string) (SubmitProofCommand, error) {
	cmd := SubmitProofCommand{
		notes:                notes,
		signature:            signature,
		signatureContentType: signatureContentType,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setRecipientName(recipientName),
		cmd.setLocation(location),
		cmd.setCompletedAt(completedAt),
		cmd.setPhoto(photo, photoContentType),
	); err != nil {
		return SubmitProofCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitProofCommand) Validate() error {
	return c.guard.Validate(ErrSubmitProofCommandIsNotConstructed)
}

func (c SubmitProofCommand) DeliveryID() kernel.UUID   { return c.deliveryID }
func (c SubmitProofCommand) RecipientName() string     { return c.recipientName }
func (c SubmitProofCommand) Notes() string             { return c.notes }
func (c SubmitProofCommand) Location() kernel.GeoPoint { return c.location }
func (c SubmitProofCommand) CompletedAt() time.Time    { return c.completedAt }
func (c SubmitProofCommand) Photo() []byte             { return c.photo }
func (c SubmitProofCommand) PhotoContentType() string  { return c.photoContentType }
func (c SubmitProofCommand) Signature() []byte         { return c.signature }
func (c SubmitProofCommand) SignatureContentType() string { return c.signatureContentType }

// HasSignature reports whether a signature payload was captured.
func (c SubmitProofCommand) HasSignature() bool {
	return len(c.signature) > 0
}

func (c *SubmitProofCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *SubmitProofCommand) setRecipientName(recipientName string) error {
	if recipientName == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}
	c.recipientName = recipientName
	return nil
}

func (c *SubmitProofCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *SubmitProofCommand) setCompletedAt(completedAt time.Time) error {
	if completedAt.IsZero() {
		return errs.NewValueIsRequiredError("completedAt")
	}
	c.completedAt = completedAt
	return nil
}

func (c *SubmitProofCommand) setPhoto(photo []byte, contentType string) error {
	if len(photo) == 0 {
		return errs.NewValueIsRequiredError("photo")
	}
	if contentType == "" {
		return errs.NewValueIsRequiredError("photoContentType")
	}
	c.photo = photo
	c.photoContentType = contentType
	return nil
}
