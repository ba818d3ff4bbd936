// Package proof implements the tamper-evident proof-of-delivery record.
//
// A Proof captures who received the package, where, and when, together with
// opaque references to the signature and photo blobs held by the secure blob
// store. An integrity checksum is computed over the identifying fields at
// creation time; Verify recomputes it and compares in constant time, so a
// stored proof whose photo reference or recipient was altered after the fact
// is detectable.
package proof

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

// Domain errors for proof operations.
var (
	// ErrRecipientNameIsRequired is returned when the recipient name is missing.
	ErrRecipientNameIsRequired = errs.NewValueIsRequiredError("recipientName")
	// ErrPhotoRefIsRequired is returned when the delivery-photo blob reference is missing.
	ErrPhotoRefIsRequired = errs.NewValueIsRequiredError("photoRef")
	// ErrCompletedAtIsRequired is returned when the completion timestamp is missing.
	ErrCompletedAtIsRequired = errs.NewValueIsRequiredError("completedAt")
	// ErrProofIsNotConstructed is returned when using an improperly initialized Proof.
	ErrProofIsNotConstructed = errs.NewValueIsRequiredError(
		"proof must be created via NewProof or RestoreProof constructors")
)

// Proof is the immutable proof-of-delivery value object. It is created
// exactly once per delivery, at the moment the delivery transitions to its
// delivered state, and never mutated afterwards.
type Proof struct { //nolint:recvcheck //using for validation
	recipientName string
	// signatureRef is an opaque secure-blob reference; empty when the
	// recipient did not sign
	signatureRef string
	// photoRef is an opaque secure-blob reference to the delivery photo
	photoRef    string
	notes       string
	location    kernel.GeoPoint
	completedAt time.Time
	// checksum is hex-encoded SHA-256 over the identifying fields
	checksum string
	guard    guard.ConstructorGuard
}

// NewProof creates a proof-of-delivery record and computes its integrity
// checksum over {recipientName, photoRef, gpsLocation, completedAt}.
//
// The signature reference and notes are optional; recipient name, photo
// reference, capture location, and completion timestamp are mandatory.
func NewProof(
	recipientName string,
	signatureRef string,
	photoRef string,
	notes string,
	location kernel.GeoPoint,
	completedAt time.Time,
) (Proof, error) {
	p := Proof{
		signatureRef: signatureRef,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}

	if recipientName == "" {
		return Proof{}, ErrRecipientNameIsRequired
	}
	if photoRef == "" {
		return Proof{}, ErrPhotoRefIsRequired
	}
	if err := location.Validate(); err != nil {
		return Proof{}, err
	}
	if completedAt.IsZero() {
		return Proof{}, ErrCompletedAtIsRequired
	}

	p.recipientName = recipientName
	p.photoRef = photoRef
	p.location = location
	p.completedAt = completedAt.UTC()
	p.checksum = computeChecksum(p.recipientName, p.photoRef, p.location, p.completedAt)

	return p, nil
}

// RestoreProof reconstructs a proof from persistent storage with its stored
// checksum. The checksum is deliberately not recomputed here: restoring must
// preserve whatever was stored so that Verify can detect tampering.
func RestoreProof(
	recipientName string,
	signatureRef string,
	photoRef string,
	notes string,
	location kernel.GeoPoint,
	completedAt time.Time,
	checksum string,
) (Proof, error) {
	if recipientName == "" {
		return Proof{}, ErrRecipientNameIsRequired
	}
	if photoRef == "" {
		return Proof{}, ErrPhotoRefIsRequired
	}
	if err := location.Validate(); err != nil {
		return Proof{}, err
	}
	if completedAt.IsZero() {
		return Proof{}, ErrCompletedAtIsRequired
	}
	if checksum == "" {
		return Proof{}, errs.NewValueIsRequiredError("checksum")
	}

	return Proof{
		recipientName: recipientName,
		signatureRef:  signatureRef,
		photoRef:      photoRef,
		notes:         notes,
		location:      location,
		completedAt:   completedAt.UTC(),
		checksum:      checksum,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the proof was created through a constructor.
func (p Proof) Validate() error {
	return p.guard.Validate(ErrProofIsNotConstructed)
}

// RecipientName returns the name of the person who received the package.
func (p Proof) RecipientName() string {
	return p.recipientName
}

// SignatureRef returns the secure-blob reference of the recipient signature,
// or the empty string when no signature was captured.
func (p Proof) SignatureRef() string {
	return p.signatureRef
}

// PhotoRef returns the secure-blob reference of the delivery photo.
func (p Proof) PhotoRef() string {
	return p.photoRef
}

// Notes returns the courier's free-text completion notes.
func (p Proof) Notes() string {
	return p.notes
}

// Location returns the GPS position captured at completion.
func (p Proof) Location() kernel.GeoPoint {
	return p.location
}

// CompletedAt returns the completion timestamp in UTC.
func (p Proof) CompletedAt() time.Time {
	return p.completedAt
}

// Checksum returns the hex-encoded integrity checksum.
func (p Proof) Checksum() string {
	return p.checksum
}

// Verify recomputes the integrity checksum from the proof's current fields
// and compares it with the stored one in constant time, resisting timing
// side-channels. It returns false for proofs whose identifying fields no
// longer match what was recorded at creation.
func (p Proof) Verify() (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}

	expected := computeChecksum(p.recipientName, p.photoRef, p.location, p.completedAt)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(p.checksum)) == 1, nil
}

// computeChecksum derives the SHA-256 checksum over the identifying fields.
// Coordinates are fixed to six decimals and the timestamp to UTC unix
// nanoseconds so the digest is stable across serialization round trips.
func computeChecksum(recipientName, photoRef string, location kernel.GeoPoint, completedAt time.Time) string {
	payload := fmt.Sprintf("%s|%s|%.6f|%.6f|%d",
		recipientName, photoRef, location.Lat(), location.Lon(), completedAt.UTC().UnixNano())
	digest := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(digest[:])
}
