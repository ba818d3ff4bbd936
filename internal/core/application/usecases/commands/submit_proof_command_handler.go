package commands

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/proof"
	"pharmadelivery/internal/core/domain/model/tracking"
	"pharmadelivery/internal/core/ports"
)

// SubmitProofCommandHandler finalizes a delivery with a validated proof of
// delivery. This is the only path by which a delivery reaches delivered.
//
// The photo and signature blobs upload to the object store before the
// transaction opens, so no network call happens while the delivery row is
// locked. The proof record, the delivered transition, its tracking event, and
// the partner's completion counter then commit atomically.
type SubmitProofCommandHandler struct {
	uowFactory UoWFactory
	blobStore  ports.BlobStore
}

// NewSubmitProofCommandHandler creates a handler for proof submissions.
func NewSubmitProofCommandHandler(uowFactory UoWFactory,
	blobStore ports.BlobStore) SubmitProofCommandHandler {
	return SubmitProofCommandHandler{
		uowFactory: uowFactory,
		blobStore:  blobStore,
	}
}

// Handle processes the proof submission command.
func (h *SubmitProofCommandHandler) Handle(ctx context.Context, cmd SubmitProofCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	photoRef, signatureRef, err := h.storeBlobs(ctx, cmd)
	if err != nil {
		return err
	}

	pf, err := proof.NewProof(cmd.RecipientName(), signatureRef, photoRef,
		cmd.Notes(), cmd.Location(), cmd.CompletedAt())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	partnerRepo := uow.PartnerRepository()
	trackingRepo := uow.TrackingEventRepository()
	now := time.Now()

	d, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = d.MarkDelivered(pf, now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	if partnerID := d.Partner(); partnerID != nil {
		p, err := partnerRepo.Get(ctx, *partnerID)
		if err != nil {
			return err
		}
		p.RecordCompletedDelivery()
		if err = partnerRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	location := cmd.Location()
	event, err := tracking.NewEvent(kernel.NewUUID(), d.ID(), d.Status(),
		&location, "delivered to "+cmd.RecipientName(), d.Partner(), now)
	if err != nil {
		return err
	}

	if err = trackingRepo.Append(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *SubmitProofCommandHandler) storeBlobs(ctx context.Context,
	cmd SubmitProofCommand) (photoRef, signatureRef string, err error) {
	key := fmt.Sprintf("proofs/%s/photo", cmd.DeliveryID())
	photoRef, err = h.blobStore.Put(ctx, key, cmd.PhotoContentType(), bytes.NewReader(cmd.Photo()))
	if err != nil {
		return "", "", err
	}

	if cmd.HasSignature() {
		key = fmt.Sprintf("proofs/%s/signature", cmd.DeliveryID())
		signatureRef, err = h.blobStore.Put(ctx, key, cmd.SignatureContentType(),
			bytes.NewReader(cmd.Signature()))
		if err != nil {
			return "", "", err
		}
	}

	return photoRef, signatureRef, nil
}
