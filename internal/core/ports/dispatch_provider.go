package ports

import (
	"context"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/partner"
)

// DispatchProvider notifies an external third-party courier service that a
// delivery has been assigned to one of its partners. Implementations are
// network-bound: they must bound the call with a timeout, retry with backoff,
// and surface exhaustion as a TransientProviderError so callers can decide
// whether to retry later. Internal partners never go through this port.
type DispatchProvider interface {
	// NotifyAssignment tells the provider that the partner should pick up
	// the delivery.
	NotifyAssignment(ctx context.Context, d *delivery.Delivery, p *partner.Partner) error
}
