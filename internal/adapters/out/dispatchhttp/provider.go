// Package dispatchhttp notifies third-party fleet providers over HTTP when a
// delivery is assigned to one of their partners.
package dispatchhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/partner"
	"pharmadelivery/internal/pkg/errs"
)

const (
	maxAttempts    = 4
	initialBackoff = 200 * time.Millisecond
	requestTimeout = 10 * time.Second
)

// HTTPDispatchProvider implements ports.DispatchProvider against a provider's
// REST endpoint. Transient failures (network errors, 429, 5xx) are retried
// with exponential backoff; exhaustion surfaces as a TransientProviderError.
type HTTPDispatchProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPDispatchProvider creates a provider client for the given endpoint.
func NewHTTPDispatchProvider(baseURL, apiKey string) (*HTTPDispatchProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &HTTPDispatchProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
	}, nil
}

type assignmentPayload struct {
	DeliveryID     string  `json:"delivery_id"`
	TrackingNumber string  `json:"tracking_number"`
	PartnerID      string  `json:"partner_id"`
	PartnerPhone   string  `json:"partner_phone"`
	PickupLat      float64 `json:"pickup_lat"`
	PickupLon      float64 `json:"pickup_lon"`
	DropoffLat     float64 `json:"dropoff_lat"`
	DropoffLon     float64 `json:"dropoff_lon"`
	Priority       string  `json:"priority"`
}

// NotifyAssignment posts the assignment to the provider.
func (p *HTTPDispatchProvider) NotifyAssignment(ctx context.Context, d *delivery.Delivery, prt *partner.Partner) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := prt.Validate(); err != nil {
		return err
	}

	payload := assignmentPayload{
		DeliveryID:     d.ID().String(),
		TrackingNumber: d.TrackingNumber(),
		PartnerID:      prt.ID().String(),
		PartnerPhone:   prt.Phone(),
		PickupLat:      d.PickupAddress().Point().Lat(),
		PickupLon:      d.PickupAddress().Point().Lon(),
		DropoffLat:     d.DropoffAddress().Point().Lat(),
		DropoffLon:     d.DropoffAddress().Point().Lon(),
		Priority:       d.Priority().String(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal assignment payload: %w", err)
	}

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, p.baseURL+"/assignments", bytes.NewReader(body))
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return nil
}

func (p *HTTPDispatchProvider) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.Code, e.Body)
}

func (p *HTTPDispatchProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures using exponential backoff while
// respecting context cancellation. Non-retryable responses (4xx other than
// 429) fail immediately.
func (p *HTTPDispatchProvider) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := initialBackoff

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := p.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, lastErr
		}
		if attempt == maxAttempts {
			return nil, errs.NewTransientProviderError("notify assignment", attempt, lastErr)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func isRetryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
