package http

import (
	"time"

	"pharmadelivery/internal/core/application/usecases/queries"
	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
)

// ErrorResponse is the JSON error envelope returned by every handler.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressPayload carries an address in requests.
type AddressPayload struct {
	Street       string  `json:"street"`
	City         string  `json:"city"`
	Region       string  `json:"region"`
	Country      string  `json:"country"`
	Landmark     string  `json:"landmark,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}

func (a AddressPayload) toDomain() (delivery.Address, error) {
	point, err := kernel.NewGeoPoint(a.Lat, a.Lon)
	if err != nil {
		return delivery.Address{}, err
	}
	return delivery.NewAddress(a.Street, a.City, a.Region, a.Country,
		a.Landmark, a.Instructions, point)
}

// PackagePayload carries the package descriptor in requests.
type PackagePayload struct {
	WeightKg      float64 `json:"weight_kg"`
	LengthCm      float64 `json:"length_cm"`
	WidthCm       float64 `json:"width_cm"`
	HeightCm      float64 `json:"height_cm"`
	DeclaredValue float64 `json:"declared_value"`
	Fragile       bool    `json:"fragile"`
	ColdChain     bool    `json:"cold_chain"`
}

// CreateDeliveryRequest is the payload of POST /api/v1/deliveries.
type CreateDeliveryRequest struct {
	OrderID             string         `json:"order_id"`
	CustomerID          string         `json:"customer_id"`
	PharmacyID          string         `json:"pharmacy_id"`
	Pickup              AddressPayload `json:"pickup"`
	Dropoff             AddressPayload `json:"dropoff"`
	Package             PackagePayload `json:"package"`
	PackageNotes        string         `json:"package_notes,omitempty"`
	Priority            string         `json:"priority"`
	ScheduledPickupAt   *time.Time     `json:"scheduled_pickup_at,omitempty"`
	ScheduledDeliveryAt *time.Time     `json:"scheduled_delivery_at,omitempty"`
}

// CreateDeliveryResponse returns the id of the created delivery.
type CreateDeliveryResponse struct {
	ID string `json:"id"`
}

// AssignPartnerRequest is the payload of POST /api/v1/deliveries/:id/assign.
type AssignPartnerRequest struct {
	PartnerID string `json:"partner_id"`
}

// UpdateStatusRequest is the payload of POST /api/v1/deliveries/:id/status.
// Lat/Lon are optional; Reason is required for failed and cancelled.
type UpdateStatusRequest struct {
	Status string   `json:"status"`
	Lat    *float64 `json:"lat,omitempty"`
	Lon    *float64 `json:"lon,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// SubmitProofRequest is the payload of POST /api/v1/deliveries/:id/proof.
// Photo and Signature are base64-encoded in JSON.
type SubmitProofRequest struct {
	RecipientName        string    `json:"recipient_name"`
	Notes                string    `json:"notes,omitempty"`
	Lat                  float64   `json:"lat"`
	Lon                  float64   `json:"lon"`
	CompletedAt          time.Time `json:"completed_at"`
	Photo                []byte    `json:"photo"`
	PhotoContentType     string    `json:"photo_content_type"`
	Signature            []byte    `json:"signature,omitempty"`
	SignatureContentType string    `json:"signature_content_type,omitempty"`
}

// OptimizeRouteRequest is the payload of POST /api/v1/routes/optimize.
type OptimizeRouteRequest struct {
	PartnerID   string   `json:"partner_id"`
	DeliveryIDs []string `json:"delivery_ids"`
}

// OptimizeRouteResponse returns the id of the planned route.
type OptimizeRouteResponse struct {
	RouteID string `json:"route_id"`
}

// WorkingHoursPayload carries a partner's weekly availability window.
type WorkingHoursPayload struct {
	StartHour   int   `json:"start_hour"`
	StartMinute int   `json:"start_minute"`
	EndHour     int   `json:"end_hour"`
	EndMinute   int   `json:"end_minute"`
	Weekdays    []int `json:"weekdays"`
}

// RegisterPartnerRequest is the payload of POST /api/v1/partners.
type RegisterPartnerRequest struct {
	Name         string              `json:"name"`
	Kind         string              `json:"kind"`
	Phone        string              `json:"phone"`
	Vehicle      string              `json:"vehicle,omitempty"`
	WorkingHours WorkingHoursPayload `json:"working_hours"`
}

// RegisterPartnerResponse returns the id of the registered partner.
type RegisterPartnerResponse struct {
	ID string `json:"id"`
}

// UpdateLocationRequest is the payload of POST /api/v1/partners/:id/location.
// A zero At is stamped with the server clock.
type UpdateLocationRequest struct {
	Lat float64   `json:"lat"`
	Lon float64   `json:"lon"`
	At  time.Time `json:"at,omitempty"`
}

// PointPayload is a coordinate pair in responses.
type PointPayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TrackingEventPayload is one tracking log entry in responses.
type TrackingEventPayload struct {
	ID         string        `json:"id"`
	Status     string        `json:"status"`
	Message    string        `json:"message,omitempty"`
	Location   *PointPayload `json:"location,omitempty"`
	PartnerID  string        `json:"partner_id,omitempty"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// TrackingResponse is the body of GET /api/v1/deliveries/:id/tracking.
type TrackingResponse struct {
	DeliveryID     string                 `json:"delivery_id"`
	Status         string                 `json:"status"`
	TrackingNumber string                 `json:"tracking_number"`
	Events         []TrackingEventPayload `json:"events"`
}

func toTrackingResponse(result queries.GetTrackingQueryResponse) TrackingResponse {
	events := make([]TrackingEventPayload, 0, len(result.Events))
	for _, e := range result.Events {
		event := TrackingEventPayload{
			ID:         e.ID.String(),
			Status:     e.Status,
			Message:    e.Message,
			RecordedAt: e.RecordedAt,
		}
		if e.Location != nil {
			event.Location = &PointPayload{Lat: e.Location.Lat(), Lon: e.Location.Lon()}
		}
		if e.PartnerID != nil {
			event.PartnerID = e.PartnerID.String()
		}
		events = append(events, event)
	}

	return TrackingResponse{
		DeliveryID:     result.DeliveryID.String(),
		Status:         result.Status,
		TrackingNumber: result.TrackingNumber,
		Events:         events,
	}
}

// AvailablePartnerPayload is one partner in the availability listing.
type AvailablePartnerPayload struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Kind                string        `json:"kind"`
	Vehicle             string        `json:"vehicle,omitempty"`
	Rating              float64       `json:"rating"`
	CompletedDeliveries int           `json:"completed_deliveries"`
	LastLocation        *PointPayload `json:"last_location,omitempty"`
}

func toAvailablePartnersResponse(result []queries.ListAvailablePartnersQueryResponse) []AvailablePartnerPayload {
	partners := make([]AvailablePartnerPayload, 0, len(result))
	for _, p := range result {
		item := AvailablePartnerPayload{
			ID:                  p.ID.String(),
			Name:                p.Name,
			Kind:                p.Kind,
			Vehicle:             p.Vehicle,
			Rating:              p.Rating,
			CompletedDeliveries: p.CompletedDeliveries,
		}
		if p.LastLocation != nil {
			item.LastLocation = &PointPayload{Lat: p.LastLocation.Lat(), Lon: p.LastLocation.Lon()}
		}
		partners = append(partners, item)
	}
	return partners
}

// DeliveryListItemPayload is one delivery in the list views.
type DeliveryListItemPayload struct {
	ID             string    `json:"id"`
	TrackingNumber string    `json:"tracking_number"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	DropoffStreet  string    `json:"dropoff_street"`
	DropoffCity    string    `json:"dropoff_city"`
	FeeTotal       float64   `json:"fee_total"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDeliveryListResponse(result []queries.DeliveryListItemResponse) []DeliveryListItemPayload {
	deliveries := make([]DeliveryListItemPayload, 0, len(result))
	for _, d := range result {
		deliveries = append(deliveries, DeliveryListItemPayload{
			ID:             d.ID.String(),
			TrackingNumber: d.TrackingNumber,
			Status:         d.Status,
			Priority:       d.Priority,
			DropoffStreet:  d.DropoffStreet,
			DropoffCity:    d.DropoffCity,
			FeeTotal:       d.FeeTotal,
			CreatedAt:      d.CreatedAt,
		})
	}
	return deliveries
}
