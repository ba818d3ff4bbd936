// Package http exposes the service's REST surface on echo. Handlers translate
// JSON payloads into commands and queries and map the error taxonomy onto
// HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"pharmadelivery/internal/core/application/usecases/commands"
	"pharmadelivery/internal/core/application/usecases/queries"
	"pharmadelivery/internal/core/domain/model/delivery"
	"pharmadelivery/internal/core/domain/model/kernel"
	"pharmadelivery/internal/core/domain/model/partner"
	"pharmadelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createDeliveryHandler        commands.CreateDeliveryCommandHandler
	assignPartnerHandler         commands.AssignPartnerCommandHandler
	updateStatusHandler          commands.UpdateStatusCommandHandler
	submitProofHandler           commands.SubmitProofCommandHandler
	optimizeRouteHandler         commands.OptimizeRouteCommandHandler
	registerPartnerHandler       commands.RegisterPartnerCommandHandler
	updatePartnerLocationHandler commands.UpdatePartnerLocationCommandHandler
	setPartnerActiveHandler      commands.SetPartnerActiveCommandHandler

	getTrackingHandler            queries.GetTrackingQueryHandler
	listAvailablePartnersHandler  queries.ListAvailablePartnersQueryHandler
	listPartnerDeliveriesHandler  queries.ListPartnerDeliveriesQueryHandler
	listCustomerDeliveriesHandler queries.ListCustomerDeliveriesQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	assignPartnerHandler commands.AssignPartnerCommandHandler,
	updateStatusHandler commands.UpdateStatusCommandHandler,
	submitProofHandler commands.SubmitProofCommandHandler,
	optimizeRouteHandler commands.OptimizeRouteCommandHandler,
	registerPartnerHandler commands.RegisterPartnerCommandHandler,
	updatePartnerLocationHandler commands.UpdatePartnerLocationCommandHandler,
	setPartnerActiveHandler commands.SetPartnerActiveCommandHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
	listAvailablePartnersHandler queries.ListAvailablePartnersQueryHandler,
	listPartnerDeliveriesHandler queries.ListPartnerDeliveriesQueryHandler,
	listCustomerDeliveriesHandler queries.ListCustomerDeliveriesQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:         createDeliveryHandler,
		assignPartnerHandler:          assignPartnerHandler,
		updateStatusHandler:           updateStatusHandler,
		submitProofHandler:            submitProofHandler,
		optimizeRouteHandler:          optimizeRouteHandler,
		registerPartnerHandler:        registerPartnerHandler,
		updatePartnerLocationHandler:  updatePartnerLocationHandler,
		setPartnerActiveHandler:       setPartnerActiveHandler,
		getTrackingHandler:            getTrackingHandler,
		listAvailablePartnersHandler:  listAvailablePartnersHandler,
		listPartnerDeliveriesHandler:  listPartnerDeliveriesHandler,
		listCustomerDeliveriesHandler: listCustomerDeliveriesHandler,
	}
}

// RegisterRoutes mounts the API on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")

	v1.POST("/deliveries", s.CreateDelivery)
	v1.POST("/deliveries/:id/assign", s.AssignPartner)
	v1.POST("/deliveries/:id/status", s.UpdateStatus)
	v1.POST("/deliveries/:id/proof", s.SubmitProof)
	v1.GET("/deliveries/:id/tracking", s.GetTracking)

	v1.POST("/routes/optimize", s.OptimizeRoute)

	v1.POST("/partners", s.RegisterPartner)
	v1.POST("/partners/:id/location", s.UpdatePartnerLocation)
	v1.POST("/partners/:id/activate", s.ActivatePartner)
	v1.POST("/partners/:id/deactivate", s.DeactivatePartner)
	v1.GET("/partners/available", s.ListAvailablePartners)
	v1.GET("/partners/:id/deliveries", s.ListPartnerDeliveries)

	v1.GET("/customers/:id/deliveries", s.ListCustomerDeliveries)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req CreateDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order_id")
	}
	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer_id")
	}
	pharmacyID, err := kernel.UUIDFromString(req.PharmacyID)
	if err != nil {
		return badRequest(ctx, "invalid pharmacy_id")
	}

	pickup, err := req.Pickup.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}
	dropoff, err := req.Dropoff.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}

	pkg, err := delivery.NewPackageInfo(req.Package.WeightKg, req.Package.LengthCm,
		req.Package.WidthCm, req.Package.HeightCm, req.Package.DeclaredValue,
		req.Package.Fragile, req.Package.ColdChain)
	if err != nil {
		return writeError(ctx, err)
	}

	priority, err := delivery.PriorityFromString(req.Priority)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(deliveryID, orderID, customerID,
		pharmacyID, pickup, dropoff, pkg, req.PackageNotes, priority,
		req.ScheduledPickupAt, req.ScheduledDeliveryAt)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateDeliveryResponse{ID: deliveryID.String()})
}

// AssignPartner handles POST /api/v1/deliveries/:id/assign.
func (s *Server) AssignPartner(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	var req AssignPartnerRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	partnerID, err := kernel.UUIDFromString(req.PartnerID)
	if err != nil {
		return badRequest(ctx, "invalid partner_id")
	}

	cmd, err := commands.NewAssignPartnerCommand(deliveryID, partnerID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.assignPartnerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateStatus handles POST /api/v1/deliveries/:id/status.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	location, err := optionalPoint(req.Lat, req.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateStatusCommand(deliveryID, status, location, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitProof handles POST /api/v1/deliveries/:id/proof.
func (s *Server) SubmitProof(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	var req SubmitProofRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSubmitProofCommand(deliveryID, req.RecipientName,
		req.Notes, location, req.CompletedAt,
		req.Photo, req.PhotoContentType,
		req.Signature, req.SignatureContentType)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.submitProofHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTracking handles GET /api/v1/deliveries/:id/tracking.
func (s *Server) GetTracking(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	query, err := queries.NewGetTrackingQuery(deliveryID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackingResponse(result))
}

// OptimizeRoute handles POST /api/v1/routes/optimize.
func (s *Server) OptimizeRoute(ctx echo.Context) error {
	var req OptimizeRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	partnerID, err := kernel.UUIDFromString(req.PartnerID)
	if err != nil {
		return badRequest(ctx, "invalid partner_id")
	}

	deliveryIDs := make([]kernel.UUID, 0, len(req.DeliveryIDs))
	for _, raw := range req.DeliveryIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "invalid delivery id: "+raw)
		}
		deliveryIDs = append(deliveryIDs, id)
	}

	routeID := kernel.NewUUID()
	cmd, err := commands.NewOptimizeRouteCommand(routeID, partnerID, deliveryIDs)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.optimizeRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OptimizeRouteResponse{RouteID: routeID.String()})
}

// RegisterPartner handles POST /api/v1/partners.
func (s *Server) RegisterPartner(ctx echo.Context) error {
	var req RegisterPartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	kind, err := partner.KindFromString(req.Kind)
	if err != nil {
		return writeError(ctx, err)
	}

	weekdays := make([]time.Weekday, 0, len(req.WorkingHours.Weekdays))
	for _, d := range req.WorkingHours.Weekdays {
		weekdays = append(weekdays, time.Weekday(d))
	}

	hours, err := partner.NewWorkingHours(
		req.WorkingHours.StartHour, req.WorkingHours.StartMinute,
		req.WorkingHours.EndHour, req.WorkingHours.EndMinute, weekdays)
	if err != nil {
		return writeError(ctx, err)
	}

	partnerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterPartnerCommand(partnerID, req.Name, kind,
		req.Phone, req.Vehicle, hours)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.registerPartnerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterPartnerResponse{ID: partnerID.String()})
}

// UpdatePartnerLocation handles POST /api/v1/partners/:id/location.
func (s *Server) UpdatePartnerLocation(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid partner id")
	}

	var req UpdateLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	point, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	at := req.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	cmd, err := commands.NewUpdatePartnerLocationCommand(partnerID, point, at)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updatePartnerLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ActivatePartner handles POST /api/v1/partners/:id/activate.
func (s *Server) ActivatePartner(ctx echo.Context) error {
	return s.setPartnerActive(ctx, true)
}

// DeactivatePartner handles POST /api/v1/partners/:id/deactivate.
func (s *Server) DeactivatePartner(ctx echo.Context) error {
	return s.setPartnerActive(ctx, false)
}

func (s *Server) setPartnerActive(ctx echo.Context, active bool) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid partner id")
	}

	cmd, err := commands.NewSetPartnerActiveCommand(partnerID, active)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setPartnerActiveHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListAvailablePartners handles GET /api/v1/partners/available. The optional
// "at" query parameter (RFC 3339) defaults to now.
func (s *Server) ListAvailablePartners(ctx echo.Context) error {
	at := time.Now().UTC()
	if raw := ctx.QueryParam("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(ctx, "invalid at parameter, expected RFC 3339")
		}
		at = parsed
	}

	query, err := queries.NewListAvailablePartnersQuery(at)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listAvailablePartnersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAvailablePartnersResponse(result))
}

// ListPartnerDeliveries handles GET /api/v1/partners/:id/deliveries.
func (s *Server) ListPartnerDeliveries(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid partner id")
	}

	query, err := queries.NewListPartnerDeliveriesQuery(partnerID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listPartnerDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryListResponse(result))
}

// ListCustomerDeliveries handles GET /api/v1/customers/:id/deliveries.
func (s *Server) ListCustomerDeliveries(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}

	query, err := queries.NewListCustomerDeliveriesQuery(customerID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listCustomerDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryListResponse(result))
}

func optionalPoint(lat, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps the error taxonomy onto HTTP status codes. Validation errors
// are the caller's fault, conflicts preserve server state, transient provider
// failures are retryable upstream.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, delivery.ErrRouteAlreadyClaimed):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrPartnerNotEligible),
		errors.Is(err, errs.ErrIntegrityCheckFailed):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrTransientProvider):
		code = http.StatusBadGateway
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
