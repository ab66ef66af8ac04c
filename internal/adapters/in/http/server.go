// Package http is the inbound REST adapter. It binds JSON requests to
// commands and queries, and translates the error taxonomy to status codes:
// invalid or missing input to 400, unknown objects to 404, business rule
// violations to 409, and an empty dispatch pool to 422.
package http

import (
	"errors"
	"net/http"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the delivery marketplace over HTTP. It coordinates between
// echo handlers and application use cases.
type Server struct {
	handlers Handlers
}

// Handlers bundles every command and query handler the server dispatches to.
type Handlers struct {
	CreateDelivery  commands.CreateDeliveryCommandHandler
	AssignCourier   commands.AssignCourierCommandHandler
	AutoAssign      commands.AutoAssignCourierCommandHandler
	AcceptDelivery  commands.AcceptDeliveryCommandHandler
	RejectDelivery  commands.RejectDeliveryCommandHandler
	ConfirmPickup   commands.ConfirmPickupCommandHandler
	ConfirmDelivery commands.ConfirmDeliveryCommandHandler
	CancelDelivery  commands.CancelDeliveryCommandHandler
	ReassignCourier commands.ReassignDeliveryCommandHandler

	GetPriceQuote         queries.GetPriceQuoteQueryHandler
	GetActiveDeliveries   queries.GetActiveDeliveriesQueryHandler
	GetAvailableCouriers  queries.GetAvailableCouriersQueryHandler
	GetDeliveryByTracking queries.GetDeliveryByTrackingQueryHandler
}

// NewServer creates a new HTTP server dispatching to the given handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes wires all endpoints into the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/quotes", s.GetQuote)

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries/active", s.GetActiveDeliveries)
	api.POST("/deliveries/:id/assign", s.AssignCourier)
	api.POST("/deliveries/:id/auto-assign", s.AutoAssignCourier)
	api.POST("/deliveries/:id/accept", s.AcceptDelivery)
	api.POST("/deliveries/:id/reject", s.RejectDelivery)
	api.POST("/deliveries/:id/pickup", s.ConfirmPickup)
	api.POST("/deliveries/:id/deliver", s.ConfirmDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)
	api.POST("/deliveries/:id/reassign", s.ReassignDelivery)

	api.GET("/couriers/available", s.GetAvailableCouriers)
	api.GET("/tracking/:code", s.GetDeliveryByTracking)
}

// GetQuote handles POST /api/v1/quotes - prices a prospective delivery.
func (s *Server) GetQuote(ctx echo.Context) error {
	var req struct {
		Origin      waypointRequest `json:"origin"`
		Destination waypointRequest `json:"destination"`
		Package     packageRequest  `json:"package"`
		Immediate   bool            `json:"immediate"`
		At          *time.Time      `json:"at,omitempty"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	origin, err := req.Origin.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	destination, err := req.Destination.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	pack, err := req.Package.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	at := time.Now()
	if req.At != nil {
		at = *req.At
	}

	query, err := queries.NewGetPriceQuoteQuery(origin, destination, pack, req.Immediate, at)
	if err != nil {
		return respondError(ctx, err)
	}

	quote, err := s.handlers.GetPriceQuote.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quote)
}

// CreateDelivery handles POST /api/v1/deliveries - registers a delivery
// from an accepted quote.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req struct {
		Origin      waypointRequest `json:"origin"`
		Destination waypointRequest `json:"destination"`
		Package     packageRequest  `json:"package"`
		Recipient   contactRequest  `json:"recipient"`
		Immediate   bool            `json:"immediate"`
		ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	origin, err := req.Origin.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	destination, err := req.Destination.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	pack, err := req.Package.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(
		deliveryID, origin, destination, pack, req.Recipient.toDomain(), req.Immediate, req.ScheduledAt)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CreateDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": deliveryID.String()})
}

// AssignCourier handles POST /api/v1/deliveries/:id/assign - manual assignment.
func (s *Server) AssignCourier(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req struct {
		CourierID string `json:"courier_id"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := parseUUID("courier_id", req.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(deliveryID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.AssignCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AutoAssignCourier handles POST /api/v1/deliveries/:id/auto-assign -
// dispatches the best ranked eligible courier.
func (s *Server) AutoAssignCourier(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAutoAssignCourierCommand(deliveryID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.AutoAssign.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptDelivery handles POST /api/v1/deliveries/:id/accept.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	return s.courierAction(ctx, func(deliveryID, courierID kernel.UUID) error {
		cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, courierID)
		if err != nil {
			return err
		}
		return s.handlers.AcceptDelivery.Handle(ctx.Request().Context(), cmd)
	})
}

// RejectDelivery handles POST /api/v1/deliveries/:id/reject - the delivery
// returns to the dispatch pool.
func (s *Server) RejectDelivery(ctx echo.Context) error {
	return s.courierAction(ctx, func(deliveryID, courierID kernel.UUID) error {
		cmd, err := commands.NewRejectDeliveryCommand(deliveryID, courierID)
		if err != nil {
			return err
		}
		return s.handlers.RejectDelivery.Handle(ctx.Request().Context(), cmd)
	})
}

// ConfirmPickup handles POST /api/v1/deliveries/:id/pickup.
func (s *Server) ConfirmPickup(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req struct {
		CourierID       string   `json:"courier_id"`
		Lat             *float64 `json:"lat,omitempty"`
		Lon             *float64 `json:"lon,omitempty"`
		BypassProximity bool     `json:"bypass_proximity"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := parseUUID("courier_id", req.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	var position *kernel.GeoPoint
	if (req.Lat == nil) != (req.Lon == nil) {
		return respondError(ctx, errs.NewValueIsInvalidError("lat and lon must be supplied together"))
	}
	if req.Lat != nil {
		coord, err := kernel.NewGeoPoint(*req.Lat, *req.Lon)
		if err != nil {
			return respondError(ctx, err)
		}
		position = &coord
	}

	cmd, err := commands.NewConfirmPickupCommand(deliveryID, courierID, position, req.BypassProximity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.ConfirmPickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles POST /api/v1/deliveries/:id/deliver - completes
// the handover against the recipient's confirmation code.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req struct {
		CourierID        string `json:"courier_id"`
		ConfirmationCode string `json:"confirmation_code"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := parseUUID("courier_id", req.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmDeliveryCommand(deliveryID, courierID, req.ConfirmationCode)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.ConfirmDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req struct {
		Actor  string `json:"actor"`
		Reason string `json:"reason"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, delivery.ActorRole(req.Actor), req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CancelDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReassignDelivery handles POST /api/v1/deliveries/:id/reassign - operator
// moves the delivery to a different courier.
func (s *Server) ReassignDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req struct {
		CourierID string `json:"courier_id"`
		Reason    string `json:"reason"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := parseUUID("courier_id", req.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReassignDeliveryCommand(deliveryID, courierID, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.ReassignCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	query := queries.NewGetActiveDeliveriesQuery()

	deliveries, err := s.handlers.GetActiveDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type activeDelivery struct {
		ID              string    `json:"id"`
		TrackingCode    string    `json:"tracking_code"`
		Status          string    `json:"status"`
		OriginDistrict  string    `json:"origin_district"`
		DestDistrict    string    `json:"dest_district"`
		CourierID       *string   `json:"courier_id,omitempty"`
		CalculatedPrice int64     `json:"calculated_price"`
		DistanceKm      float64   `json:"distance_km"`
		CreatedAt       time.Time `json:"created_at"`
	}

	response := make([]activeDelivery, len(deliveries))
	for i, d := range deliveries {
		item := activeDelivery{
			ID:              d.ID.String(),
			TrackingCode:    d.TrackingCode,
			Status:          d.Status,
			OriginDistrict:  d.OriginDistrict,
			DestDistrict:    d.DestDistrict,
			CalculatedPrice: d.CalculatedPrice,
			DistanceKm:      d.DistanceKm,
			CreatedAt:       d.CreatedAt,
		}
		if d.CourierID != nil {
			id := d.CourierID.String()
			item.CourierID = &id
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAvailableCouriers handles GET /api/v1/couriers/available.
func (s *Server) GetAvailableCouriers(ctx echo.Context) error {
	query := queries.NewGetAvailableCouriersQuery()

	couriers, err := s.handlers.GetAvailableCouriers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type availableCourier struct {
		ID                  string   `json:"id"`
		Name                string   `json:"name"`
		Vehicle             string   `json:"vehicle"`
		CapacityKg          float64  `json:"capacity_kg"`
		Lat                 *float64 `json:"lat,omitempty"`
		Lon                 *float64 `json:"lon,omitempty"`
		Rating              float64  `json:"rating"`
		CompletedDeliveries int      `json:"completed_deliveries"`
		ActiveDeliveries    int      `json:"active_deliveries"`
	}

	response := make([]availableCourier, len(couriers))
	for i, c := range couriers {
		response[i] = availableCourier{
			ID:                  c.ID.String(),
			Name:                c.Name,
			Vehicle:             c.Vehicle,
			CapacityKg:          c.CapacityKg,
			Lat:                 c.Lat,
			Lon:                 c.Lon,
			Rating:              c.Rating,
			CompletedDeliveries: c.CompletedDeliveries,
			ActiveDeliveries:    c.ActiveDeliveries,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryByTracking handles GET /api/v1/tracking/:code - the public
// tracking view.
func (s *Server) GetDeliveryByTracking(ctx echo.Context) error {
	query, err := queries.NewGetDeliveryByTrackingQuery(ctx.Param("code"))
	if err != nil {
		return respondError(ctx, err)
	}

	tracking, err := s.handlers.GetDeliveryByTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type trackingView struct {
		TrackingCode   string     `json:"tracking_code"`
		Status         string     `json:"status"`
		OriginDistrict string     `json:"origin_district"`
		DestDistrict   string     `json:"dest_district"`
		CreatedAt      time.Time  `json:"created_at"`
		AssignedAt     *time.Time `json:"assigned_at,omitempty"`
		PickedUpAt     *time.Time `json:"picked_up_at,omitempty"`
		DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
		CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	}

	return ctx.JSON(http.StatusOK, trackingView{
		TrackingCode:   tracking.TrackingCode,
		Status:         tracking.Status,
		OriginDistrict: tracking.OriginDistrict,
		DestDistrict:   tracking.DestDistrict,
		CreatedAt:      tracking.CreatedAt,
		AssignedAt:     tracking.AssignedAt,
		PickedUpAt:     tracking.PickedUpAt,
		DeliveredAt:    tracking.DeliveredAt,
		CancelledAt:    tracking.CancelledAt,
	})
}

// courierAction factors the shared shape of accept and reject: a delivery id
// in the path and a courier id in the body.
func (s *Server) courierAction(ctx echo.Context, action func(deliveryID, courierID kernel.UUID) error) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req struct {
		CourierID string `json:"courier_id"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := parseUUID("courier_id", req.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := action(deliveryID, courierID); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	return parseUUID(param, ctx.Param(param))
}

// parseUUID folds malformed identifiers into the error taxonomy so they
// surface as 400 rather than 500.
func parseUUID(name, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps the error taxonomy to HTTP status codes.
func respondError(ctx echo.Context, err error) error {
	var (
		notFound   *errs.ObjectNotFoundError
		invalid    *errs.ValueIsInvalidError
		required   *errs.ValueIsRequiredError
		outOfRange *errs.ValueIsOutOfRangeError
		business   *errs.BusinessRuleError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNoEligibleCourier):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUnknownZone):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &required), errors.As(err, &outOfRange):
		status = http.StatusBadRequest
	case errors.As(err, &business):
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: message})
}
