package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"cab/internal/domain"
	"cab/internal/repository"
	"cab/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
	bookingRepo    repository.BookingRepository
	clientRepo     repository.ClientRepository
	planner        service.RoutePlanner
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(
	bookingService *service.BookingService,
	bookingRepo repository.BookingRepository,
	clientRepo repository.ClientRepository,
	planner service.RoutePlanner,
) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		bookingRepo:    bookingRepo,
		clientRepo:     clientRepo,
		planner:        planner,
	}
}

// LocationPayload is the wire shape of a location.
type LocationPayload struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// RoutePayload is the wire shape of a route. DistanceMiles overrides
// the planned distance when present.
type RoutePayload struct {
	From          *LocationPayload `json:"from"`
	To            *LocationPayload `json:"to"`
	DistanceMiles *float64         `json:"distance_miles"`
}

// BookingRequest is the HTTP request body for booking operations.
type BookingRequest struct {
	ClientID int64         `json:"client_id"`
	Route    *RoutePayload `json:"route"`
}

// BookingResponse is the HTTP response for booking data.
type BookingResponse struct {
	ID                    string  `json:"id"`
	ClientID              int64   `json:"client_id"`
	From                  string  `json:"from"`
	To                    string  `json:"to"`
	DistanceMiles         float64 `json:"distance_miles"`
	ComputedDistanceMiles float64 `json:"computed_distance_miles"`
	Status                string  `json:"status"`
}

func bookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                    booking.ID,
		ClientID:              booking.ClientID,
		From:                  booking.Route.From.Name,
		To:                    booking.Route.To.Name,
		DistanceMiles:         booking.Route.DistanceMiles,
		ComputedDistanceMiles: booking.ComputedDistanceMiles,
		Status:                string(booking.Status),
	}
}

// BookCab handles POST /v1/bookings
func (h *BookingHandler) BookCab(c *gin.Context) {
	client, route, ok := h.bindBookingRequest(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.BookCab(c.Request.Context(), client, route)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, bookingResponse(booking))
}

// FinishBookingCab handles POST /v1/bookings/finish
func (h *BookingHandler) FinishBookingCab(c *gin.Context) {
	client, route, ok := h.bindBookingRequest(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.FinishBookingCab(c.Request.Context(), client, route)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, bookingResponse(booking))
}

// Validate handles POST /v1/bookings/validate
func (h *BookingHandler) Validate(c *gin.Context) {
	client, route, ok := h.bindBookingRequest(c)
	if !ok {
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"valid": h.bookingService.IsValidBooking(client, route),
	})
}

// Summary handles POST /v1/bookings/summary
func (h *BookingHandler) Summary(c *gin.Context) {
	client, route, ok := h.bindBookingRequest(c)
	if !ok {
		return
	}

	summary, err := h.bookingService.BookingSummary(client, route)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"summary": summary})
}

// GetAll handles GET /v1/bookings
func (h *BookingHandler) GetAll(c *gin.Context) {
	bookings, err := h.bookingRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		response = append(response, bookingResponse(booking))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetBooking handles GET /v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, bookingResponse(booking))
}

// bindBookingRequest parses the request body and assembles the fully
// formed (client, route) pair the workflows expect: the client comes
// from the directory, the route from the payload (planned distance
// unless overridden).
func (h *BookingHandler) bindBookingRequest(c *gin.Context) (*domain.Client, *domain.Route, bool) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return nil, nil, false
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), req.ClientID)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}

	route, err := buildRoute(c.Request.Context(), h.planner, req.Route)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}

	return client, route, true
}

// buildRoute turns a route payload into a domain route. The planner
// populates the distance; an explicit distance_miles in the payload
// overrides it.
func buildRoute(ctx context.Context, planner service.RoutePlanner, payload *RoutePayload) (*domain.Route, error) {
	if payload == nil {
		return nil, nil
	}

	var from, to *domain.Location
	if payload.From != nil {
		from = &domain.Location{
			Name:       payload.From.Name,
			Coordinate: domain.Coordinate{Latitude: payload.From.Lat, Longitude: payload.From.Lng},
		}
	}
	if payload.To != nil {
		to = &domain.Location{
			Name:       payload.To.Name,
			Coordinate: domain.Coordinate{Latitude: payload.To.Lat, Longitude: payload.To.Lng},
		}
	}

	if from == nil || to == nil {
		return &domain.Route{From: from, To: to}, nil
	}

	route, err := planner.PlanRoute(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if payload.DistanceMiles != nil {
		route.DistanceMiles = *payload.DistanceMiles
	}

	return route, nil
}
