package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cab/internal/domain"
	internalRedis "cab/internal/redis"
	"cab/internal/repository"
	"cab/internal/service"
)

// bookingLockTTL bounds how long a payment confirmation may hold the
// per-booking transition lock.
const bookingLockTTL = 30 * time.Second

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
	clientRepo     repository.ClientRepository
	planner        service.RoutePlanner
	locks          internalRedis.LockStoreInterface
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(
	paymentService *service.PaymentService,
	clientRepo repository.ClientRepository,
	planner service.RoutePlanner,
	locks internalRedis.LockStoreInterface,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		clientRepo:     clientRepo,
		planner:        planner,
		locks:          locks,
	}
}

// PaymentRequest is the HTTP request body for payment operations.
type PaymentRequest struct {
	ClientID   int64         `json:"client_id"`
	Route      *RoutePayload `json:"route"`
	Amount     *float64      `json:"amount,omitempty"`
	CardNumber string        `json:"card_number,omitempty"`
}

// RequestPayment handles POST /v1/payments/request
func (h *PaymentHandler) RequestPayment(c *gin.Context) {
	client, route, ok := h.bindPaymentRequest(c)
	if !ok {
		return
	}

	amount, err := h.paymentService.RequestPayment(c.Request.Context(), client, route)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"amount_owed": amount})
}

// Confirm handles POST /v1/payments/confirm
//
// Confirmation transitions the booking, so it is serialized per client
// booking via a Redis lock: the workflows assume at most one in-flight
// transition per booking identity.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Amount == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount is required"})
		return
	}

	ctx := c.Request.Context()

	client, err := h.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		respondError(c, err)
		return
	}

	route, err := buildRoute(ctx, h.planner, req.Route)
	if err != nil {
		respondError(c, err)
		return
	}

	locked, err := h.locks.AcquireBookingLock(ctx, client.ID, bookingLockTTL)
	switch {
	case err != nil:
		// Fail open: the confirmation proceeds unserialized.
		log.Printf("WARNING: could not acquire booking lock for client %d: %v", client.ID, err)
	case !locked:
		c.JSON(http.StatusConflict, ErrorResponse{Error: "a payment for this booking is already in progress"})
		return
	default:
		defer func() { _ = h.locks.ReleaseBookingLock(ctx, client.ID) }()
	}

	if err := h.paymentService.PaymentConfirmation(ctx, client, route, *req.Amount, req.CardNumber); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "confirmed"})
}

// CanProcess handles POST /v1/payments/can-process
func (h *PaymentHandler) CanProcess(c *gin.Context) {
	client, route, ok := h.bindPaymentRequest(c)
	if !ok {
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"can_process": h.paymentService.CanProcessPayment(c.Request.Context(), client, route),
	})
}

// Summary handles POST /v1/payments/summary
func (h *PaymentHandler) Summary(c *gin.Context) {
	client, route, ok := h.bindPaymentRequest(c)
	if !ok {
		return
	}

	summary, err := h.paymentService.PaymentSummary(c.Request.Context(), client, route)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"summary": summary})
}

func (h *PaymentHandler) bindPaymentRequest(c *gin.Context) (*domain.Client, *domain.Route, bool) {
	var req PaymentRequest
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
