package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cab/internal/repository"
	"cab/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status
// code. Server-side failures are recorded on the context so the New
// Relic middleware can notice them.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status
// codes. Invalid-input errors are the caller's to fix; process and
// fare-calculation errors are server-side.
func mapErrorToHTTPStatus(err error) int {
	var (
		invalidBooking *service.InvalidBookingError
		invalidPayment *service.InvalidPaymentError
		creditCard     *service.CreditCardError
		badLocation    *service.LocationInvalidError
		badRoute       *service.RouteInvalidError
		bookingProcess *service.BookingProcessError
		paymentProcess *service.PaymentProcessError
	)

	switch {
	// Process errors stay server-side even when they wrap a not-found
	// cause; check them before the sentinel.
	case errors.As(err, &bookingProcess),
		errors.As(err, &paymentProcess):
		return http.StatusInternalServerError

	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.As(err, &invalidBooking),
		errors.As(err, &invalidPayment),
		errors.As(err, &creditCard),
		errors.As(err, &badLocation),
		errors.As(err, &badRoute):
		return http.StatusBadRequest

	// Process and fare errors (BookingProcessError, PaymentProcessError,
	// FareCalculationError) default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
