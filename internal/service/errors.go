package service

import (
	"fmt"
	"math"
)

// BookingRule identifies which validation rule a booking request
// violated. Rules are checked in declaration order; the first failing
// rule wins.
type BookingRule int

const (
	RuleClientPresent BookingRule = iota
	RuleRoutePresent
	RuleClientID
	RuleClientName
	RuleClientEmail
	RuleRouteEndpoints
	RuleRouteDistance
	RuleDistinctLocations
)

// InvalidBookingError reports caller-supplied booking data that
// violates a precondition. Recoverable by correcting the input.
type InvalidBookingError struct {
	Rule   BookingRule
	Detail string
}

func (e *InvalidBookingError) Error() string { return e.Detail }

// BookingProcessError reports a collaborator failure during an
// otherwise-valid booking operation. The cause's message is embedded
// verbatim for diagnosability.
type BookingProcessError struct {
	Msg   string
	Cause error
}

func (e *BookingProcessError) Error() string { return e.Msg }

func (e *BookingProcessError) Unwrap() error { return e.Cause }

func newBookingProcessError(cause error, format string, args ...any) *BookingProcessError {
	return &BookingProcessError{Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// InvalidPaymentError reports caller-supplied payment data that
// violates a precondition.
type InvalidPaymentError struct {
	Detail string
}

func (e *InvalidPaymentError) Error() string { return e.Detail }

// PaymentProcessError reports a collaborator failure during an
// otherwise-valid payment operation.
type PaymentProcessError struct {
	Msg   string
	Cause error
}

func (e *PaymentProcessError) Error() string { return e.Msg }

func (e *PaymentProcessError) Unwrap() error { return e.Cause }

func newPaymentProcessError(cause error, format string, args ...any) *PaymentProcessError {
	return &PaymentProcessError{Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// CreditCardError is the card-specific subset of invalid payment input,
// kept distinct so callers can special-case card re-entry flows.
type CreditCardError struct {
	Detail string
}

func (e *CreditCardError) Error() string { return e.Detail }

// FareCalculationError is raised for a negative or non-finite distance
// input to the fare formula. It signals an upstream logic defect, not
// bad user input.
type FareCalculationError struct {
	DistanceMiles float64
}

func (e *FareCalculationError) Error() string {
	if math.IsNaN(e.DistanceMiles) || math.IsInf(e.DistanceMiles, 0) {
		return fmt.Sprintf("Cannot calculate fare for non-finite distance: %v", e.DistanceMiles)
	}
	return fmt.Sprintf("Cannot calculate fare for negative distance: %v", e.DistanceMiles)
}

// LocationInvalidError is raised by the route planner when a location
// is missing or its coordinates are out of range.
type LocationInvalidError struct {
	Detail string
}

func (e *LocationInvalidError) Error() string { return e.Detail }

// RouteInvalidError is raised by the route planner when a route cannot
// be constructed from two valid locations.
type RouteInvalidError struct {
	Detail string
}

func (e *RouteInvalidError) Error() string { return e.Detail }
