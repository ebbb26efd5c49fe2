package service

import (
	"fmt"
	"math"
	"strings"

	"cab/internal/domain"
)

// BookingValidator enforces the invariants a (client, route) pair must
// satisfy before any booking transition. Checks run in a fixed order
// and the first failing rule wins.
type BookingValidator struct{}

// NewBookingValidator creates a new BookingValidator.
func NewBookingValidator() *BookingValidator {
	return &BookingValidator{}
}

// Validate returns nil if the pair may be booked, or an
// *InvalidBookingError carrying the first violated rule.
func (v *BookingValidator) Validate(client *domain.Client, route *domain.Route) error {
	if client == nil {
		return &InvalidBookingError{Rule: RuleClientPresent, Detail: "Client cannot be null"}
	}

	if route == nil {
		return &InvalidBookingError{Rule: RuleRoutePresent, Detail: "Route cannot be null"}
	}

	if client.ID <= 0 {
		return &InvalidBookingError{Rule: RuleClientID, Detail: "Client must have a valid ID"}
	}

	if strings.TrimSpace(client.Name) == "" {
		return &InvalidBookingError{Rule: RuleClientName, Detail: "Client must have a valid name"}
	}

	if !isValidEmail(client.Email) {
		return &InvalidBookingError{
			Rule:   RuleClientEmail,
			Detail: fmt.Sprintf("Client email must be valid: %s", client.Email),
		}
	}

	if route.From == nil || route.To == nil {
		return &InvalidBookingError{
			Rule:   RuleRouteEndpoints,
			Detail: "Route must have valid starting and destination locations",
		}
	}

	if route.DistanceMiles < 0 {
		return &InvalidBookingError{
			Rule:   RuleRouteDistance,
			Detail: fmt.Sprintf("Route distance cannot be negative: %v", route.DistanceMiles),
		}
	}

	// NaN slips past the negative check (every comparison against NaN
	// is false), so non-finite distances are rejected under the same
	// rule.
	if math.IsNaN(route.DistanceMiles) || math.IsInf(route.DistanceMiles, 0) {
		return &InvalidBookingError{
			Rule:   RuleRouteDistance,
			Detail: fmt.Sprintf("Route distance must be a finite number: %v", route.DistanceMiles),
		}
	}

	if route.From.SamePlace(route.To) {
		return &InvalidBookingError{
			Rule:   RuleDistinctLocations,
			Detail: "Cannot book cab for same pickup and destination location",
		}
	}

	return nil
}

// isValidEmail checks the simple local@domain shape: exactly one '@'
// with non-empty parts on both sides.
func isValidEmail(email string) bool {
	if strings.Count(email, "@") != 1 {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
