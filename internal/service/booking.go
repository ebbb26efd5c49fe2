package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"cab/internal/domain"
	"cab/internal/repository"
)

// distanceWarnToleranceMiles is the allowed gap between the booked
// distance and the independently recomputed one before a mismatch
// warning is logged. The booked distance is caller-overridable, so a
// mismatch is flagged, never rejected.
const distanceWarnToleranceMiles = 0.5

// BookingService orchestrates the booking lifecycle:
// OPEN -> ACTIVE (BookCab) -> COMPLETED (FinishBookingCab).
type BookingService struct {
	validator *BookingValidator
	planner   RoutePlanner
	bookings  repository.BookingRepository
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	validator *BookingValidator,
	planner RoutePlanner,
	bookings repository.BookingRepository,
) *BookingService {
	return &BookingService{
		validator: validator,
		planner:   planner,
		bookings:  bookings,
	}
}

// BookCab validates the (client, route) pair and records an ACTIVE
// booking. The route's stated distance is cross-checked against an
// independent recomputation; a large deviation is logged as a warning
// but never blocks the transition.
//
// Validation failures return *InvalidBookingError. Failures raised by
// the route planner or the booking store return *BookingProcessError
// wrapping the cause.
func (s *BookingService) BookCab(ctx context.Context, client *domain.Client, route *domain.Route) (*domain.Booking, error) {
	if err := s.validator.Validate(client, route); err != nil {
		return nil, err
	}

	planned, err := s.planner.PlanRoute(ctx, route.From, route.To)
	if err != nil {
		return nil, newBookingProcessError(err, "Cannot book cab due to invalid route/location: %v", err)
	}

	if math.Abs(planned.DistanceMiles-route.DistanceMiles) > distanceWarnToleranceMiles {
		log.Printf("WARNING: booked distance %.2f mi deviates from computed %.2f mi for client %d (%s -> %s)",
			route.DistanceMiles, planned.DistanceMiles, client.ID, route.From.Name, route.To.Name)
	}

	booking := &domain.Booking{
		ID:                    uuid.New().String(),
		ClientID:              client.ID,
		Route:                 *route,
		Status:                domain.BookingStatusActive,
		ComputedDistanceMiles: planned.DistanceMiles,
		CreatedAt:             time.Now(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, newBookingProcessError(err, "Cannot book cab: %v", err)
	}

	return booking, nil
}

// FinishBookingCab transitions the client's ACTIVE booking for the
// given route to COMPLETED. Only client/route presence is re-checked;
// full validation is not repeated. Finishing without a prior BookCab
// fails: the ACTIVE precondition is a real guard, not caller
// discipline.
func (s *BookingService) FinishBookingCab(ctx context.Context, client *domain.Client, route *domain.Route) (*domain.Booking, error) {
	if client == nil {
		return nil, &InvalidBookingError{Rule: RuleClientPresent, Detail: "Client cannot be null"}
	}
	if route == nil {
		return nil, &InvalidBookingError{Rule: RuleRoutePresent, Detail: "Route cannot be null"}
	}

	booking, err := s.bookings.GetActiveByClientAndRoute(ctx, client.ID, route)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newBookingProcessError(err, "Cannot finish booking: no active booking for client %d", client.ID)
		}
		return nil, newBookingProcessError(err, "Cannot finish booking: %v", err)
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingStatusCompleted); err != nil {
		return nil, newBookingProcessError(err, "Cannot finish booking: %v", err)
	}

	booking.Status = domain.BookingStatusCompleted
	booking.CompletedAt = time.Now()
	return booking, nil
}

// IsValidBooking reports whether the pair would pass validation.
// It never returns an error.
func (s *BookingService) IsValidBooking(client *domain.Client, route *domain.Route) bool {
	return s.validator.Validate(client, route) == nil
}

// BookingSummary returns a human-readable recap of a booking request.
// It fails under the same rules as validation.
func (s *BookingService) BookingSummary(client *domain.Client, route *domain.Route) (string, error) {
	if err := s.validator.Validate(client, route); err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"Booking for %s (%s): %s -> %s, %.2f miles",
		client.Name, client.Email, route.From.Name, route.To.Name, route.DistanceMiles,
	), nil
}
