package repository

import (
	"context"

	"cab/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetActiveByClientAndRoute retrieves the most recent ACTIVE
	// booking for the given client and route endpoints.
	GetActiveByClientAndRoute(ctx context.Context, clientID int64, route *domain.Route) (*domain.Booking, error)

	// GetAll retrieves all bookings.
	GetAll(ctx context.Context) ([]*domain.Booking, error)

	// UpdateStatus updates the lifecycle status of a booking.
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}
