package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusOpen      BookingStatus = "OPEN"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// Booking is a validated cab booking for a (client, route) pair.
// Lifecycle: OPEN -> ACTIVE (cab dispatched, fare payable) ->
// COMPLETED (payment confirmed). COMPLETED is terminal.
type Booking struct {
	ID                    string
	ClientID              int64
	Route                 Route
	Status                BookingStatus
	ComputedDistanceMiles float64 // independently recomputed at booking time
	CreatedAt             time.Time
	CompletedAt           time.Time
}
