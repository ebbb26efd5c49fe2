package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"cab/internal/domain"
	"cab/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is an in-memory implementation of
// repository.BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	GetActiveError    error
	UpdateStatusError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetActiveByClientAndRoute(ctx context.Context, clientID int64, route *domain.Route) (*domain.Booking, error) {
	if m.GetActiveError != nil {
		return nil, m.GetActiveError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *domain.Booking
	for _, b := range m.bookings {
		if b.ClientID != clientID || b.Status != domain.BookingStatusActive {
			continue
		}
		if !b.Route.From.Coordinate.Equal(route.From.Coordinate) ||
			!b.Route.To.Coordinate.Equal(route.To.Coordinate) {
			continue
		}
		if latest == nil || b.CreatedAt.After(latest.CreatedAt) {
			latest = b
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copy := *latest
	return &copy, nil
}

func (m *MockBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var bookings []*domain.Booking
	for _, b := range m.bookings {
		copy := *b
		bookings = append(bookings, &copy)
	}
	return bookings, nil
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	booking.Status = status
	if status == domain.BookingStatusCompleted {
		booking.CompletedAt = time.Now()
	}
	return nil
}

// CountBookings returns the number of stored bookings.
func (m *MockBookingRepository) CountBookings() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

// GetBooking returns a stored booking without copy semantics checks.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// Ensure the mock satisfies the interface.
var _ repository.BookingRepository = (*MockBookingRepository)(nil)

// ──────────────────────────────────────────────
// MOCK ROUTE PLANNER
// ──────────────────────────────────────────────

// MockRoutePlanner is a RoutePlanner with error injection.
type MockRoutePlanner struct {
	PlanError error
}

func (m *MockRoutePlanner) PlanRoute(ctx context.Context, from, to *domain.Location) (*domain.Route, error) {
	if m.PlanError != nil {
		return nil, m.PlanError
	}
	return NewHaversineRoutePlanner().PlanRoute(ctx, from, to)
}

var _ RoutePlanner = (*MockRoutePlanner)(nil)

// ──────────────────────────────────────────────
// MOCK BOOKING FINISHER
// ──────────────────────────────────────────────

// MockBookingFinisher records FinishBookingCab calls.
type MockBookingFinisher struct {
	FinishCallCount int32
	FinishError     error
}

func (m *MockBookingFinisher) FinishBookingCab(ctx context.Context, client *domain.Client, route *domain.Route) (*domain.Booking, error) {
	atomic.AddInt32(&m.FinishCallCount, 1)
	if m.FinishError != nil {
		return nil, m.FinishError
	}
	return &domain.Booking{
		ClientID: client.ID,
		Route:    *route,
		Status:   domain.BookingStatusCompleted,
	}, nil
}

var _ BookingFinisher = (*MockBookingFinisher)(nil)

// ──────────────────────────────────────────────
// FIXTURES
// ──────────────────────────────────────────────

func testClient() *domain.Client {
	return &domain.Client{
		ID:         1,
		Name:       "John Doe",
		Email:      "john@example.com",
		Phone:      "555-0100",
		CreditCard: "4111-1111-1111-1111",
	}
}

func testRoute() *domain.Route {
	return &domain.Route{
		From: &domain.Location{
			Name:       "Airport",
			Coordinate: domain.Coordinate{Latitude: 40.6413, Longitude: -73.7781},
		},
		To: &domain.Location{
			Name:       "Downtown",
			Coordinate: domain.Coordinate{Latitude: 40.7128, Longitude: -74.0060},
		},
		DistanceMiles: 2.5,
	}
}
