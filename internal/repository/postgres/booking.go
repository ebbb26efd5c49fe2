package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cab/internal/domain"
	"cab/internal/repository"
)

// BookingRepository implements repository.BookingRepository using
// PostgreSQL.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, client_id,
			pickup_name, pickup_lat, pickup_lng,
			dropoff_name, dropoff_lat, dropoff_lng,
			distance_miles, computed_distance_miles,
			status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.ClientID,
		booking.Route.From.Name,
		booking.Route.From.Coordinate.Latitude,
		booking.Route.From.Coordinate.Longitude,
		booking.Route.To.Name,
		booking.Route.To.Coordinate.Latitude,
		booking.Route.To.Coordinate.Longitude,
		booking.Route.DistanceMiles,
		booking.ComputedDistanceMiles,
		booking.Status,
		booking.CreatedAt,
	)

	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := selectBooking + ` WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetActiveByClientAndRoute retrieves the most recent ACTIVE booking
// for the given client and route endpoints. Endpoints are matched by
// coordinates, not names.
func (r *BookingRepository) GetActiveByClientAndRoute(ctx context.Context, clientID int64, route *domain.Route) (*domain.Booking, error) {
	query := selectBooking + `
		WHERE client_id = $1 AND status = $2
		  AND pickup_lat = $3 AND pickup_lng = $4
		  AND dropoff_lat = $5 AND dropoff_lng = $6
		ORDER BY created_at DESC
		LIMIT 1
	`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query,
		clientID,
		domain.BookingStatusActive,
		route.From.Coordinate.Latitude,
		route.From.Coordinate.Longitude,
		route.To.Coordinate.Latitude,
		route.To.Coordinate.Longitude,
	))
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetAll retrieves all bookings.
func (r *BookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	query := selectBooking + ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// UpdateStatus updates the lifecycle status of a booking. Completion
// stamps completed_at.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1,
		    completed_at = CASE WHEN $1 = 'COMPLETED' THEN NOW() ELSE completed_at END
		WHERE id = $2
	`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	return checkAffected(result)
}

const selectBooking = `
	SELECT id, client_id,
	       pickup_name, pickup_lat, pickup_lng,
	       dropoff_name, dropoff_lat, dropoff_lng,
	       distance_miles, computed_distance_miles,
	       status, created_at, completed_at
	FROM bookings
`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking     domain.Booking
		from        domain.Location
		to          domain.Location
		completedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&from.Name,
		&from.Coordinate.Latitude,
		&from.Coordinate.Longitude,
		&to.Name,
		&to.Coordinate.Latitude,
		&to.Coordinate.Longitude,
		&booking.Route.DistanceMiles,
		&booking.ComputedDistanceMiles,
		&booking.Status,
		&booking.CreatedAt,
		&completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	booking.Route.From = &from
	booking.Route.To = &to
	if completedAt.Valid {
		booking.CompletedAt = completedAt.Time
	}
	return &booking, nil
}
