package repository

import (
	"context"

	"cab/internal/domain"
)

// ClientRepository defines the persistence operations for the client
// directory.
type ClientRepository interface {
	// Create adds a new client and fills in its generated ID.
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by ID.
	GetByID(ctx context.Context, id int64) (*domain.Client, error)

	// GetByEmail retrieves a client by email address.
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)

	// GetAll retrieves all clients.
	GetAll(ctx context.Context) ([]*domain.Client, error)

	// Update replaces the mutable attributes of a client.
	Update(ctx context.Context, client *domain.Client) error

	// Delete removes a client by ID.
	Delete(ctx context.Context, id int64) error
}
