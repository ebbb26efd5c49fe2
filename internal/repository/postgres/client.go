package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cab/internal/domain"
	"cab/internal/repository"
)

// ClientRepository implements repository.ClientRepository using
// PostgreSQL.
type ClientRepository struct {
	q Querier
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{q: db}
}

// NewClientRepositoryWithTx creates a client repository using a transaction.
func NewClientRepositoryWithTx(tx *sql.Tx) *ClientRepository {
	return &ClientRepository{q: tx}
}

// Create adds a new client and fills in its generated ID.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (name, email, phone, address, credit_card)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.q.QueryRowContext(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.CreditCard,
	).Scan(&client.ID)
}

// GetByID retrieves a client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `
		SELECT id, name, email, phone, address, credit_card
		FROM clients WHERE id = $1
	`

	return r.scanClient(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a client by email address.
func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	query := `
		SELECT id, name, email, phone, address, credit_card
		FROM clients WHERE email = $1
	`

	return r.scanClient(r.q.QueryRowContext(ctx, query, email))
}

// GetAll retrieves all clients.
func (r *ClientRepository) GetAll(ctx context.Context) ([]*domain.Client, error) {
	query := `
		SELECT id, name, email, phone, address, credit_card
		FROM clients ORDER BY id
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Email,
			&client.Phone,
			&client.Address,
			&client.CreditCard,
		); err != nil {
			return nil, err
		}
		clients = append(clients, &client)
	}
	return clients, rows.Err()
}

// Update replaces the mutable attributes of a client.
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = $1, email = $2, phone = $3, address = $4, credit_card = $5
		WHERE id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.CreditCard,
		client.ID,
	)
	if err != nil {
		return err
	}

	return checkAffected(result)
}

// Delete removes a client by ID.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return checkAffected(result)
}

func (r *ClientRepository) scanClient(row *sql.Row) (*domain.Client, error) {
	var client domain.Client
	err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.CreditCard,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
