package repository

import (
	"context"
	"database/sql"

	"eventhorizon/internal/database"
	"eventhorizon/internal/models"
)

type TicketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (event_id, name, price, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		ticket.EventID,
		ticket.Name,
		ticket.Price,
		ticket.Quantity,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)

	return err
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `
		SELECT id, event_id, name, price, quantity, created_at, updated_at
		FROM tickets
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.Name,
		&ticket.Price,
		&ticket.Quantity,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return ticket, err
}

func (r *TicketRepository) List(ctx context.Context) ([]models.Ticket, error) {
	query := `
		SELECT id, event_id, name, price, quantity, created_at, updated_at
		FROM tickets
		ORDER BY created_at DESC`

	return r.queryTickets(ctx, query)
}

func (r *TicketRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Ticket, error) {
	query := `
		SELECT id, event_id, name, price, quantity, created_at, updated_at
		FROM tickets
		WHERE event_id = $1
		ORDER BY price ASC`

	return r.queryTickets(ctx, query, eventID)
}

func (r *TicketRepository) queryTickets(ctx context.Context, query string, args ...interface{}) ([]models.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.EventID,
			&ticket.Name,
			&ticket.Price,
			&ticket.Quantity,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

func (r *TicketRepository) Update(ctx context.Context, ticket *models.Ticket) (bool, error) {
	query := `
		UPDATE tickets
		SET name = $1, price = $2, quantity = $3, updated_at = NOW()
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		ticket.Name,
		ticket.Price,
		ticket.Quantity,
		ticket.ID,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete removes a ticket type; attendee rows referencing it get a NULL
// ticket_id (ON DELETE SET NULL).
func (r *TicketRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}
