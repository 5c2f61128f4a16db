package repository

import (
	"context"
	"database/sql"
	"fmt"

	"eventhorizon/internal/database"
	"eventhorizon/internal/models"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, start_date, end_date, is_recurring,
	recurrence_rule, venue_id, category_id, organizer_id, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }, e *models.Event) error {
	return row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.StartDate,
		&e.EndDate,
		&e.IsRecurring,
		&e.RecurrenceRule,
		&e.VenueID,
		&e.CategoryID,
		&e.OrganizerID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (title, description, start_date, end_date, is_recurring,
		                    recurrence_rule, venue_id, category_id, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.IsRecurring,
		event.RecurrenceRule,
		event.VenueID,
		event.CategoryID,
		event.OrganizerID,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	return err
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event := &models.Event{}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	err := scanEvent(r.db.QueryRowContext(ctx, query, id), event)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return event, err
}

// List returns events filtered at the data layer: optional ILIKE text match,
// start-date day match and category filter, newest first, paginated.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	var args []interface{}
	argIndex := 1

	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`

	if filter.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Query+"%")
		argIndex++
	}

	if filter.Date != "" {
		query += fmt.Sprintf(" AND DATE(start_date) = $%d", argIndex)
		args = append(args, filter.Date)
		argIndex++
	}

	if filter.CategoryID > 0 {
		query += fmt.Sprintf(" AND category_id = $%d", argIndex)
		args = append(args, filter.CategoryID)
		argIndex++
	}

	query += " ORDER BY start_date ASC"

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filter.PageSize, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// ListActive returns events that have not ended yet, soonest first.
func (r *EventRepository) ListActive(ctx context.Context) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE end_date > NOW() ORDER BY start_date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// ListAll returns every event, used by the reindex tool.
func (r *EventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	return r.List(ctx, models.EventFilter{})
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) (bool, error) {
	query := `
		UPDATE events
		SET title = $1, description = $2, start_date = $3, end_date = $4,
		    is_recurring = $5, recurrence_rule = $6, venue_id = $7,
		    category_id = $8, updated_at = NOW()
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.IsRecurring,
		event.RecurrenceRule,
		event.VenueID,
		event.CategoryID,
		event.ID,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete removes an event; tickets and attendees cascade with it.
func (r *EventRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}
