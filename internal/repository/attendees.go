package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/database"
	"eventhorizon/internal/models"
)

type AttendeeRepository struct {
	db *database.DB
}

func NewAttendeeRepository(db *database.DB) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

// Register creates an attendee row and, when a ticket type is chosen, takes
// one unit of its inventory, all inside a single transaction.
//
// The event row is locked with SELECT ... FOR UPDATE so concurrent
// registrations for the same event serialize on the capacity and duplicate
// checks. The ticket decrement is a conditional UPDATE guarded by
// quantity > 0 and checked for affected rows, so the counter can never go
// negative regardless of interleaving. A read-then-write of the quantity
// would admit oversells between the read and the write.
func (r *AttendeeRepository) Register(ctx context.Context, eventID, userID string, ticketID *string) (*models.Attendee, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the event row and pull the venue capacity in one round trip.
	var endDate time.Time
	var capacity int
	err = tx.QueryRowContext(ctx, `
		SELECT e.end_date, v.capacity
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		WHERE e.id = $1
		FOR UPDATE OF e`,
		eventID,
	).Scan(&endDate, &capacity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: event %s", apperrors.ErrNotFound, eventID)
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	var userExists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`,
		userID,
	).Scan(&userExists)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !userExists {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}

	// A user registers once per event; cancelled rows free the slot.
	var dupCount int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM attendees
		WHERE event_id = $1 AND user_id = $2 AND status <> 'cancelled'`,
		eventID, userID,
	).Scan(&dupCount)
	if err != nil {
		return nil, fmt.Errorf("check duplicate registration: %w", err)
	}
	if dupCount > 0 {
		return nil, fmt.Errorf("%w: user already registered for this event", apperrors.ErrConflict)
	}

	var attendeeCount int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM attendees
		WHERE event_id = $1 AND status <> 'cancelled'`,
		eventID,
	).Scan(&attendeeCount)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}
	if attendeeCount >= capacity {
		return nil, fmt.Errorf("%w: venue capacity %d reached", apperrors.ErrCapacityExceeded, capacity)
	}

	if ticketID != nil {
		result, err := tx.ExecContext(ctx, `
			UPDATE tickets
			SET quantity = quantity - 1, updated_at = NOW()
			WHERE id = $1 AND event_id = $2 AND quantity > 0`,
			*ticketID, eventID,
		)
		if err != nil {
			return nil, fmt.Errorf("reserve ticket: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("reserve ticket: %w", err)
		}
		if affected == 0 {
			// Distinguish a missing ticket from an exhausted one.
			var exists bool
			err = tx.QueryRowContext(ctx, `
				SELECT EXISTS (SELECT 1 FROM tickets WHERE id = $1 AND event_id = $2)`,
				*ticketID, eventID,
			).Scan(&exists)
			if err != nil {
				return nil, fmt.Errorf("check ticket: %w", err)
			}
			if !exists {
				return nil, fmt.Errorf("%w: ticket %s", apperrors.ErrNotFound, *ticketID)
			}
			return nil, fmt.Errorf("%w: ticket sold out", apperrors.ErrCapacityExceeded)
		}
	}

	attendee := &models.Attendee{
		EventID:  eventID,
		UserID:   userID,
		TicketID: ticketID,
		Status:   models.StatusRegistered,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO attendees (event_id, user_id, ticket_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		attendee.EventID, attendee.UserID, attendee.TicketID, attendee.Status,
	).Scan(&attendee.ID, &attendee.CreatedAt, &attendee.UpdatedAt)
	if err != nil {
		// The partial unique index turns a racing duplicate into a conflict.
		return nil, fmt.Errorf("insert attendee: %w", apperrors.TranslateDB(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return attendee, nil
}

// UpdateStatus validates and applies a lifecycle transition. Moving a
// ticketed registration into cancelled restores one unit of the ticket's
// inventory in the same transaction. The returned flag reports whether a
// restock happened.
func (r *AttendeeRepository) UpdateStatus(ctx context.Context, id string, newStatus models.AttendeeStatus) (*models.Attendee, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	attendee := &models.Attendee{}
	var endDate time.Time
	err = tx.QueryRowContext(ctx, `
		SELECT a.id, a.event_id, a.user_id, a.ticket_id, a.status, a.created_at, a.updated_at,
		       e.end_date
		FROM attendees a
		JOIN events e ON e.id = a.event_id
		WHERE a.id = $1
		FOR UPDATE OF a`,
		id,
	).Scan(
		&attendee.ID,
		&attendee.EventID,
		&attendee.UserID,
		&attendee.TicketID,
		&attendee.Status,
		&attendee.CreatedAt,
		&attendee.UpdatedAt,
		&endDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, fmt.Errorf("%w: attendee %s", apperrors.ErrNotFound, id)
		}
		return nil, false, fmt.Errorf("lock attendee row: %w", err)
	}

	if !attendee.Status.CanTransitionTo(newStatus) {
		return nil, false, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, attendee.Status, newStatus)
	}

	now := time.Now()
	eventEnded := !endDate.After(now)
	if newStatus == models.StatusNoShow && !eventEnded {
		return nil, false, fmt.Errorf("%w: no_show is only valid after the event has ended", apperrors.ErrInvalidTransition)
	}
	if newStatus == models.StatusCancelled && eventEnded {
		return nil, false, fmt.Errorf("%w: cannot cancel after the event has ended", apperrors.ErrInvalidTransition)
	}

	restocked := false
	if newStatus == models.StatusCancelled && attendee.TicketID != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE tickets SET quantity = quantity + 1, updated_at = NOW() WHERE id = $1`,
			*attendee.TicketID,
		)
		if err != nil {
			return nil, false, fmt.Errorf("restock ticket: %w", err)
		}
		restocked = true
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE attendees SET status = $1, updated_at = NOW() WHERE id = $2
		RETURNING updated_at`,
		newStatus, attendee.ID,
	).Scan(&attendee.UpdatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("update status: %w", err)
	}
	attendee.Status = newStatus

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit transaction: %w", err)
	}

	return attendee, restocked, nil
}

func (r *AttendeeRepository) GetByID(ctx context.Context, id string) (*models.Attendee, error) {
	attendee := &models.Attendee{}
	query := `
		SELECT id, event_id, user_id, ticket_id, status, created_at, updated_at
		FROM attendees
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&attendee.ID,
		&attendee.EventID,
		&attendee.UserID,
		&attendee.TicketID,
		&attendee.Status,
		&attendee.CreatedAt,
		&attendee.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return attendee, err
}

func (r *AttendeeRepository) ListByUser(ctx context.Context, userID string) ([]models.Attendee, error) {
	query := `
		SELECT id, event_id, user_id, ticket_id, status, created_at, updated_at
		FROM attendees
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return r.queryAttendees(ctx, query, userID)
}

func (r *AttendeeRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Attendee, error) {
	query := `
		SELECT id, event_id, user_id, ticket_id, status, created_at, updated_at
		FROM attendees
		WHERE event_id = $1
		ORDER BY created_at ASC`

	return r.queryAttendees(ctx, query, eventID)
}

func (r *AttendeeRepository) queryAttendees(ctx context.Context, query string, args ...interface{}) ([]models.Attendee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []models.Attendee
	for rows.Next() {
		var attendee models.Attendee
		err := rows.Scan(
			&attendee.ID,
			&attendee.EventID,
			&attendee.UserID,
			&attendee.TicketID,
			&attendee.Status,
			&attendee.CreatedAt,
			&attendee.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, attendee)
	}

	return attendees, rows.Err()
}

// Stats aggregates registration counts and ticketed revenue for one event.
func (r *AttendeeRepository) Stats(ctx context.Context, eventID string) (*models.AttendeeStatsResponse, error) {
	stats := &models.AttendeeStatsResponse{EventID: eventID}
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE a.status = 'registered'),
			COUNT(*) FILTER (WHERE a.status = 'confirmed'),
			COUNT(*) FILTER (WHERE a.status = 'attended'),
			COUNT(*) FILTER (WHERE a.status = 'cancelled'),
			COUNT(*) FILTER (WHERE a.status = 'no_show'),
			COUNT(*) FILTER (WHERE a.ticket_id IS NOT NULL AND a.status <> 'cancelled'),
			COALESCE(SUM(t.price) FILTER (WHERE a.status <> 'cancelled'), 0)
		FROM attendees a
		LEFT JOIN tickets t ON t.id = a.ticket_id
		WHERE a.event_id = $1`

	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&stats.Total,
		&stats.Registered,
		&stats.Confirmed,
		&stats.Attended,
		&stats.Cancelled,
		&stats.NoShow,
		&stats.TicketsSold,
		&stats.TotalRevenue,
	)

	return stats, err
}

// MarkNoShows sweeps registered and confirmed attendees of events that ended
// before the cutoff into no_show. Returns the number of rows moved.
func (r *AttendeeRepository) MarkNoShows(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE attendees a
		SET status = 'no_show', updated_at = NOW()
		FROM events e
		WHERE e.id = a.event_id
		  AND a.status IN ('registered', 'confirmed')
		  AND e.end_date < $1`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
