package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents a named permission group. Static reference data.
type Role struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Built-in roles seeded at startup.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered account in the system
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	Roles        []string  `json:"roles,omitempty"` // Not from DB, filled separately
}

// Category classifies events. Reference data.
type Category struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
}

// Venue is a physical location with a fixed capacity.
type Venue struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
	Address     string  `json:"address" db:"address"`
	Capacity    int     `json:"capacity" db:"capacity"`
}

// Event is the central scheduling entity.
type Event struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    *string   `json:"description" db:"description"`
	StartDate      time.Time `json:"start_date" db:"start_date"`
	EndDate        time.Time `json:"end_date" db:"end_date"`
	IsRecurring    bool      `json:"is_recurring" db:"is_recurring"`
	RecurrenceRule *string   `json:"recurrence_rule" db:"recurrence_rule"`
	VenueID        int       `json:"venue_id" db:"venue_id"`
	CategoryID     int       `json:"category_id" db:"category_id"`
	OrganizerID    string    `json:"organizer_id" db:"organizer_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// HasEnded reports whether the event is already over at the given instant.
func (e *Event) HasEnded(now time.Time) bool {
	return !e.EndDate.After(now)
}

// Ticket is a sellable ticket type scoped to one event. Quantity is the
// remaining inventory counter and must never go negative.
type Ticket struct {
	ID        string          `json:"id" db:"id"`
	EventID   string          `json:"event_id" db:"event_id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Quantity  int             `json:"quantity" db:"quantity"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Attendee records one user's registration against one event.
type Attendee struct {
	ID        string         `json:"id" db:"id"`
	EventID   string         `json:"event_id" db:"event_id"`
	UserID    string         `json:"user_id" db:"user_id"`
	TicketID  *string        `json:"ticket_id" db:"ticket_id"`
	Status    AttendeeStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}
