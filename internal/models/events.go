package models

import "time"

// NATS Event Types
const (
	EventEventCreated          = "event.created"
	EventEventDeleted          = "event.deleted"
	EventAttendeeRegistered    = "attendee.registered"
	EventAttendeeCancelled     = "attendee.cancelled"
	EventAttendeeStatusChanged = "attendee.status_changed"
)

// EventCreatedEvent represents an event creation message
type EventCreatedEvent struct {
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	OrganizerID string    `json:"organizer_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// EventDeletedEvent represents an event deletion message
type EventDeletedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
}

// AttendeeRegisteredEvent represents a successful registration
type AttendeeRegisteredEvent struct {
	AttendeeID string    `json:"attendee_id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	TicketID   *string   `json:"ticket_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// AttendeeCancelledEvent represents a cancelled registration
type AttendeeCancelledEvent struct {
	AttendeeID string    `json:"attendee_id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	Restocked  bool      `json:"restocked"`
	Timestamp  time.Time `json:"timestamp"`
}

// AttendeeStatusChangedEvent represents any other status transition
type AttendeeStatusChangedEvent struct {
	AttendeeID string         `json:"attendee_id"`
	EventID    string         `json:"event_id"`
	From       AttendeeStatus `json:"from"`
	To         AttendeeStatus `json:"to"`
	Timestamp  time.Time      `json:"timestamp"`
}
