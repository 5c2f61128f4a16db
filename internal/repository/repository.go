package repository

import (
	"eventhorizon/internal/database"
)

type Repositories struct {
	Users      *UserRepository
	Categories *CategoryRepository
	Venues     *VenueRepository
	Events     *EventRepository
	Tickets    *TicketRepository
	Attendees  *AttendeeRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Categories: NewCategoryRepository(db),
		Venues:     NewVenueRepository(db),
		Events:     NewEventRepository(db),
		Tickets:    NewTicketRepository(db),
		Attendees:  NewAttendeeRepository(db),
	}
}
