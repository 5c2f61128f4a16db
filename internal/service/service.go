package service

import (
	"eventhorizon/internal/cache"
	"eventhorizon/internal/messaging"
	"eventhorizon/internal/repository"
	"eventhorizon/internal/search"
)

type Services struct {
	Users      *UserService
	Categories *CategoryService
	Venues     *VenueService
	Events     *EventService
	Tickets    *TicketService
	Attendees  *AttendeeService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, valkeyClient *cache.ValkeyClient, esClient *search.ElasticsearchClient) *Services {
	userService := NewUserService(repos.Users, valkeyClient)
	categoryService := NewCategoryService(repos.Categories)
	venueService := NewVenueService(repos.Venues)
	eventService := NewEventService(repos.Events, repos.Venues, repos.Categories, esClient, valkeyClient, natsClient)
	ticketService := NewTicketService(repos.Tickets, repos.Events)
	attendeeService := NewAttendeeService(repos.Attendees, repos.Events, repos.Tickets, natsClient)

	return &Services{
		Users:      userService,
		Categories: categoryService,
		Venues:     venueService,
		Events:     eventService,
		Tickets:    ticketService,
		Attendees:  attendeeService,
	}
}
