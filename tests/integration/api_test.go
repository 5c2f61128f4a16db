package integration

import (
	"net/http"
	"testing"
	"time"

	"eventhorizon/internal/models"
)

// TestFullRegistrationFlow walks the main path end to end: account, catalog,
// event, ticket, registration, confirmation, stats.
func TestFullRegistrationFlow(t *testing.T) {
	base := NewTestClient(t)
	admin := base.AsAdmin()

	attendeeUser, attPass := base.RegisterUser(t, "attendee")

	category := admin.CreateCategory(t, uniqueName("flow-category"))
	venue := admin.CreateVenue(t, uniqueName("flow-venue"), 100)
	event := admin.CreateEvent(t, "Flow Conference", venue.ID, category.ID)
	ticket := admin.CreateTicket(t, event.ID, "Standard", 50, 10)

	// Attendee registers themselves with a ticket
	asAttendee := base.As(attendeeUser.Email, attPass)
	resp := asAttendee.RegisterAttendee(t, event.ID, attendeeUser.ID, &ticket.ID)
	expectStatus(t, resp, http.StatusCreated)
	attendee := decode[models.Attendee](t, resp)

	if attendee.Status != models.StatusRegistered {
		t.Fatalf("Expected status registered, got %s", attendee.Status)
	}

	// Inventory went down by one
	if got := admin.GetTicket(t, ticket.ID).Quantity; got != 9 {
		t.Fatalf("Expected quantity 9 after registration, got %d", got)
	}

	// Attendee confirms
	resp = asAttendee.UpdateAttendeeStatus(t, attendee.ID, models.StatusConfirmed)
	expectStatus(t, resp, http.StatusOK)

	// The organizer sees the numbers
	stats := admin.GetStats(t, event.ID)
	if stats.Total != 1 || stats.Confirmed != 1 {
		t.Fatalf("Unexpected stats: %+v", stats)
	}
	if stats.TicketsSold != 1 {
		t.Fatalf("Expected 1 ticket sold, got %d", stats.TicketsSold)
	}
}

func TestRoleGates(t *testing.T) {
	base := NewTestClient(t)
	admin := base.AsAdmin()

	user, pass := base.RegisterUser(t, "plain")
	asUser := base.As(user.Email, pass)

	// Regular users cannot manage the catalog
	resp := asUser.makeRequest(t, "POST", "/api/categories", models.CreateCategoryRequest{Name: uniqueName("forbidden")})
	expectStatus(t, resp, http.StatusForbidden)

	resp = asUser.makeRequest(t, "POST", "/api/venues", models.CreateVenueRequest{
		Name: uniqueName("forbidden"), Address: "x", Capacity: 1,
	})
	expectStatus(t, resp, http.StatusForbidden)

	// Events and tickets are catalog resources too
	start := time.Now().Add(24 * time.Hour)
	resp = asUser.makeRequest(t, "POST", "/api/events", models.CreateEventRequest{
		Title:      "Forbidden Event",
		StartDate:  start,
		EndDate:    start.Add(time.Hour),
		VenueID:    1,
		CategoryID: 1,
	})
	expectStatus(t, resp, http.StatusForbidden)

	category := admin.CreateCategory(t, uniqueName("gate-category"))
	venue := admin.CreateVenue(t, uniqueName("gate-venue"), 10)
	event := admin.CreateEvent(t, "Gate Checks", venue.ID, category.ID)

	resp = asUser.makeRequest(t, "POST", "/api/tickets", models.CreateTicketRequest{
		EventID: event.ID, Name: "Forbidden", Quantity: 1,
	})
	expectStatus(t, resp, http.StatusForbidden)

	resp = asUser.makeRequest(t, "DELETE", "/api/events/"+event.ID, nil)
	expectStatus(t, resp, http.StatusForbidden)

	// Unauthenticated API requests are rejected outright
	anon := base.As("", "")
	resp = anon.makeRequest(t, "GET", "/api/events", nil)
	expectStatus(t, resp, http.StatusUnauthorized)
}

func TestReferentialRules(t *testing.T) {
	base := NewTestClient(t)
	admin := base.AsAdmin()

	category := admin.CreateCategory(t, uniqueName("ref-category"))
	venue := admin.CreateVenue(t, uniqueName("ref-venue"), 50)
	event := admin.CreateEvent(t, "Referential Rules", venue.ID, category.ID)

	// Venue and category deletion are blocked while the event references them
	resp := admin.makeRequest(t, "DELETE", "/api/venues/"+itoa(venue.ID), nil)
	expectStatus(t, resp, http.StatusConflict)

	resp = admin.makeRequest(t, "DELETE", "/api/categories/"+itoa(category.ID), nil)
	expectStatus(t, resp, http.StatusConflict)

	// Dropping the event unblocks both
	resp = admin.makeRequest(t, "DELETE", "/api/events/"+event.ID, nil)
	expectStatus(t, resp, http.StatusNoContent)

	resp = admin.makeRequest(t, "DELETE", "/api/venues/"+itoa(venue.ID), nil)
	expectStatus(t, resp, http.StatusNoContent)

	resp = admin.makeRequest(t, "DELETE", "/api/categories/"+itoa(category.ID), nil)
	expectStatus(t, resp, http.StatusNoContent)
}

func TestUserDeleteCascadesRegistrations(t *testing.T) {
	base := NewTestClient(t)
	admin := base.AsAdmin()

	user, pass := base.RegisterUser(t, "cascade-user")

	category := admin.CreateCategory(t, uniqueName("cascade-category"))
	venue := admin.CreateVenue(t, uniqueName("cascade-venue"), 10)
	event := admin.CreateEvent(t, "Cascade Checks", venue.ID, category.ID)

	asUser := base.As(user.Email, pass)
	resp := asUser.RegisterAttendee(t, event.ID, user.ID, nil)
	expectStatus(t, resp, http.StatusCreated)
	attendee := decode[models.Attendee](t, resp)

	// Deleting the user takes the registration with it
	resp = admin.makeRequest(t, "DELETE", "/api/users/"+user.ID, nil)
	expectStatus(t, resp, http.StatusNoContent)

	resp = admin.makeRequest(t, "GET", "/api/attendees/"+attendee.ID, nil)
	expectStatus(t, resp, http.StatusNotFound)
}
