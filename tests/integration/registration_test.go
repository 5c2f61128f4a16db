package integration

import (
	"net/http"
	"strconv"
	"sync"
	"testing"

	"eventhorizon/internal/models"
)

func itoa(id int) string {
	return strconv.Itoa(id)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	base := NewTestClient(t)
	admin := base.AsAdmin()

	user, pass := base.RegisterUser(t, "dup-user")

	category := admin.CreateCategory(t, uniqueName("dup-category"))
	venue := admin.CreateVenue(t, uniqueName("dup-venue"), 10)
	event := admin.CreateEvent(t, "Duplicate Checks", venue.ID, category.ID)

	asUser := base.As(user.Email, pass)
	resp := asUser.RegisterAttendee(t, event.ID, user.ID, nil)
	expectStatus(t, resp, http.StatusCreated)
	attendee := decode[models.Attendee](t, resp)

	// Second registration for the same event conflicts
	resp = asUser.RegisterAttendee(t, event.ID, user.ID, nil)
	expectStatus(t, resp, http.StatusConflict)

	// After cancelling, the user may register again
	resp = asUser.CancelAttendee(t, attendee.ID)
	expectStatus(t, resp, http.StatusOK)

	resp = asUser.RegisterAttendee(t, event.ID, user.ID, nil)
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()
}

// TestConcurrentTicketRegistrations hammers a single-unit ticket from several
// users at once. Exactly one registration may take the unit.
func TestConcurrentTicketRegistrations(t *testing.T) {
	base := NewTestClient(t)
	admin := base.AsAdmin()

	category := admin.CreateCategory(t, uniqueName("conc-category"))
	venue := admin.CreateVenue(t, uniqueName("conc-venue"), 100)
	event := admin.CreateEvent(t, "Concurrency Checks", venue.ID, category.ID)
	ticket := admin.CreateTicket(t, event.ID, "Last One", 10, 1)

	const contenders = 5

	type user struct {
		id       string
		email    string
		password string
	}
	users := make([]user, contenders)
	for i := range users {
		u, pass := base.RegisterUser(t, "conc-user")
		users[i] = user{id: u.ID, email: u.Email, password: pass}
	}

	var wg sync.WaitGroup
	statuses := make([]int, contenders)

	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := base.As(users[i].email, users[i].password)
			resp := c.RegisterAttendee(t, event.ID, users[i].id, &ticket.ID)
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range statuses {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			// capacity exceeded, expected for the losers
		default:
			t.Fatalf("Unexpected status %d", code)
		}
	}

	if created != 1 {
		t.Fatalf("Expected exactly 1 successful registration, got %d (statuses %v)", created, statuses)
	}

	// The counter ended at zero, never below
	if got := admin.GetTicket(t, ticket.ID).Quantity; got != 0 {
		t.Fatalf("Expected quantity 0, got %d", got)
	}
}

func TestCancellationRestoresInventory(t *testing.T) {
	base := NewTestClient(t)
	admin := base.AsAdmin()

	user, pass := base.RegisterUser(t, "restock-user")

	category := admin.CreateCategory(t, uniqueName("restock-category"))
	venue := admin.CreateVenue(t, uniqueName("restock-venue"), 10)
	event := admin.CreateEvent(t, "Restock Checks", venue.ID, category.ID)
	ticket := admin.CreateTicket(t, event.ID, "Refundable", 20, 3)

	asUser := base.As(user.Email, pass)
	resp := asUser.RegisterAttendee(t, event.ID, user.ID, &ticket.ID)
	expectStatus(t, resp, http.StatusCreated)
	attendee := decode[models.Attendee](t, resp)

	if got := admin.GetTicket(t, ticket.ID).Quantity; got != 2 {
		t.Fatalf("Expected quantity 2 after registration, got %d", got)
	}

	resp = asUser.CancelAttendee(t, attendee.ID)
	expectStatus(t, resp, http.StatusOK)

	if got := admin.GetTicket(t, ticket.ID).Quantity; got != 3 {
		t.Fatalf("Expected quantity 3 after cancellation, got %d", got)
	}

	// Cancelled is terminal
	resp = asUser.UpdateAttendeeStatus(t, attendee.ID, models.StatusConfirmed)
	expectStatus(t, resp, http.StatusUnprocessableEntity)
}

func TestStatusTransitionsOverAPI(t *testing.T) {
	base := NewTestClient(t)
	admin := base.AsAdmin()

	user, pass := base.RegisterUser(t, "status-user")

	category := admin.CreateCategory(t, uniqueName("status-category"))
	venue := admin.CreateVenue(t, uniqueName("status-venue"), 10)
	event := admin.CreateEvent(t, "Status Checks", venue.ID, category.ID)

	asUser := base.As(user.Email, pass)
	resp := asUser.RegisterAttendee(t, event.ID, user.ID, nil)
	expectStatus(t, resp, http.StatusCreated)
	attendee := decode[models.Attendee](t, resp)

	// registered -> attended skips confirmation and is rejected
	resp = admin.UpdateAttendeeStatus(t, attendee.ID, models.StatusAttended)
	expectStatus(t, resp, http.StatusUnprocessableEntity)

	// no_show before the event ends is rejected
	resp = admin.UpdateAttendeeStatus(t, attendee.ID, models.StatusNoShow)
	expectStatus(t, resp, http.StatusUnprocessableEntity)

	// Another user cannot touch the registration
	stranger, strangerPass := base.RegisterUser(t, "status-stranger")
	asStranger := base.As(stranger.Email, strangerPass)
	resp = asStranger.UpdateAttendeeStatus(t, attendee.ID, models.StatusConfirmed)
	expectStatus(t, resp, http.StatusForbidden)

	// The owner can
	resp = asUser.UpdateAttendeeStatus(t, attendee.ID, models.StatusConfirmed)
	expectStatus(t, resp, http.StatusOK)
}

func TestRegisterUnknownUserNotFound(t *testing.T) {
	base := NewTestClient(t)
	admin := base.AsAdmin()

	category := admin.CreateCategory(t, uniqueName("ghost-category"))
	venue := admin.CreateVenue(t, uniqueName("ghost-venue"), 10)
	event := admin.CreateEvent(t, "Ghost Checks", venue.ID, category.ID)

	// Admins may register other users, but the user has to exist
	resp := admin.RegisterAttendee(t, event.ID, "00000000-0000-0000-0000-000000000000", nil)
	expectStatus(t, resp, http.StatusNotFound)
}

func TestZeroCapacityVenue(t *testing.T) {
	base := NewTestClient(t)
	admin := base.AsAdmin()

	user, pass := base.RegisterUser(t, "zero-user")

	category := admin.CreateCategory(t, uniqueName("zero-category"))
	venue := admin.CreateVenue(t, uniqueName("zero-venue"), 0)
	event := admin.CreateEvent(t, "Zero Capacity", venue.ID, category.ID)

	// A zero-capacity venue is a valid catalog entry that admits nobody
	asUser := base.As(user.Email, pass)
	resp := asUser.RegisterAttendee(t, event.ID, user.ID, nil)
	expectStatus(t, resp, http.StatusConflict)
}
