package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// The router here carries no services: every request in these tests must be
// rejected during binding or parameter validation, before a service is hit.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandlers(nil)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/events", h.ListEvents)
		api.POST("/events", h.CreateEvent)
		api.POST("/venues", h.CreateVenue)
		api.GET("/venues/:id", h.GetVenue)
		api.POST("/attendees", h.RegisterAttendee)
		api.PATCH("/attendees/:id/status", h.UpdateAttendeeStatus)
	}
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateEventRejectsMissingFields(t *testing.T) {
	r := setupRouter()

	w := doJSON(r, "POST", "/api/events", map[string]interface{}{
		"title": "No dates",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestCreateVenueRejectsInvalidJSON(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest("POST", "/api/venues", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEventsPaginationValidation(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		name string
		path string
	}{
		{"zero page", "/api/events?page=0"},
		{"negative page", "/api/events?page=-5"},
		{"oversized pageSize", "/api/events?pageSize=500"},
		{"zero pageSize", "/api/events?pageSize=0"},
		{"bad category", "/api/events?category_id=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, "GET", tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateVenueRejectsNegativeCapacity(t *testing.T) {
	r := setupRouter()

	w := doJSON(r, "POST", "/api/venues", map[string]interface{}{
		"name":     "Hall",
		"address":  "1 Main Street",
		"capacity": -1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVenueRejectsNonNumericID(t *testing.T) {
	r := setupRouter()

	w := doJSON(r, "GET", "/api/venues/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestRegisterAttendeeRequiresIDs(t *testing.T) {
	r := setupRouter()

	w := doJSON(r, "POST", "/api/attendees", map[string]interface{}{
		"ticket_id": "t-1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAttendeeStatusRequiresStatus(t *testing.T) {
	r := setupRouter()

	w := doJSON(r, "PATCH", "/api/attendees/a-1/status", map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
