package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"eventhorizon/internal/models"

	"github.com/shopspring/decimal"
)

// APIValidator - smoke-проверка работающего API
type APIValidator struct {
	baseURL string
	client  *http.Client

	adminEmail    string
	adminPassword string

	// Данные, накопленные по ходу проверки
	userEmail    string
	userPassword string
	userID       string
	categoryID   int
	venueID      int
	eventID      string
	ticketID     string
	attendeeID   string
}

// NewAPIValidator создает новый валидатор
func NewAPIValidator(baseURL string) *APIValidator {
	return &APIValidator{
		baseURL:       baseURL,
		client:        &http.Client{Timeout: 10 * time.Second},
		adminEmail:    envOr("ADMIN_EMAIL", "admin@eventhorizon.local"),
		adminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// ValidateAll прогоняет сценарий по всем основным endpoints
func (v *APIValidator) ValidateAll() error {
	log.Println("Начинаю проверку API...")

	if v.adminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD env var is required (seeded admin credentials)")
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"health", v.validateHealth},
		{"auth", v.validateAuth},
		{"catalog", v.validateCatalog},
		{"events", v.validateEvents},
		{"tickets", v.validateTickets},
		{"attendees", v.validateAttendees},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s validation failed: %w", step.name, err)
		}
	}

	log.Println("✅ Все endpoints прошли проверку успешно!")
	return nil
}

func (v *APIValidator) validateHealth() error {
	log.Println("Проверяю /health...")

	resp, err := v.request("GET", "/health", nil, "", "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /health: expected 200, got %d", resp.StatusCode)
	}

	log.Println("✅ Health endpoint валиден")
	return nil
}

func (v *APIValidator) validateAuth() error {
	log.Println("Проверяю Auth endpoints...")

	v.userEmail = fmt.Sprintf("validator-%d@eventhorizon.local", time.Now().UnixNano())
	v.userPassword = "validator-pass-1"

	reqBody := models.RegisterUserRequest{
		Email:     v.userEmail,
		Password:  v.userPassword,
		FirstName: "Validator",
		LastName:  "User",
	}

	resp, err := v.request("POST", "/auth/register", reqBody, "", "")
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		return fmt.Errorf("POST /auth/register: expected 201, got %d", resp.StatusCode)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		resp.Body.Close()
		return fmt.Errorf("POST /auth/register: failed to decode response: %w", err)
	}
	resp.Body.Close()

	if user.ID == "" {
		return fmt.Errorf("POST /auth/register: expected non-empty ID")
	}
	v.userID = user.ID

	// Логин с только что созданными учетными данными
	loginReq := models.LoginRequest{Email: v.userEmail, Password: v.userPassword}
	resp, err = v.request("POST", "/auth/login", loginReq, "", "")
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST /auth/login: expected 200, got %d", resp.StatusCode)
	}

	log.Println("✅ Auth endpoints валидны")
	return nil
}

func (v *APIValidator) validateCatalog() error {
	log.Println("Проверяю Categories и Venues endpoints...")

	// Справочники создает админ
	catReq := models.CreateCategoryRequest{Name: fmt.Sprintf("validator-category-%d", time.Now().UnixNano())}
	resp, err := v.request("POST", "/api/categories", catReq, v.adminEmail, v.adminPassword)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		return fmt.Errorf("POST /api/categories: expected 201, got %d", resp.StatusCode)
	}

	var category models.Category
	if err := json.NewDecoder(resp.Body).Decode(&category); err != nil {
		resp.Body.Close()
		return fmt.Errorf("POST /api/categories: failed to decode response: %w", err)
	}
	resp.Body.Close()
	v.categoryID = category.ID

	venueReq := models.CreateVenueRequest{
		Name:     fmt.Sprintf("validator-venue-%d", time.Now().UnixNano()),
		Address:  "1 Validation Street",
		Capacity: 10,
	}
	resp, err = v.request("POST", "/api/venues", venueReq, v.adminEmail, v.adminPassword)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		return fmt.Errorf("POST /api/venues: expected 201, got %d", resp.StatusCode)
	}

	var venue models.Venue
	if err := json.NewDecoder(resp.Body).Decode(&venue); err != nil {
		resp.Body.Close()
		return fmt.Errorf("POST /api/venues: failed to decode response: %w", err)
	}
	resp.Body.Close()
	v.venueID = venue.ID

	// Обычный пользователь не может создавать справочники
	resp, err = v.request("POST", "/api/categories", catReq, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		return fmt.Errorf("POST /api/categories as user: expected 403, got %d", resp.StatusCode)
	}

	log.Println("✅ Categories и Venues endpoints валидны")
	return nil
}

func (v *APIValidator) validateEvents() error {
	log.Println("Проверяю Events endpoints...")

	start := time.Now().Add(24 * time.Hour)
	eventReq := models.CreateEventRequest{
		Title:      "Validator Event",
		StartDate:  start,
		EndDate:    start.Add(2 * time.Hour),
		VenueID:    v.venueID,
		CategoryID: v.categoryID,
	}

	// Обычному пользователю создавать события запрещено
	resp, err := v.request("POST", "/api/events", eventReq, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		return fmt.Errorf("POST /api/events as user: expected 403, got %d", resp.StatusCode)
	}

	resp, err = v.request("POST", "/api/events", eventReq, v.adminEmail, v.adminPassword)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		return fmt.Errorf("POST /api/events: expected 201, got %d", resp.StatusCode)
	}

	var event models.Event
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		resp.Body.Close()
		return fmt.Errorf("POST /api/events: failed to decode response: %w", err)
	}
	resp.Body.Close()

	if event.ID == "" {
		return fmt.Errorf("POST /api/events: expected non-empty ID")
	}
	v.eventID = event.ID

	// GET /api/events
	resp, err = v.request("GET", "/api/events", nil, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/events: expected 200, got %d", resp.StatusCode)
	}

	// GET /api/events/active
	resp, err = v.request("GET", "/api/events/active", nil, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/events/active: expected 200, got %d", resp.StatusCode)
	}

	// GET /api/events/:id
	resp, err = v.request("GET", "/api/events/"+v.eventID, nil, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/events/:id: expected 200, got %d", resp.StatusCode)
	}

	log.Println("✅ Events endpoints валидны")
	return nil
}

func (v *APIValidator) validateTickets() error {
	log.Println("Проверяю Tickets endpoints...")

	ticketReq := models.CreateTicketRequest{
		EventID:  v.eventID,
		Name:     "Standard",
		Price:    decimal.NewFromInt(25),
		Quantity: 5,
	}

	resp, err := v.request("POST", "/api/tickets", ticketReq, v.adminEmail, v.adminPassword)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		return fmt.Errorf("POST /api/tickets: expected 201, got %d", resp.StatusCode)
	}

	var ticket models.Ticket
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		resp.Body.Close()
		return fmt.Errorf("POST /api/tickets: failed to decode response: %w", err)
	}
	resp.Body.Close()
	v.ticketID = ticket.ID

	// GET /api/events/:id/tickets
	resp, err = v.request("GET", "/api/events/"+v.eventID+"/tickets", nil, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/events/:id/tickets: expected 200, got %d", resp.StatusCode)
	}

	log.Println("✅ Tickets endpoints валидны")
	return nil
}

func (v *APIValidator) validateAttendees() error {
	log.Println("Проверяю Attendees endpoints...")

	regReq := models.RegisterAttendeeRequest{
		EventID:  v.eventID,
		UserID:   v.userID,
		TicketID: &v.ticketID,
	}

	resp, err := v.request("POST", "/api/attendees", regReq, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		return fmt.Errorf("POST /api/attendees: expected 201, got %d", resp.StatusCode)
	}

	var attendee models.Attendee
	if err := json.NewDecoder(resp.Body).Decode(&attendee); err != nil {
		resp.Body.Close()
		return fmt.Errorf("POST /api/attendees: failed to decode response: %w", err)
	}
	resp.Body.Close()
	v.attendeeID = attendee.ID

	// Повторная регистрация должна дать конфликт
	resp, err = v.request("POST", "/api/attendees", regReq, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		return fmt.Errorf("duplicate POST /api/attendees: expected 409, got %d", resp.StatusCode)
	}

	// PATCH /api/attendees/:id/status -> confirmed
	statusReq := models.UpdateAttendeeStatusRequest{Status: models.StatusConfirmed}
	resp, err = v.request("PATCH", "/api/attendees/"+v.attendeeID+"/status", statusReq, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("PATCH /api/attendees/:id/status: expected 200, got %d", resp.StatusCode)
	}

	// GET /api/attendees/user/:id
	resp, err = v.request("GET", "/api/attendees/user/"+v.userID, nil, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/attendees/user/:id: expected 200, got %d", resp.StatusCode)
	}

	// GET /api/attendees/event/:id/stats (статистика доступна организатору и админу)
	resp, err = v.request("GET", "/api/attendees/event/"+v.eventID+"/stats", nil, v.adminEmail, v.adminPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/attendees/event/:id/stats: expected 200, got %d", resp.StatusCode)
	}

	// PATCH /api/attendees/:id/cancel
	resp, err = v.request("PATCH", "/api/attendees/"+v.attendeeID+"/cancel", nil, v.userEmail, v.userPassword)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("PATCH /api/attendees/:id/cancel: expected 200, got %d", resp.StatusCode)
	}

	log.Println("✅ Attendees endpoints валидны")
	return nil
}

func (v *APIValidator) request(method, path string, body interface{}, email, password string) (*http.Response, error) {
	var req *http.Request
	var err error

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		req, err = http.NewRequest(method, v.baseURL+path, bytes.NewBuffer(jsonBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(method, v.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
	}

	if email != "" {
		req.SetBasicAuth(email, password)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	return resp, nil
}

// RunValidation запускает проверку API
func RunValidation() {
	baseURL := envOr("API_BASE_URL", "http://localhost:8080")

	validator := NewAPIValidator(baseURL)
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("❌ Проверка не пройдена: %v", err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
