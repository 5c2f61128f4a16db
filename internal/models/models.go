package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterUserRequest - модель для регистрации пользователя
type RegisterUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// LoginRequest - модель для входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateCategoryRequest - модель для создания категории
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// CreateVenueRequest - модель для создания площадки
type CreateVenueRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Address     string  `json:"address" binding:"required"`
	Capacity    int     `json:"capacity" binding:"gte=0"`
}

// CreateEventRequest - модель для создания события
type CreateEventRequest struct {
	Title          string    `json:"title" binding:"required"`
	Description    *string   `json:"description,omitempty"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`
	IsRecurring    bool      `json:"is_recurring"`
	RecurrenceRule *string   `json:"recurrence_rule,omitempty"`
	VenueID        int       `json:"venue_id" binding:"required"`
	CategoryID     int       `json:"category_id" binding:"required"`
}

// CreateTicketRequest - модель для создания типа билета
type CreateTicketRequest struct {
	EventID  string          `json:"event_id" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// UpdateTicketRequest - модель для обновления типа билета
type UpdateTicketRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// RegisterAttendeeRequest - модель для регистрации участника на событие
type RegisterAttendeeRequest struct {
	EventID  string  `json:"event_id" binding:"required"`
	UserID   string  `json:"user_id" binding:"required"`
	TicketID *string `json:"ticket_id,omitempty"`
}

// UpdateAttendeeStatusRequest - модель для смены статуса участника
type UpdateAttendeeStatusRequest struct {
	Status AttendeeStatus `json:"status" binding:"required"`
}

// GrantRoleRequest - модель для назначения роли пользователю
type GrantRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// EventFilter - параметры фильтрации списка событий
type EventFilter struct {
	Query      string
	Date       string
	CategoryID int
	Page       int
	PageSize   int
}

// AttendeeStatsResponse - статистика регистраций по событию
type AttendeeStatsResponse struct {
	EventID      string          `json:"event_id"`
	Total        int             `json:"total"`
	Registered   int             `json:"registered"`
	Confirmed    int             `json:"confirmed"`
	Attended     int             `json:"attended"`
	Cancelled    int             `json:"cancelled"`
	NoShow       int             `json:"no_show"`
	TicketsSold  int             `json:"tickets_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}
