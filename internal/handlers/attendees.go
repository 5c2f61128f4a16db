package handlers

import (
	"net/http"

	"eventhorizon/internal/models"

	"github.com/gin-gonic/gin"
)

// Attendee handlers

// RegisterAttendee - POST /api/attendees
// Зарегистрировать участника на событие, опционально с типом билета
func (h *Handlers) RegisterAttendee(c *gin.Context) {
	var req models.RegisterAttendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	attendee, err := h.services.Attendees.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to register attendee")
		return
	}

	c.JSON(http.StatusCreated, attendee)
}

// GetAttendee - GET /api/attendees/:id
// Получить регистрацию
func (h *Handlers) GetAttendee(c *gin.Context) {
	attendee, err := h.services.Attendees.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get attendee")
		return
	}

	c.JSON(http.StatusOK, attendee)
}

// UpdateAttendeeStatus - PATCH /api/attendees/:id/status
// Перевести регистрацию в новый статус
func (h *Handlers) UpdateAttendeeStatus(c *gin.Context) {
	var req models.UpdateAttendeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	attendee, err := h.services.Attendees.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err, "Failed to update attendee status")
		return
	}

	c.JSON(http.StatusOK, attendee)
}

// CancelAttendee - PATCH /api/attendees/:id/cancel
// Отменить регистрацию, вернув билет в продажу
func (h *Handlers) CancelAttendee(c *gin.Context) {
	attendee, err := h.services.Attendees.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to cancel registration")
		return
	}

	c.JSON(http.StatusOK, attendee)
}

// ListUserAttendees - GET /api/attendees/user/:id
// Получить регистрации пользователя
func (h *Handlers) ListUserAttendees(c *gin.Context) {
	attendees, err := h.services.Attendees.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to list user registrations")
		return
	}

	c.JSON(http.StatusOK, attendees)
}

// ListEventAttendees - GET /api/attendees/event/:id
// Получить участников события (организатор или админ)
func (h *Handlers) ListEventAttendees(c *gin.Context) {
	attendees, err := h.services.Attendees.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to list event attendees")
		return
	}

	c.JSON(http.StatusOK, attendees)
}

// GetEventAttendeeStats - GET /api/attendees/event/:id/stats
// Получить статистику регистраций и выручку по событию
func (h *Handlers) GetEventAttendeeStats(c *gin.Context) {
	stats, err := h.services.Attendees.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get attendee stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
