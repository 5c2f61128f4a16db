package handlers

import (
	"net/http"
	"strconv"

	"eventhorizon/internal/models"

	"github.com/gin-gonic/gin"
)

// Event handlers

// CreateEvent - POST /api/events
// Создать событие, организатором становится текущий пользователь
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	event, err := h.services.Events.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvent - GET /api/events/:id
// Получить событие
func (h *Handlers) GetEvent(c *gin.Context) {
	event, err := h.services.Events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get event")
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListEvents - GET /api/events
// Получить список событий с фильтрами по тексту, дате и категории
func (h *Handlers) ListEvents(c *gin.Context) {
	// Get pagination parameters
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	// Validate pagination parameters
	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1", "code": "VALIDATION_ERROR"})
		return
	}

	if pageSize < 1 || pageSize > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 100", "code": "VALIDATION_ERROR"})
		return
	}

	categoryID := 0
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id", "code": "VALIDATION_ERROR"})
			return
		}
		categoryID = id
	}

	filter := models.EventFilter{
		Query:      c.Query("query"),
		Date:       c.Query("date"),
		CategoryID: categoryID,
		Page:       page,
		PageSize:   pageSize,
	}

	events, err := h.services.Events.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, events)
}

// ListActiveEvents - GET /api/events/active
// Получить еще не завершившиеся события (кешируется в Valkey)
func (h *Handlers) ListActiveEvents(c *gin.Context) {
	events, err := h.services.Events.ListActive(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list active events")
		return
	}

	c.JSON(http.StatusOK, events)
}

// UpdateEvent - PUT /api/events/:id
// Обновить событие (организатор или админ)
func (h *Handlers) UpdateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	event, err := h.services.Events.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent - DELETE /api/events/:id
// Удалить событие вместе с билетами и регистрациями (организатор или админ)
func (h *Handlers) DeleteEvent(c *gin.Context) {
	if err := h.services.Events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete event")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListEventTickets - GET /api/events/:id/tickets
// Получить типы билетов события
func (h *Handlers) ListEventTickets(c *gin.Context) {
	tickets, err := h.services.Tickets.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to list event tickets")
		return
	}

	c.JSON(http.StatusOK, tickets)
}
