package handlers

import (
	"net/http"

	"eventhorizon/internal/models"

	"github.com/gin-gonic/gin"
)

// Ticket handlers

// CreateTicket - POST /api/tickets
// Создать тип билета для события (организатор или админ)
func (h *Handlers) CreateTicket(c *gin.Context) {
	var req models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	ticket, err := h.services.Tickets.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create ticket")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// GetTicket - GET /api/tickets/:id
// Получить тип билета
func (h *Handlers) GetTicket(c *gin.Context) {
	ticket, err := h.services.Tickets.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get ticket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// ListTickets - GET /api/tickets
// Получить все типы билетов
func (h *Handlers) ListTickets(c *gin.Context) {
	tickets, err := h.services.Tickets.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list tickets")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// UpdateTicket - PUT /api/tickets/:id
// Обновить тип билета (организатор или админ)
func (h *Handlers) UpdateTicket(c *gin.Context) {
	var req models.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	ticket, err := h.services.Tickets.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err, "Failed to update ticket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// DeleteTicket - DELETE /api/tickets/:id
// Удалить тип билета, регистрации сохраняются без ссылки на билет
func (h *Handlers) DeleteTicket(c *gin.Context) {
	if err := h.services.Tickets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete ticket")
		return
	}

	c.Status(http.StatusNoContent)
}
