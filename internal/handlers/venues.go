package handlers

import (
	"net/http"

	"eventhorizon/internal/models"

	"github.com/gin-gonic/gin"
)

// Venue handlers

// CreateVenue - POST /api/venues
// Создать площадку (только для админа)
func (h *Handlers) CreateVenue(c *gin.Context) {
	var req models.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	venue, err := h.services.Venues.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create venue")
		return
	}

	c.JSON(http.StatusCreated, venue)
}

// GetVenue - GET /api/venues/:id
// Получить площадку
func (h *Handlers) GetVenue(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	venue, err := h.services.Venues.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to get venue")
		return
	}

	c.JSON(http.StatusOK, venue)
}

// ListVenues - GET /api/venues
// Получить список площадок
func (h *Handlers) ListVenues(c *gin.Context) {
	venues, err := h.services.Venues.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list venues")
		return
	}

	c.JSON(http.StatusOK, venues)
}

// UpdateVenue - PUT /api/venues/:id
// Обновить площадку (только для админа)
func (h *Handlers) UpdateVenue(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	var req models.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	venue, err := h.services.Venues.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err, "Failed to update venue")
		return
	}

	c.JSON(http.StatusOK, venue)
}

// DeleteVenue - DELETE /api/venues/:id
// Удалить площадку, если на ней нет событий (только для админа)
func (h *Handlers) DeleteVenue(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	if err := h.services.Venues.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete venue")
		return
	}

	c.Status(http.StatusNoContent)
}
