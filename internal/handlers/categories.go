package handlers

import (
	"net/http"

	"eventhorizon/internal/models"

	"github.com/gin-gonic/gin"
)

// Category handlers

// CreateCategory - POST /api/categories
// Создать категорию (только для админа)
func (h *Handlers) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	category, err := h.services.Categories.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategory - GET /api/categories/:id
// Получить категорию
func (h *Handlers) GetCategory(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	category, err := h.services.Categories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to get category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// ListCategories - GET /api/categories
// Получить список категорий
func (h *Handlers) ListCategories(c *gin.Context) {
	categories, err := h.services.Categories.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// UpdateCategory - PUT /api/categories/:id
// Обновить категорию (только для админа)
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	category, err := h.services.Categories.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory - DELETE /api/categories/:id
// Удалить категорию, если на нее не ссылаются события (только для админа)
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	if err := h.services.Categories.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete category")
		return
	}

	c.Status(http.StatusNoContent)
}
