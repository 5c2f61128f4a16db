package handlers

import (
	"net/http"

	"eventhorizon/internal/models"

	"github.com/gin-gonic/gin"
)

// Auth and user handlers

// RegisterUser - POST /auth/register
// Зарегистрировать нового пользователя
func (h *Handlers) RegisterUser(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	user, err := h.services.Users.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login - POST /auth/login
// Проверить учетные данные пользователя
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	user, err := h.services.Users.Login(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser - GET /api/users/:id
// Получить пользователя с его ролями
func (h *Handlers) GetUser(c *gin.Context) {
	user, err := h.services.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers - GET /api/users
// Получить список пользователей (только для админа)
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUser - DELETE /api/users/:id
// Удалить пользователя со всеми его событиями и регистрациями (только для админа)
func (h *Handlers) DeleteUser(c *gin.Context) {
	if err := h.services.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete user")
		return
	}

	c.Status(http.StatusNoContent)
}

// GrantRole - POST /api/users/:id/roles
// Назначить роль пользователю (только для админа)
func (h *Handlers) GrantRole(c *gin.Context) {
	var req models.GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	roles, err := h.services.Users.GrantRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		h.respondError(c, err, "Failed to grant role")
		return
	}

	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// ListRoles - GET /api/roles
// Получить список всех ролей
func (h *Handlers) ListRoles(c *gin.Context) {
	roles, err := h.services.Users.ListRoles(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list roles")
		return
	}

	c.JSON(http.StatusOK, roles)
}
