package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/logger"
	"eventhorizon/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// respondError maps service errors onto HTTP statuses with a stable
// machine-readable code. Unexpected errors are logged and hidden behind 500.
func (h *Handlers) respondError(c *gin.Context, err error, logMsg string) {
	status := apperrors.HTTPStatus(err)
	code := apperrors.Code(err)

	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error(logMsg, "error", err)
		c.JSON(status, gin.H{"error": "Internal server error", "code": code})
		return
	}

	body := gin.H{"error": err.Error(), "code": code}

	var vErr *apperrors.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		body["fields"] = vErr.Fields
	}

	c.JSON(status, body)
}

// pathInt извлекает числовой path-параметр
func pathInt(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid " + name,
			"code":  "VALIDATION_ERROR",
		})
		return 0, false
	}
	return id, true
}
