package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"eventhorizon/internal/cache"
	"eventhorizon/internal/logger"
	"eventhorizon/internal/models"
	"eventhorizon/internal/repository"

	"github.com/gin-gonic/gin"
)

// Ctx keys and helpers for the authenticated user.
// Using unexported type to avoid collisions

type ctxKey string

const (
	userIDKey ctxKey = "user_id"
	rolesKey  ctxKey = "roles"
)

func ContextWithUser(ctx context.Context, userID string, roles []string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, rolesKey, roles)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func RolesFromContext(ctx context.Context) []string {
	v := ctx.Value(rolesKey)
	if v == nil {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}

// HasRole проверяет, есть ли у пользователя из контекста указанная роль
func HasRole(ctx context.Context, role string) bool {
	for _, r := range RolesFromContext(ctx) {
		if r == role {
			return true
		}
	}
	return false
}

// HashPassword возвращает SHA-256 хеш пароля в hex, как он хранится в БД и кеше
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return fmt.Sprintf("%x", hash)
}

// RequestID проставляет каждому запросу идентификатор для трассировки в логах.
// Заголовок клиента уважается, иначе генерируется новый UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = logger.NewRequestID()
		}

		c.Set("request_id", requestID)
		// Строковый ключ совпадает с тем, что читает logger.WithContext
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), "request_id", requestID))
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// CORS middleware для обработки CORS запросов
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// Logger middleware для структурированного логирования запросов
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Записываем время начала
		start := time.Now()

		// Выполняем запрос
		c.Next()

		// Логируем результат
		latency := time.Since(start)
		userID, exists := c.Get("user_id")

		log := logger.Get()
		if requestID := c.GetString("request_id"); requestID != "" {
			log = logger.WithRequestID(requestID)
		}

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if exists {
			logFields = append(logFields, "user_id", userID)
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			log.Error("Request completed with error", logFields...)
		}
	}
}

// Recovery middleware для восстановления после паники с детальным логированием
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Get().Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}

// BasicAuth аутентифицирует пользователя по HTTP Basic Auth, проверяя логин/пароль в кеше Valkey, затем в БД
func BasicAuth(userRepo *repository.UserRepository, valkeyClient *cache.ValkeyClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", "Basic realm=\"Restricted\"")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// По умолчанию используем email как username
		ctx := c.Request.Context()
		passwordHash := HashPassword(password)

		var userID string
		var user *models.User
		var err error

		// Сначала пытаемся найти пользователя в кеше Valkey
		if valkeyClient != nil {
			userID, err = valkeyClient.GetUserIDByAuth(ctx, username, passwordHash)
			if err == nil {
				roles, rErr := userRepo.GetRoles(ctx, userID)
				if rErr == nil {
					authorize(c, userID, roles)
					return
				}
			}
		}

		// Fallback: поиск в базе данных
		user, err = userRepo.GetByEmail(ctx, username)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if user.PasswordHash == "" || passwordHash != user.PasswordHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		roles, err := userRepo.GetRoles(ctx, user.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		// Прогреваем кеш, ошибки кеша не блокируют запрос
		if valkeyClient != nil {
			if cErr := valkeyClient.SetUserAuth(ctx, username, passwordHash, user.ID); cErr != nil {
				logger.Get().Warn("Failed to cache user credentials", "error", cErr)
			}
		}

		authorize(c, user.ID, roles)
	}
}

func authorize(c *gin.Context, userID string, roles []string) {
	c.Set("user_id", userID)
	c.Set("roles", roles)
	c.Request = c.Request.WithContext(ContextWithUser(c.Request.Context(), userID, roles))
	c.Next()
}

// RequireAdmin пропускает дальше только пользователей с ролью admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasRole(c.Request.Context(), models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin role required",
				"code":  "FORBIDDEN",
			})
			return
		}
		c.Next()
	}
}
