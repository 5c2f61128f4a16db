package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventhorizon/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUserContextRoundTrip(t *testing.T) {
	ctx := ContextWithUser(context.Background(), "user-1", []string{models.RoleUser, models.RoleAdmin})

	id, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)

	assert.True(t, HasRole(ctx, models.RoleAdmin))
	assert.True(t, HasRole(ctx, models.RoleUser))
	assert.False(t, HasRole(ctx, "organizer"))

	_, ok = UserIDFromContext(context.Background())
	assert.False(t, ok)
	assert.False(t, HasRole(context.Background(), models.RoleAdmin))
}

func TestHashPasswordIsStable(t *testing.T) {
	h1 := HashPassword("secret-password")
	h2 := HashPassword("secret-password")

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // sha256 hex
	assert.NotEqual(t, h1, HashPassword("other-password"))
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var seen string
	r.GET("/ping", RequestID(), func(c *gin.Context) {
		seen, _ = c.Request.Context().Value("request_id").(string)
		c.Status(http.StatusOK)
	})

	// Без заголовка генерируется новый идентификатор
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))

	// Переданный клиентом заголовок сохраняется
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestBasicAuthRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", BasicAuth(nil, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	asUser := func(roles []string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Request = c.Request.WithContext(ContextWithUser(c.Request.Context(), "user-1", roles))
		}
	}

	r.GET("/admin", asUser([]string{models.RoleUser}), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin-ok", asUser([]string{models.RoleUser, models.RoleAdmin}), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin-ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
