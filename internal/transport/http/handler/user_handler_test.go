package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crud-api/internal/core/auth"
	"crud-api/internal/domain"
	"crud-api/internal/service"
)

type mapReader map[string]*domain.User

func (m mapReader) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := m[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

// identityGuard 只往请求上下文写身份，不设 gin key
func identityGuard(id auth.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id.UID != "" {
			c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		}
		c.Next()
	}
}

func newUserEngine(id auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	users := service.NewUserService(nil, mapReader{
		"u-1": {ID: "u-1", Email: "a@x.com", PasswordHash: "h", Role: domain.RoleUser},
		"u-2": {ID: "u-2", Email: "b@x.com", PasswordHash: "h", Role: domain.RoleUser},
	})
	r := gin.New()
	NewUserHandler(users, identityGuard(id)).Mount(r.Group("/api"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestUserHandler_ViewerFromContextIdentity(t *testing.T) {
	r := newUserEngine(auth.Identity{UID: "u-1", Role: "user"})

	w := get(r, "/api/users/me")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = get(r, "/api/users/u-2")
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := newUserEngine(auth.Identity{UID: "root", Role: "admin"})
	w = get(admin, "/api/users/u-2")
	assert.Equal(t, http.StatusOK, w.Code)
	w = get(admin, "/api/users/nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_MissingIdentityIsUnauthorized(t *testing.T) {
	r := newUserEngine(auth.Identity{})

	w := get(r, "/api/users/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}
