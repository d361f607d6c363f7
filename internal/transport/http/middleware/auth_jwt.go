package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"crud-api/internal/core/auth"
	resp "crud-api/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// TokenVerifier 由 *auth.JWTer 实现
type TokenVerifier interface {
	Parse(token string) (*auth.Claims, error)
}

// AuthJWT 缺失、格式错误、签名错误、过期都返回同一个 401
func AuthJWT(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, resp.MsgUnauthorized))
			return
		}
		claims, err := v.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, resp.MsgUnauthorized))
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), auth.Identity{UID: claims.UID, Role: claims.Role}))
		c.Next()
	}
}

// RequireRole 需挂在 AuthJWT 之后
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(http.StatusForbidden, resp.MsgForbidden))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}
