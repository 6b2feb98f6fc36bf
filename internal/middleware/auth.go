package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/commu-board/auth-service/internal/apperr"
	"github.com/commu-board/auth-service/internal/domain"
	"github.com/commu-board/auth-service/internal/service"
	"github.com/commu-board/auth-service/pkg/response"
)

const (
	// ContextKeyUserID is the context key for the authenticated user's ID
	ContextKeyUserID = "user_id"
	// ContextKeyClaims is the context key for the full token claims
	ContextKeyClaims = "claims"

	bearerPrefix = "Bearer "
)

// RequireAuth validates the Authorization bearer token and stores the
// authenticated claims in the request context.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(
				apperr.KindUnauthenticated.String(), "missing bearer token"))
			return
		}

		claims, err := auth.ValidateAccessToken(c.Request.Context(), strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(
				apperr.KindOf(err).String(), err.Error()))
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from gin context
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// GetClaims returns the authenticated token claims from gin context
func GetClaims(c *gin.Context) (*domain.Claims, bool) {
	v, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*domain.Claims)
	return claims, ok
}
