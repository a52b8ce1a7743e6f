package middleware

import (
	"context"
	"net/http"
	"strings"

	"mock-interview-backend/internal/delivery/http/response"
	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/auth"
	"mock-interview-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// OptionalAuth identifies the caller when a valid token is presented and lets
// anonymous requests through. A present but invalid token is rejected.
func OptionalAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" || !tokens.Enabled() {
			c.Next()
			return
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			security.DefaultLogger().LogInvalidToken(
				c.ClientIP(), c.Request.UserAgent(), c.GetString("RequestID"), err.Error())
			response.Error(c, http.StatusUnauthorized, "Invalid token", "Invalid token")
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyUserID, userID))
		c.Next()
	}
}

// RequireAuth rejects requests OptionalAuth did not identify.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeyUserID)) == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	// 1. Try to get token from Header
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	// 2. Try to get token from Cookie
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}
