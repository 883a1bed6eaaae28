package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/service"
)

// Context keys set by AuthMiddleware
const (
	contextUserID   = "user_id"
	contextUsername = "username"
	contextClaims   = "claims"
)

// AuthMiddleware validates JWT token and adds user info to context
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, codeInvalidToken, "authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c, codeInvalidToken, "invalid authorization header format")
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			if errors.Is(err, domain.ErrExpiredToken) {
				abortUnauthorized(c, codeTokenExpired, "token has expired")
				return
			}
			abortUnauthorized(c, codeInvalidToken, "invalid token")
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Set(contextUsername, claims.Username)
		c.Set(contextClaims, claims)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// currentUserID returns the authenticated user id. Routes using it sit behind AuthMiddleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(contextUserID)
}
