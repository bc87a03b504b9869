package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxibook/internal/pkg/jwt"
	"taxibook/internal/pkg/response"
)

// RequireRole ensures that the authenticated caller has the given role.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.AbortDetail(c, http.StatusUnauthorized, "Role not found in token")
			return
		}

		if role.(string) != requiredRole {
			response.AbortDetail(c, http.StatusForbidden, "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires an admin token.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(jwt.RoleAdmin)
}
