package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taxibook/internal/pkg/jwt"
	"taxibook/internal/pkg/response"
)

// JWTAuth validates the bearer credential and stores the verified
// identity on the context. It accepts the standard Authorization header
// and, for compatibility with older clients, a raw "token" header.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			response.AbortDetail(c, http.StatusUnauthorized, "Missing token")
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortDetail(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set("customer_id", claims.CustomerID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		// not a bearer scheme, the legacy header may still be set
	}
	return strings.TrimSpace(c.GetHeader("token"))
}
