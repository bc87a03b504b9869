package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taxibook/internal/pkg/response"
)

// DriverTokenAuth protects the driver payment-report endpoint with a
// static shared token. The upstream system has no per-driver accounts, so
// a single credential configured at startup is the narrowest gate we can
// put in front of this state-mutating endpoint.
func DriverTokenAuth(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			response.AbortDetail(c, http.StatusForbidden, "Driver updates disabled")
			return
		}

		got := c.GetHeader("X-Driver-Token")
		if got == "" {
			if h := c.GetHeader("Authorization"); h != "" {
				parts := strings.SplitN(h, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					got = strings.TrimSpace(parts[1])
				}
			}
		}
		if got == "" {
			response.AbortDetail(c, http.StatusUnauthorized, "Missing driver token")
			return
		}

		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			response.AbortDetail(c, http.StatusUnauthorized, "Invalid driver token")
			return
		}

		c.Next()
	}
}
