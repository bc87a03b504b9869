package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorLogger logs every request that finished with an error status or
// collected gin errors along the way.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status < 400 && len(c.Errors) == 0 {
			return
		}

		log.Printf(
			"request_error status=%d method=%s path=%s client_ip=%s customer_id=%d role=%s latency=%s errors=%q",
			status,
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			c.GetInt64("customer_id"),
			c.GetString("role"),
			time.Since(start),
			c.Errors.String(),
		)
	}
}
