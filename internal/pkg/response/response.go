package response

import "github.com/gin-gonic/gin"

// Detail writes the error envelope all endpoints share.
func Detail(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, gin.H{"detail": detail})
}

// AbortDetail is Detail for middleware: it also stops the handler chain.
func AbortDetail(c *gin.Context, statusCode int, detail string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"detail": detail})
}
