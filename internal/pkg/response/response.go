package response

import "github.com/gin-gonic/gin"

// Success writes the payload as-is. Public endpoints return plain JSON
// documents rather than an envelope so the frontend can consume them
// directly.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

// Error writes the uniform error body {"error": <message>} with the given
// HTTP status. Internal error details never go through here; callers log
// them and pass a generic message.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
