package response

import (
	"github.com/gin-gonic/gin"
)

// The public API contract is flat JSON: success bodies carry their own
// shape per route and every failure is an object with an "error" string.

// Err writes a JSON error body with the given status.
func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ErrDetails writes a JSON error body with an additional details payload.
func ErrDetails(c *gin.Context, status int, msg string, details any) {
	c.JSON(status, gin.H{"error": msg, "details": details})
}

// AbortErr writes a JSON error body and aborts the handler chain. Used by
// middleware so downstream handlers never run on a failed precondition.
func AbortErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
