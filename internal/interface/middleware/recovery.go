package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery converts panics into the JSON error contract. Stack traces are
// included in the body only outside production.
func Recovery(logger *logrus.Logger, env string) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		msg := "Something went wrong"
		if err, ok := recovered.(error); ok {
			msg = err.Error()
		} else if s, ok := recovered.(string); ok {
			msg = s
		}
		stack := string(debug.Stack())
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.Request.URL.Path,
				"panic":      fmt.Sprint(recovered),
			}).Error("panic recovered")
		}
		body := gin.H{"error": msg}
		if env != "production" {
			body["stack"] = stack
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
