package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hrushireddy/tyredetect-api/internal/inference"
)

// SystemHandler serves the unauthenticated service index, health check, and
// the inference-service connectivity probe.
type SystemHandler struct {
	Inference *inference.Client
	Logger    *logrus.Logger
}

func NewSystemHandler(inf *inference.Client, logger *logrus.Logger) *SystemHandler {
	return &SystemHandler{Inference: inf, Logger: logger}
}

// Index GET /
func (h *SystemHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Tyre Detection API Server",
		"status":  "Running",
		"endpoints": gin.H{
			"health":    "/health",
			"signup":    "/api/signup",
			"login":     "/api/login",
			"profile":   "/api/profile",
			"predict":   "/predict",
			"history":   "/api/history",
			"analytics": "/api/analytics",
			"stats":     "/stats",
		},
	})
}

// Health GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// InferenceCheck GET /test-inference-connection
func (h *SystemHandler) InferenceCheck(c *gin.Context) {
	body, err := h.Inference.Health(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Warn("inference connectivity check failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to connect to prediction service",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":            "Connection successful",
		"inferenceResponse": body,
	})
}
