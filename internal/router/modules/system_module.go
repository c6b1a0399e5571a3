package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/hrushireddy/tyredetect-api/internal/interface/http"
)

// SystemModule wires the unauthenticated service endpoints.
type SystemModule struct {
	Handler *handlers.SystemHandler
}

func NewSystemModule(h *handlers.SystemHandler) *SystemModule {
	return &SystemModule{Handler: h}
}

func (m *SystemModule) Register(root, api *gin.RouterGroup) {
	root.GET("/", m.Handler.Index)
	root.GET("/health", m.Handler.Health)
	root.GET("/test-inference-connection", m.Handler.InferenceCheck)
}
