package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hrushireddy/tyredetect-api/internal/container"
	"github.com/hrushireddy/tyredetect-api/internal/domain/repository"
	handlers "github.com/hrushireddy/tyredetect-api/internal/interface/http"
	"github.com/hrushireddy/tyredetect-api/internal/interface/middleware"
	"github.com/hrushireddy/tyredetect-api/pkg/helpers"
)

// AnalysisModule wires the authenticated inspection routes.
// /predict and /stats sit at the engine root; history and analytics live
// under /api. All of them require a bearer token.
type AnalysisModule struct {
	Handler *handlers.AnalysisHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewAnalysisModule(h *handlers.AnalysisHandler, users repository.UserRepository, jwt *helpers.JWTManager) *AnalysisModule {
	return &AnalysisModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AnalysisModule) Register(root, api *gin.RouterGroup) {
	auth := middleware.Auth(m.Users, m.JWT)

	// Image classification is expensive upstream; cap it per user but let
	// private-network callers (smoke tests, probes) through.
	predictLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute,
		middleware.KeyByUserID(), middleware.AllowPrivateIP())

	root.POST("/predict", auth, predictLimiter, m.Handler.Predict)
	root.GET("/stats", auth, m.Handler.Stats)

	api.GET("/history", auth, m.Handler.History)
	api.GET("/analytics", auth, m.Handler.Analytics)
}
