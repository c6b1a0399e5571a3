package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that can register its routes.
// Routes live on one of two groups: the /api group or the engine root
// (predict/stats/health are historically top-level).
type Module interface {
	Register(root, api *gin.RouterGroup)
}
