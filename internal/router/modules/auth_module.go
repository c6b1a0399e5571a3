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

// AuthModule wires signup/login, the recovery flow, and the profile route.
// Public: POST /api/signup, /api/login, /api/forgot-password,
// /api/verify-otp, /api/reset-password
// Protected: GET /api/profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, users repository.UserRepository, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AuthModule) Register(root, api *gin.RouterGroup) {
	rdb := container.GetRedis()

	signupLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	forgotLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	otpLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	api.POST("/signup", signupLimiter, m.Handler.Signup)
	api.POST("/login", loginLimiter, m.Handler.Login)
	api.POST("/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	api.POST("/verify-otp", otpLimiter, m.Handler.VerifyOTP)
	api.POST("/reset-password", resetLimiter, m.Handler.ResetPassword)

	auth := api.Group("/")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.GET("/profile", m.Handler.Profile)
	}
}
