package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hrushireddy/tyredetect-api/internal/application"
	"github.com/hrushireddy/tyredetect-api/internal/domain/entity"
	"github.com/hrushireddy/tyredetect-api/internal/interface/middleware"
	"github.com/hrushireddy/tyredetect-api/pkg/response"
	"github.com/hrushireddy/tyredetect-api/pkg/validation"
)

// AuthHandler exposes signup/login, profile, and the password-recovery flow.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type resetPasswordRequest struct {
	TempToken   string `json:"tempToken" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func userBody(u *entity.User) gin.H {
	return gin.H{"id": u.ID, "name": u.Name, "email": u.Email}
}

// Signup POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrDetails(c, http.StatusBadRequest, "Please provide all required fields", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Err(c, http.StatusBadRequest, "Email already in use")
			return
		}
		h.Logger.WithError(err).Error("signup failed")
		response.Err(c, http.StatusInternalServerError, "Server error during registration")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"user":    userBody(u),
	})
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrDetails(c, http.StatusBadRequest, "Please provide email and password", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Err(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Err(c, http.StatusInternalServerError, "Server error during login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userBody(u),
	})
}

// ForgotPassword POST /api/forgot-password
// Answers the same generic success whether or not the email exists; only a
// real failure (persistence, mail transport) becomes a 500.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrDetails(c, http.StatusBadRequest, "Please provide an email address", validation.ToDetails(err))
		return
	}

	if err := h.Svc.RequestReset(c.Request.Context(), req.Email); err != nil {
		h.Logger.WithError(err).Error("forgot password failed")
		response.Err(c, http.StatusInternalServerError, "Server error during password reset request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent if email exists"})
}

// VerifyOTP POST /api/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrDetails(c, http.StatusBadRequest, "Please provide email and OTP", validation.ToDetails(err))
		return
	}

	token, err := h.Svc.VerifyResetCode(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		if errors.Is(err, application.ErrInvalidOrExpiredCode) {
			response.Err(c, http.StatusBadRequest, "Invalid or expired OTP")
			return
		}
		h.Logger.WithError(err).Error("OTP verification failed")
		response.Err(c, http.StatusInternalServerError, "Server error during OTP verification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tempToken": token})
}

// ResetPassword POST /api/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrDetails(c, http.StatusBadRequest, "Please provide the reset token and a new password", validation.ToDetails(err))
		return
	}

	if err := h.Svc.CompleteReset(c.Request.Context(), req.TempToken, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidOrExpiredToken):
			response.Err(c, http.StatusBadRequest, "Invalid or expired token")
		case errors.Is(err, application.ErrUserNotFound):
			response.Err(c, http.StatusBadRequest, "User not found")
		default:
			h.Logger.WithError(err).Error("reset password failed")
			response.Err(c, http.StatusInternalServerError, "Server error during password reset")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
}

// Profile GET /api/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		response.Err(c, http.StatusUnauthorized, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userBody(u)})
}
