package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hrushireddy/tyredetect-api/internal/domain/repository"
	"github.com/hrushireddy/tyredetect-api/pkg/helpers"
	"github.com/hrushireddy/tyredetect-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the Authorization bearer token and resolves its subject to
// a live user record. It sets userID, userName, and userEmail in the Gin
// context on success; every protected route runs behind it.
func Auth(users repository.UserRepository, jwtm *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || header == "Bearer null" {
			response.AbortErr(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			response.AbortErr(c, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := jwtm.Parse(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.AbortErr(c, http.StatusUnauthorized, "Token expired, please log in again")
				return
			}
			response.AbortErr(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		u, err := users.GetByID(claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortErr(c, http.StatusUnauthorized, "User not found")
				return
			}
			response.AbortErr(c, http.StatusInternalServerError, "Server error")
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set("userName", u.Name)
		c.Set("userEmail", u.Email)
		c.Next()
	}
}
