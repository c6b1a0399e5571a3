package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager handles generation and validation of bearer tokens. One HMAC
// secret signs both token kinds; they differ only in validity window.
type JWTManager struct {
	Secret     []byte
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

func NewJWTManager(secret string, sessionTTL, resetTTL time.Duration) *JWTManager {
	return &JWTManager{
		Secret:     []byte(secret),
		SessionTTL: sessionTTL,
		ResetTTL:   resetTTL,
	}
}

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a regular login token (7 days by default).
func (m *JWTManager) GenerateSessionToken(userID string) (string, time.Time, error) {
	return m.generate(userID, m.SessionTTL)
}

// GenerateResetToken signs the short-lived token handed out after OTP
// verification; it only authorizes the final reset-password step.
func (m *JWTManager) GenerateResetToken(userID string) (string, time.Time, error) {
	return m.generate(userID, m.ResetTTL)
}

func (m *JWTManager) generate(userID string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Parse validates the token signature and expiry. Expiry failures are
// detectable via errors.Is(err, jwt.ErrTokenExpired).
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
