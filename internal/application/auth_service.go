package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hrushireddy/tyredetect-api/internal/domain/entity"
	repo "github.com/hrushireddy/tyredetect-api/internal/domain/repository"
	"github.com/hrushireddy/tyredetect-api/pkg/helpers"
	"github.com/hrushireddy/tyredetect-api/pkg/mailer"
)

var (
	ErrEmailTaken            = errors.New("email already in use")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidOrExpiredCode  = errors.New("invalid or expired OTP")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
)

// AuthService covers account creation, login, profile lookup and the
// OTP-based password-recovery flow.
type AuthService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Mail        mailer.Sender
	Logger      *logrus.Logger
	OTPTTL      time.Duration
	MailEnabled bool
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, mail mailer.Sender, logger *logrus.Logger, otpTTL time.Duration, mailEnabled bool) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Mail: mail, Logger: logger, OTPTTL: otpTTL, MailEnabled: mailEnabled}
}

// Signup creates the account and immediately issues a session token.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	existing, err := s.Repo.GetByEmail(email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &entity.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.Repo.Create(u); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("create user failed")
		}
		return nil, "", err
	}

	token, _, err := s.JWT.GenerateSessionToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login validates credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, _, err := s.JWT.GenerateSessionToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// RequestReset issues a 6-digit code and emails it. An unknown email is not
// an error: the caller answers with the same generic success either way so
// accounts cannot be enumerated. A failing store or mail transport, by
// contrast, is a real error and must surface to the caller.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	// Overwrites any prior pending code.
	u.ResetState = entity.ResetStateCodeIssued
	u.ResetCode = code
	u.ResetCodeExpiry = time.Now().Add(s.OTPTTL)
	if err := s.Repo.Update(u); err != nil {
		return err
	}

	if !s.MailEnabled {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Warn("mail sending disabled, skipping OTP dispatch")
		}
		return nil
	}
	subject, text, html := mailer.OTPEmail(code, s.OTPTTL.String())
	if err := s.Mail.Send(ctx, u.Email, subject, text, html); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("OTP email dispatch failed")
		}
		return err
	}
	return nil
}

// VerifyResetCode exchanges a valid pending code for a short-lived reset token.
func (s *AuthService) VerifyResetCode(ctx context.Context, email, code string) (string, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrInvalidOrExpiredCode
		}
		return "", err
	}
	if !u.HasPendingResetCode(time.Now()) || u.ResetCode != code {
		return "", ErrInvalidOrExpiredCode
	}
	token, _, err := s.JWT.GenerateResetToken(u.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// CompleteReset validates the short-lived token, replaces the password hash
// and clears the pending code.
func (s *AuthService) CompleteReset(ctx context.Context, resetToken, newPassword string) error {
	claims, err := s.JWT.Parse(resetToken)
	if err != nil {
		return ErrInvalidOrExpiredToken
	}
	u, err := s.Repo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.ClearResetCode()
	if err := s.Repo.Update(u); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("password reset completed")
	}
	return nil
}
