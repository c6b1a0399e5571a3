package entity

import (
	"time"
)

// ResetState tracks where a user sits in the password-recovery flow.
// The final "verified" stage is carried by the short-lived reset token
// itself, so only the code-issued stage needs to be persisted.
type ResetState string

const (
	ResetStateNone       ResetState = "none"
	ResetStateCodeIssued ResetState = "code_issued"
)

// User is the aggregate root for the account domain
// Passwords are stored as bcrypt hashes in PasswordHash.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string

	ResetState      ResetState
	ResetCode       string
	ResetCodeExpiry time.Time

	CreatedAt time.Time
}

// HasPendingResetCode reports whether a reset code was issued and has not
// yet expired at the given instant.
func (u *User) HasPendingResetCode(now time.Time) bool {
	return u.ResetState == ResetStateCodeIssued && u.ResetCode != "" && now.Before(u.ResetCodeExpiry)
}

// ClearResetCode drops any pending recovery state.
func (u *User) ClearResetCode() {
	u.ResetState = ResetStateNone
	u.ResetCode = ""
	u.ResetCodeExpiry = time.Time{}
}
