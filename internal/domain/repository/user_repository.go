package repository

import (
	"errors"

	"github.com/hrushireddy/tyredetect-api/internal/domain/entity"
)

// ErrNotFound reports that a lookup matched no row. Callers use it to tell
// an absent record apart from a failing store; any other error is a real
// persistence failure and must not be swallowed.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
}
