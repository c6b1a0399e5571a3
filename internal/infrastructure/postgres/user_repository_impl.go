package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hrushireddy/tyredetect-api/internal/domain/entity"
	"github.com/hrushireddy/tyredetect-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	if u.ResetState == "" {
		u.ResetState = entity.ResetStateNone
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, reset_state)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Name, u.Email, u.PasswordHash, string(u.ResetState))

	return row.Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	return r.getOne(`
		SELECT id, name, email, password_hash, reset_state, reset_code, reset_code_expires_at, created_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getOne(`
		SELECT id, name, email, password_hash, reset_state, reset_code, reset_code_expires_at, created_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) getOne(query string, arg any) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	var (
		state      string
		resetCode  *string
		resetUntil *time.Time
	)
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&state, &resetCode, &resetUntil, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.ResetState = entity.ResetState(state)
	if resetCode != nil {
		u.ResetCode = *resetCode
	}
	if resetUntil != nil {
		u.ResetCodeExpiry = *resetUntil
	}
	return u, nil
}

func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()

	var (
		resetCode  *string
		resetUntil *time.Time
	)
	if u.ResetCode != "" {
		resetCode = &u.ResetCode
	}
	if !u.ResetCodeExpiry.IsZero() {
		resetUntil = &u.ResetCodeExpiry
	}

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3,
		    reset_state = $4, reset_code = $5, reset_code_expires_at = $6
		WHERE id = $7
	`, u.Name, u.Email, u.PasswordHash, string(u.ResetState), resetCode, resetUntil, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
