package application

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrushireddy/tyredetect-api/internal/domain/entity"
	"github.com/hrushireddy/tyredetect-api/internal/domain/repository"
	"github.com/hrushireddy/tyredetect-api/pkg/helpers"
)

type memUserRepo struct {
	users  map[string]*entity.User // by id
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(u *entity.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	r.nextID++
	u.ID = "user-" + strconv.Itoa(r.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeMailer struct {
	sent []string // recipients
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, text, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func newTestAuthService(repo *memUserRepo, mail *fakeMailer) *AuthService {
	jwtm := helpers.NewJWTManager("test-secret", 168*time.Hour, 15*time.Minute)
	return NewAuthService(repo, jwtm, mail, nil, time.Hour, true)
}

func TestSignupThenLogin(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo, &fakeMailer{})
	ctx := context.Background()

	u, token, err := svc.Signup(ctx, "Alice", "a@x.com", "pw123456")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "Alice", u.Name)
	assert.NotEmpty(t, u.ID)

	u2, token2, err := svc.Login(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)
	require.NotEmpty(t, token2)
	assert.Equal(t, u.ID, u2.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo, &fakeMailer{})
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Alice", "a@x.com", "pw123456")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "Other Alice", "a@x.com", "different")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo, &fakeMailer{})
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Alice", "a@x.com", "pw123456")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@x.com", "pw123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRequestResetUnknownEmail(t *testing.T) {
	repo := newMemUserRepo()
	mail := &fakeMailer{}
	svc := newTestAuthService(repo, mail)

	// Generic success: no error, nothing persisted, no mail attempted.
	err := svc.RequestReset(context.Background(), "ghost@x.com")
	require.NoError(t, err)
	assert.Empty(t, mail.sent)
	assert.Empty(t, repo.users)
}

func TestRequestResetIssuesCodeAndMails(t *testing.T) {
	repo := newMemUserRepo()
	mail := &fakeMailer{}
	svc := newTestAuthService(repo, mail)
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, "Alice", "a@x.com", "pw123456")
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset(ctx, "a@x.com"))
	assert.Equal(t, []string{"a@x.com"}, mail.sent)

	stored := repo.users[u.ID]
	assert.Equal(t, entity.ResetStateCodeIssued, stored.ResetState)
	assert.Len(t, stored.ResetCode, 6)
	assert.True(t, stored.ResetCodeExpiry.After(time.Now()))
}

func TestRequestResetMailFailureSurfaces(t *testing.T) {
	repo := newMemUserRepo()
	mail := &fakeMailer{err: errors.New("smtp down")}
	svc := newTestAuthService(repo, mail)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Alice", "a@x.com", "pw123456")
	require.NoError(t, err)

	err = svc.RequestReset(ctx, "a@x.com")
	require.Error(t, err)
}

func TestVerifyResetCode(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo, &fakeMailer{})
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, "Alice", "a@x.com", "pw123456")
	require.NoError(t, err)
	require.NoError(t, svc.RequestReset(ctx, "a@x.com"))
	code := repo.users[u.ID].ResetCode

	_, err = svc.VerifyResetCode(ctx, "a@x.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)

	token, err := svc.VerifyResetCode(ctx, "a@x.com", code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestVerifyResetCodeExpired(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo, &fakeMailer{})
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, "Alice", "a@x.com", "pw123456")
	require.NoError(t, err)
	require.NoError(t, svc.RequestReset(ctx, "a@x.com"))

	// Push the expiry into the past; the matching code must still fail.
	stored := repo.users[u.ID]
	stored.ResetCodeExpiry = time.Now().Add(-time.Minute)

	_, err = svc.VerifyResetCode(ctx, "a@x.com", stored.ResetCode)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestCompleteResetFlow(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo, &fakeMailer{})
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, "Alice", "a@x.com", "old-password")
	require.NoError(t, err)
	require.NoError(t, svc.RequestReset(ctx, "a@x.com"))
	code := repo.users[u.ID].ResetCode

	token, err := svc.VerifyResetCode(ctx, "a@x.com", code)
	require.NoError(t, err)

	require.NoError(t, svc.CompleteReset(ctx, token, "new-password"))

	// Code cleared, old password dead, new password works.
	stored := repo.users[u.ID]
	assert.Equal(t, entity.ResetStateNone, stored.ResetState)
	assert.Empty(t, stored.ResetCode)

	_, _, err = svc.Login(ctx, "a@x.com", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "a@x.com", "new-password")
	assert.NoError(t, err)
}

func TestCompleteResetBadToken(t *testing.T) {
	repo := newMemUserRepo()
	svc := newTestAuthService(repo, &fakeMailer{})

	err := svc.CompleteReset(context.Background(), "not-a-token", "whatever")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

// failingUserRepo simulates a store that is down: every call errors.
type failingUserRepo struct{ err error }

func (r *failingUserRepo) Create(*entity.User) error               { return r.err }
func (r *failingUserRepo) GetByID(string) (*entity.User, error)    { return nil, r.err }
func (r *failingUserRepo) GetByEmail(string) (*entity.User, error) { return nil, r.err }
func (r *failingUserRepo) Update(*entity.User) error               { return r.err }

func TestStoreFailureIsNotMistakenForAbsentUser(t *testing.T) {
	down := errors.New("connection refused")
	jwtm := helpers.NewJWTManager("test-secret", 168*time.Hour, 15*time.Minute)
	svc := NewAuthService(&failingUserRepo{err: down}, jwtm, &fakeMailer{}, nil, time.Hour, true)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "a@x.com", "pw123456")
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	err = svc.RequestReset(ctx, "a@x.com")
	assert.ErrorIs(t, err, down)

	_, err = svc.VerifyResetCode(ctx, "a@x.com", "123456")
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrInvalidOrExpiredCode)

	_, err = svc.GetProfile("user-1")
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrUserNotFound)

	_, _, err = svc.Signup(ctx, "Alice", "a@x.com", "pw123456")
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}
