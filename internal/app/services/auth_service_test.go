package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/auth"
)

type fakeAuthUsers struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]*models.User
	byEmail map[string]*models.User
}

func newFakeAuthUsers() *fakeAuthUsers {
	return &fakeAuthUsers{
		byID:    map[int64]*models.User{},
		byEmail: map[string]*models.User{},
	}
}

func (f *fakeAuthUsers) Create(_ context.Context, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	f.byID[stored.ID] = &stored
	f.byEmail[stored.Email] = &stored
	return stored.ID, nil
}

func (f *fakeAuthUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (f *fakeAuthUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (f *fakeAuthUsers) UpdateProfile(_ context.Context, id int64, name, bio string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Name = name
	user.Bio = bio
	return nil
}

func newAuthFixture() (AuthService, *fakeAuthUsers) {
	users := newFakeAuthUsers()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	return NewAuthService(users, jwtService), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "jane@example.com", registered.User.Email)
	assert.Equal(t, models.RoleStudent, registered.User.Role)

	loggedIn, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, loggedIn.Token)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	req := dto.RegisterRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "secret123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}
