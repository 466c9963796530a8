package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/auth"
	"github.com/emres/learnhub/internal/pkg/logger"
	"github.com/emres/learnhub/internal/pkg/validation"
)

type authUserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, bio string) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	users      authUserStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(users authUserStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		users:      users,
		jwtService: jwtService,
	}
}

// Register creates a new student account and signs them in
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.ValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", apperrors.ErrValidationFailed)
	}
	if !validation.ValidName(req.Name) {
		return nil, fmt.Errorf("%w: name must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.NameMinLength, validation.NameMaxLength)
	}
	if len(req.Password) < validation.PasswordMinLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters",
			apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hashed,
		Role:     models.RoleStudent,
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error registering user: %w", err)
	}

	created, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading registered user: %w", err)
	}

	logger.Info().Int64("userID", id).Str("email", email).Msg("User registered")

	return s.issueToken(created)
}

// Login verifies credentials and issues a token
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GetProfile returns the user's own profile
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile edits the user's display name and bio
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := user.Name
	if req.Name != nil {
		if !validation.ValidName(*req.Name) {
			return nil, fmt.Errorf("%w: name must be between %d and %d characters",
				apperrors.ErrValidationFailed, validation.NameMinLength, validation.NameMaxLength)
		}
		name = strings.TrimSpace(*req.Name)
	}
	bio := user.Bio
	if req.Bio != nil {
		bio = *req.Bio
	}

	if err := s.users.UpdateProfile(ctx, userID, name, bio); err != nil {
		return nil, err
	}

	return s.users.GetByID(ctx, userID)
}

func (s *authServiceImpl) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &dto.AuthResponse{
		Token:     token,
		ExpiresIn: int64(expiresIn),
		User:      dto.ToUserResponse(user),
	}, nil
}
