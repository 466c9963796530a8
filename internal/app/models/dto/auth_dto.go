package dto

import "github.com/emres/learnhub/internal/app/models"

// RegisterRequest represents the payload for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Jane Doe"`
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn" example:"604800"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID                      int64           `json:"id" example:"1"`
	Name                    string          `json:"name" example:"Jane Doe"`
	Email                   string          `json:"email" example:"jane@example.com"`
	Role                    models.RoleType `json:"role" example:"STUDENT"`
	IsApproved              bool            `json:"isApproved" example:"false"`
	AllocatedTeacherAccount *string         `json:"allocatedTeacherAccount,omitempty"`
	Bio                     string          `json:"bio,omitempty"`
}

// UpdateProfileRequest represents the payload for profile updates
type UpdateProfileRequest struct {
	Name *string `json:"name,omitempty" example:"Jane D."`
	Bio  *string `json:"bio,omitempty" example:"Math enthusiast"`
}

// ToUserResponse maps a user model to its public representation
func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                      u.ID,
		Name:                    u.Name,
		Email:                   u.Email,
		Role:                    u.Role,
		IsApproved:              u.IsApproved,
		AllocatedTeacherAccount: u.AllocatedTeacherAccount,
		Bio:                     u.Bio,
	}
}
