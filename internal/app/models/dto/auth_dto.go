package dto

import (
	"time"

	"github.com/internlink/internlink/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a user registration request.
// Role decides which profile row is created alongside the account:
// INTERN gets an intern profile, EMPLOYER gets an employer profile and
// a pending organization approval.
type RegisterRequest struct {
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=8"`
	Name        string          `json:"name" binding:"required"`
	UserType    models.RoleType `json:"userType" binding:"required"`
	CompanyName string          `json:"companyName,omitempty"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password reset flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	UserType       string     `json:"userType" enums:"INTERN,EMPLOYER,ADMIN"`
	Status         string     `json:"status" enums:"active,banned"`
	ProfilePicture *string    `json:"profilePicture,omitempty"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// SessionUserResponse is the identity served by the mock-mode session
// endpoints. Mock identities carry uuid string IDs, not database IDs.
type SessionUserResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role" enums:"INTERN,EMPLOYER,ADMIN"`
	Profile any    `json:"profile,omitempty"`
}

// UpdateSessionProfileRequest renames the signed-in session account
type UpdateSessionProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		UserType:       string(user.UserType),
		Status:         string(user.Status),
		ProfilePicture: user.ProfilePicture,
		LastLoginAt:    user.LastLoginAt,
		CreatedAt:      user.CreatedAt,
	}
}
