// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/cardwise/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration. The
// reward preference is optional and defaults to no preference.
type RegisterRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Name             string `json:"name" binding:"required,min=1,max=100"`
	Password         string `json:"password" binding:"required,min=8"`
	TermsAccepted    bool   `json:"terms_accepted" binding:"required"`
	RewardPreference string `json:"reward_preference,omitempty"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest represents the request body for forgot password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents the request body for password reset.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest represents the request body for profile update.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name             *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	RewardPreference *string `json:"reward_preference,omitempty"`
	MonthlyDigest    *bool   `json:"monthly_digest,omitempty"`
}

// DeleteAccountRequest represents the request body for account deletion.
type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation,omitempty"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	RewardPreference string    `json:"reward_preference"`
	MonthlyDigest    bool      `json:"monthly_digest"`
	CreatedAt        time.Time `json:"created_at"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:               user.ID.String(),
		Email:            user.Email,
		Name:             user.Name,
		RewardPreference: string(user.RewardPreference),
		MonthlyDigest:    user.MonthlyDigest,
		CreatedAt:        user.CreatedAt,
	}
}
