package handler

import "github.com/propmanager/backend/internal/application/identity"

// =====================
// Auth Request DTOs
// =====================

// SignupRequest represents the request body for self-registration
type SignupRequest struct {
	Email     string `json:"email" binding:"required,max=254"`
	Password  string `json:"password" binding:"required,max=128"`
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Phone     string `json:"phone" binding:"omitempty,max=50"`
}

// LoginRequest represents the request body for user login.
// Presence of both fields is checked by the auth service.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateProfileRequest is a partial profile update
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required,max=128"`
}

// =====================
// Auth Response DTOs
// =====================

// VerifyResponse is returned for a valid access token
type VerifyResponse struct {
	Valid bool               `json:"valid"`
	User  *identity.UserInfo `json:"user"`
}

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}
