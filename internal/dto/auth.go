package dto

import (
	"regexp"
	"time"

	"github.com/commu-board/auth-service/internal/domain"
)

// emailRegex is a simplified RFC 5322 check applied on top of gin's
// binding validation.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// SignUpRequest represents a registration request
type SignUpRequest struct {
	Email          string `json:"email" binding:"required,email"`
	NickName       string `json:"nick_name" binding:"required,min=2,max=30"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	VerifyPassword string `json:"verify_password" binding:"required"`
}

// ValidateEmail validates email format more strictly
func (r *SignUpRequest) ValidateEmail() (bool, string) {
	if !emailRegex.MatchString(r.Email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// SignUpResponse is the only projection returned on registration: no
// hash, no internal fields.
type SignUpResponse struct {
	Email string `json:"email"`
}

// SignInRequest represents a login request
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token presented for rotation
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SendCodeRequest asks for a verification code to be mailed
type SendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyEmailRequest presents a verification code
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=5,numeric"`
}

// UpdateNickNameRequest changes the display handle
type UpdateNickNameRequest struct {
	NickName string `json:"nick_name" binding:"required,min=2,max=30"`
}

// UpdatePasswordRequest changes the password
type UpdatePasswordRequest struct {
	Password       string `json:"password" binding:"required,min=8,max=72"`
	VerifyPassword string `json:"verify_password" binding:"required"`
}

// DeleteUserRequest confirms account deletion with the current password
type DeleteUserRequest struct {
	Password string `json:"password" binding:"required"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	NickName   string `json:"nick_name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	CreatedAt  string `json:"created_at"`
}

// NewUserResponse converts a User to its response projection
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		NickName:   user.NickName,
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
	}
}
