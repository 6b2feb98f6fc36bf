package domain

import (
	"time"
)

// Role represents user role
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// User represents a community account
type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	NickName           string     `json:"nick_name"`
	PasswordHash       string     `json:"-"` // Never serialize password
	Role               Role       `json:"role"`
	IsVerified         bool       `json:"is_verified"`
	VerificationCode   *string    `json:"-"` // Set while email verification is pending
	HashedRefreshToken *string    `json:"-"` // Set while a refresh token is outstanding
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"-"` // Non-nil marks a soft-deleted account
}

// Deleted reports whether the account is soft-deleted.
func (u *User) Deleted() bool {
	return u.DeletedAt != nil
}

// TokenPair represents access and refresh tokens. Superseded, never
// mutated, on every rotation.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until access token expires
}

// Claims represents the payload embedded in a signed token. Once decoded
// from a client-presented token it is untrusted input and must be checked
// against current account state before use.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// AuthorRef is the narrow projection other subsystems (boards, comments)
// attach to their records instead of the full account.
type AuthorRef struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	NickName string `json:"nick_name"`
	Role     Role   `json:"role"`
}

// Author returns the account's author reference.
func (u *User) Author() AuthorRef {
	return AuthorRef{
		ID:       u.ID,
		Email:    u.Email,
		NickName: u.NickName,
		Role:     u.Role,
	}
}
