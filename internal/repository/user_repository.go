package repository

import (
	"context"

	"github.com/commu-board/auth-service/internal/domain"
)

// UserStore defines the durable account-record contract. All reads
// exclude soft-deleted rows; lookups return (nil, nil) when no matching
// row exists.
type UserStore interface {
	// Create inserts a new account and assigns its ID.
	Create(ctx context.Context, user *domain.User) error
	// FindByID retrieves an account by ID.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByEmail retrieves an account by email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByNickName retrieves an account by nickname.
	FindByNickName(ctx context.Context, nickName string) (*domain.User, error)
	// Update persists mutable profile fields (email, nickname, password
	// hash, role).
	Update(ctx context.Context, user *domain.User) error
	// SetRefreshTokenHash overwrites the stored refresh-token hash.
	SetRefreshTokenHash(ctx context.Context, id int64, hash string) error
	// ClearRefreshTokenHash removes the stored refresh-token hash.
	ClearRefreshTokenHash(ctx context.Context, id int64) error
	// SetVerification stores the pending code (or clears it with nil)
	// and the verified flag in one write.
	SetVerification(ctx context.Context, id int64, code *string, verified bool) error
	// SoftDelete marks the account as deleted; subsequent reads skip it.
	SoftDelete(ctx context.Context, id int64) error
}
