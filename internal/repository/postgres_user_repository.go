package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/commu-board/auth-service/internal/domain"
)

const userColumns = `id, email, nick_name, password_hash, role, is_verified,
	verification_code, hashed_refresh_token, created_at, updated_at, deleted_at`

// PostgresUserStore implements UserStore using PostgreSQL
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a new PostgresUserStore
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

// Create inserts a new account and assigns its ID
func (r *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, nick_name, password_hash, role, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.pool.QueryRow(ctx, query,
		user.Email,
		user.NickName,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
}

// FindByID retrieves an account by ID, skipping soft-deleted rows
func (r *PostgresUserStore) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// FindByEmail retrieves an account by email, skipping soft-deleted rows
func (r *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// FindByNickName retrieves an account by nickname, skipping soft-deleted rows
func (r *PostgresUserStore) FindByNickName(ctx context.Context, nickName string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE nick_name = $1 AND deleted_at IS NULL
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, nickName))
}

// Update persists mutable profile fields
func (r *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = $2, nick_name = $3, password_hash = $4, role = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`
	user.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.NickName,
		user.PasswordHash,
		user.Role,
		user.UpdatedAt,
	)
	return err
}

// SetRefreshTokenHash overwrites the stored refresh-token hash
func (r *PostgresUserStore) SetRefreshTokenHash(ctx context.Context, id int64, hash string) error {
	query := `
		UPDATE users
		SET hashed_refresh_token = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	_, err := r.pool.Exec(ctx, query, id, hash)
	return err
}

// ClearRefreshTokenHash removes the stored refresh-token hash
func (r *PostgresUserStore) ClearRefreshTokenHash(ctx context.Context, id int64) error {
	query := `
		UPDATE users
		SET hashed_refresh_token = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// SetVerification stores the pending code and verified flag in one write
func (r *PostgresUserStore) SetVerification(ctx context.Context, id int64, code *string, verified bool) error {
	query := `
		UPDATE users
		SET verification_code = $2, is_verified = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	_, err := r.pool.Exec(ctx, query, id, code, verified)
	return err
}

// SoftDelete marks the account as deleted
func (r *PostgresUserStore) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE users
		SET deleted_at = NOW(), hashed_refresh_token = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PostgresUserStore) scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.NickName,
		&user.PasswordHash,
		&user.Role,
		&user.IsVerified,
		&user.VerificationCode,
		&user.HashedRefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
