package service

import (
	"context"

	"github.com/commu-board/auth-service/internal/apperr"
	"github.com/commu-board/auth-service/internal/domain"
	"github.com/commu-board/auth-service/internal/dto"
	"github.com/commu-board/auth-service/internal/repository"
	"github.com/commu-board/auth-service/internal/security"
)

// UserService defines the interface for profile operations
type UserService interface {
	// GetUser retrieves the account projection by ID
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	// UpdateNickName changes the display handle
	UpdateNickName(ctx context.Context, userID int64, req *dto.UpdateNickNameRequest) error
	// UpdatePassword rehashes and stores a new password
	UpdatePassword(ctx context.Context, userID int64, req *dto.UpdatePasswordRequest) error
	// DeleteUser soft-deletes the account after a password check
	DeleteUser(ctx context.Context, userID int64, req *dto.DeleteUserRequest) error
}

// userService implements UserService
type userService struct {
	store  repository.UserStore
	hasher *security.PasswordHasher
}

// NewUserService creates a new UserService
func NewUserService(store repository.UserStore, hasher *security.PasswordHasher) UserService {
	return &userBoundary{next: &userService{store: store, hasher: hasher}}
}

// GetUser retrieves the account projection by ID
func (s *userService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// UpdateNickName changes the display handle
func (s *userService) UpdateNickName(ctx context.Context, userID int64, req *dto.UpdateNickNameRequest) error {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}

	taken, err := s.store.FindByNickName(ctx, req.NickName)
	if err != nil {
		return err
	}
	if taken != nil && taken.ID != userID {
		return apperr.Conflict("nickname already in use")
	}

	user.NickName = req.NickName
	return s.store.Update(ctx, user)
}

// UpdatePassword rehashes and stores a new password
func (s *userService) UpdatePassword(ctx context.Context, userID int64, req *dto.UpdatePasswordRequest) error {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}

	if req.Password != req.VerifyPassword {
		return apperr.InvalidArgument("passwords do not match")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.store.Update(ctx, user)
}

// DeleteUser soft-deletes the account after a password check. The
// refresh-token hash is cleared with the row so the session dies with
// the account.
func (s *userService) DeleteUser(ctx context.Context, userID int64, req *dto.DeleteUserRequest) error {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return apperr.InvalidArgument("password does not match")
	}

	return s.store.SoftDelete(ctx, userID)
}

// userBoundary applies the same unknown-failure conversion as
// authBoundary.
type userBoundary struct {
	next UserService
}

func (b *userBoundary) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := b.next.GetUser(ctx, userID)
	return user, apperr.Internalize(err)
}

func (b *userBoundary) UpdateNickName(ctx context.Context, userID int64, req *dto.UpdateNickNameRequest) error {
	return apperr.Internalize(b.next.UpdateNickName(ctx, userID, req))
}

func (b *userBoundary) UpdatePassword(ctx context.Context, userID int64, req *dto.UpdatePasswordRequest) error {
	return apperr.Internalize(b.next.UpdatePassword(ctx, userID, req))
}

func (b *userBoundary) DeleteUser(ctx context.Context, userID int64, req *dto.DeleteUserRequest) error {
	return apperr.Internalize(b.next.DeleteUser(ctx, userID, req))
}
