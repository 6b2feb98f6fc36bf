package service

import (
	"context"
	"time"

	"github.com/commu-board/auth-service/internal/apperr"
	"github.com/commu-board/auth-service/internal/domain"
	"github.com/commu-board/auth-service/internal/dto"
	"github.com/commu-board/auth-service/internal/email"
	"github.com/commu-board/auth-service/internal/repository"
	"github.com/commu-board/auth-service/internal/security"
	"github.com/commu-board/auth-service/internal/token"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// SignUp registers a new account
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SignUpResponse, error)
	// SignIn authenticates credentials and issues a token pair
	SignIn(ctx context.Context, req *dto.SignInRequest) (*domain.TokenPair, error)
	// SignOut clears the stored refresh-token hash
	SignOut(ctx context.Context, userID int64) error
	// RefreshTokens rotates the refresh token and issues a new pair
	RefreshTokens(ctx context.Context, userID int64, refreshToken string) (*domain.TokenPair, error)
	// CreateTokensSocialLogin issues a pair for an externally
	// authenticated identity
	CreateTokensSocialLogin(ctx context.Context, userID int64, email string, role domain.Role) (*domain.TokenPair, error)
	// SendVerificationCode generates, stores, and mails a code
	SendVerificationCode(ctx context.Context, emailAddr string) error
	// VerifyEmail consumes a pending verification code
	VerifyEmail(ctx context.Context, emailAddr, code string) error
	// ValidateAccessToken validates an access token and returns its claims
	ValidateAccessToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}

// authService implements AuthService
type authService struct {
	store  repository.UserStore
	sender email.Sender
	hasher *security.PasswordHasher
	issuer *token.Issuer
}

// NewAuthService creates a new AuthService. The returned service never
// leaks raw collaborator errors: everything without a kind crosses the
// boundary as Internal.
func NewAuthService(
	store repository.UserStore,
	sender email.Sender,
	hasher *security.PasswordHasher,
	issuer *token.Issuer,
) AuthService {
	return &authBoundary{next: &authService{
		store:  store,
		sender: sender,
		hasher: hasher,
		issuer: issuer,
	}}
}

// SignUp registers a new account with role CLIENT, unverified
func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SignUpResponse, error) {
	existing, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("%s is already registered", req.Email)
	}

	existing, err = s.store.FindByNickName(ctx, req.NickName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("%s is already registered", req.NickName)
	}

	if req.Password != req.VerifyPassword {
		return nil, apperr.InvalidArgument("passwords do not match")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		Email:        req.Email,
		NickName:     req.NickName,
		PasswordHash: hash,
		Role:         domain.RoleClient,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.SignUpResponse{Email: user.Email}, nil
}

// SignIn authenticates credentials and issues a token pair
func (s *authService) SignIn(ctx context.Context, req *dto.SignInRequest) (*domain.TokenPair, error) {
	user, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("no account for %s", req.Email)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, apperr.Unauthenticated("invalid email or password")
	}

	return s.issueAndStore(ctx, domain.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
}

// SignOut clears the stored refresh-token hash. Idempotent: a second
// call is a no-op.
func (s *authService) SignOut(ctx context.Context, userID int64) error {
	return s.store.ClearRefreshTokenHash(ctx, userID)
}

// RefreshTokens rotates the refresh token: the presented token must
// match the single stored hash, and the new pair's hash overwrites it,
// so the old refresh token becomes unusable before its expiry.
func (s *authService) RefreshTokens(ctx context.Context, userID int64, refreshToken string) (*domain.TokenPair, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	if user.HashedRefreshToken == nil || !s.hasher.VerifyToken(refreshToken, *user.HashedRefreshToken) {
		return nil, apperr.InvalidArgument("validation failed")
	}

	return s.issueAndStore(ctx, domain.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
}

// CreateTokensSocialLogin issues a pair for an identity the social-login
// flow has already authenticated. No password check is performed.
func (s *authService) CreateTokensSocialLogin(ctx context.Context, userID int64, emailAddr string, role domain.Role) (*domain.TokenPair, error) {
	if err := s.store.SetVerification(ctx, userID, nil, true); err != nil {
		return nil, err
	}
	return s.issueAndStore(ctx, domain.Claims{
		UserID: userID,
		Email:  emailAddr,
		Role:   role,
	})
}

// SendVerificationCode generates a fresh code, stores it on the account
// (overwriting any pending one), and mails it.
func (s *authService) SendVerificationCode(ctx context.Context, emailAddr string) error {
	user, err := s.store.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("no account for %s", emailAddr)
	}

	code, err := security.GenerateVerificationCode()
	if err != nil {
		return err
	}
	if err := s.store.SetVerification(ctx, user.ID, &code, user.IsVerified); err != nil {
		return err
	}

	return s.sender.Send(ctx, user.Email, code)
}

// VerifyEmail consumes a pending code: a match sets verified and clears
// the code; a mismatch (or no pending code) leaves state untouched so
// the client may retry.
func (s *authService) VerifyEmail(ctx context.Context, emailAddr, code string) error {
	user, err := s.store.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("no account for %s", emailAddr)
	}

	if user.VerificationCode == nil || *user.VerificationCode != code {
		return apperr.InvalidArgument("invalid verification code")
	}

	return s.store.SetVerification(ctx, user.ID, nil, true)
}

// ValidateAccessToken validates an access token and returns its claims
func (s *authService) ValidateAccessToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	claims, err := s.issuer.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	payload := claims.Payload()
	return &payload, nil
}

// issueAndStore mints a pair and persists the hash of its refresh token,
// overwriting any prior hash. The refresh token is never stored in
// plaintext.
func (s *authService) issueAndStore(ctx context.Context, claims domain.Claims) (*domain.TokenPair, error) {
	pair, err := s.issuer.IssuePair(claims)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.HashToken(pair.RefreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetRefreshTokenHash(ctx, claims.UserID, hash); err != nil {
		return nil, err
	}
	return pair, nil
}
