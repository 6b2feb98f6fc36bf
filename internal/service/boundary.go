package service

import (
	"context"

	"github.com/commu-board/auth-service/internal/apperr"
	"github.com/commu-board/auth-service/internal/domain"
	"github.com/commu-board/auth-service/internal/dto"
)

// authBoundary is the single unknown-failure adapter: errors that
// already carry a kind pass through unchanged, raw collaborator errors
// become Internal before leaving the service.
type authBoundary struct {
	next AuthService
}

func (b *authBoundary) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SignUpResponse, error) {
	res, err := b.next.SignUp(ctx, req)
	return res, apperr.Internalize(err)
}

func (b *authBoundary) SignIn(ctx context.Context, req *dto.SignInRequest) (*domain.TokenPair, error) {
	pair, err := b.next.SignIn(ctx, req)
	return pair, apperr.Internalize(err)
}

func (b *authBoundary) SignOut(ctx context.Context, userID int64) error {
	return apperr.Internalize(b.next.SignOut(ctx, userID))
}

func (b *authBoundary) RefreshTokens(ctx context.Context, userID int64, refreshToken string) (*domain.TokenPair, error) {
	pair, err := b.next.RefreshTokens(ctx, userID, refreshToken)
	return pair, apperr.Internalize(err)
}

func (b *authBoundary) CreateTokensSocialLogin(ctx context.Context, userID int64, email string, role domain.Role) (*domain.TokenPair, error) {
	pair, err := b.next.CreateTokensSocialLogin(ctx, userID, email, role)
	return pair, apperr.Internalize(err)
}

func (b *authBoundary) SendVerificationCode(ctx context.Context, email string) error {
	return apperr.Internalize(b.next.SendVerificationCode(ctx, email))
}

func (b *authBoundary) VerifyEmail(ctx context.Context, email, code string) error {
	return apperr.Internalize(b.next.VerifyEmail(ctx, email, code))
}

func (b *authBoundary) ValidateAccessToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	claims, err := b.next.ValidateAccessToken(ctx, tokenString)
	return claims, apperr.Internalize(err)
}
