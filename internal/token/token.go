// Package token signs and validates the access/refresh JWT pair. The
// issuer is the only place tokens are minted so TTL policy stays
// centralized.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/commu-board/auth-service/internal/apperr"
	"github.com/commu-board/auth-service/internal/domain"
)

// Claims embeds the registered claims plus the payload carried by every
// token: {id, email, role}.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// Payload returns the domain claims payload.
func (c *Claims) Payload() domain.Claims {
	return domain.Claims{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// Issuer signs HS256 tokens with an injected secret and fixed TTLs.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer creates an Issuer. Zero TTLs fall back to 1h access / 7d
// refresh.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL == 0 {
		accessTTL = time.Hour
	}
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}

// Issue signs a token carrying the payload with the given ttl. Each
// token gets a unique jti, so two tokens minted in the same second never
// collide.
func (i *Issuer) Issue(p domain.Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: p.UserID,
		Email:  p.Email,
		Role:   p.Role,
	})
	return t.SignedString(i.secret)
}

// IssuePair mints an access and a refresh token for the payload. This is
// the system's only token-issuance entry point.
func (i *Issuer) IssuePair(p domain.Claims) (*domain.TokenPair, error) {
	access, err := i.Issue(p, i.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := i.Issue(p, i.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(i.accessTTL.Seconds()),
	}, nil
}

// Verify parses and validates a token. Expired tokens and signature
// mismatches fail Unauthenticated.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthenticated("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthenticated("token expired")
		}
		return nil, apperr.Unauthenticated("invalid token")
	}
	if !t.Valid {
		return nil, apperr.Unauthenticated("invalid token")
	}
	return claims, nil
}
