package token

import (
	"testing"
	"time"

	"github.com/commu-board/auth-service/internal/apperr"
	"github.com/commu-board/auth-service/internal/domain"
)

var testPayload = domain.Claims{
	UserID: 7,
	Email:  "alice@example.com",
	Role:   domain.RoleClient,
}

func TestIssuePair(t *testing.T) {
	issuer := NewIssuer("secret", 0, 0)

	pair, err := issuer.IssuePair(testPayload)
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens must differ")
	}
	if pair.ExpiresIn != int64(time.Hour.Seconds()) {
		t.Errorf("expected default 1h expiry, got %d", pair.ExpiresIn)
	}

	for _, tok := range []string{pair.AccessToken, pair.RefreshToken} {
		claims, err := issuer.Verify(tok)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if got := claims.Payload(); got != testPayload {
			t.Errorf("payload round-trip mismatch: %+v", got)
		}
	}
}

func TestTokensAreUniquePerIssue(t *testing.T) {
	issuer := NewIssuer("secret", 0, 0)

	a, err := issuer.IssuePair(testPayload)
	if err != nil {
		t.Fatalf("first IssuePair failed: %v", err)
	}
	b, err := issuer.IssuePair(testPayload)
	if err != nil {
		t.Fatalf("second IssuePair failed: %v", err)
	}
	if a.RefreshToken == b.RefreshToken {
		t.Error("two pairs minted back to back must not share a refresh token")
	}
}

func TestVerifyRejections(t *testing.T) {
	issuer := NewIssuer("secret", 0, 0)

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		if !apperr.IsKind(err, apperr.KindUnauthenticated) {
			t.Fatalf("expected Unauthenticated, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewIssuer("different-secret", 0, 0)
		tok, err := other.Issue(testPayload, time.Hour)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		_, err = issuer.Verify(tok)
		if !apperr.IsKind(err, apperr.KindUnauthenticated) {
			t.Fatalf("expected Unauthenticated, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := issuer.Issue(testPayload, -time.Minute)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		_, err = issuer.Verify(tok)
		if !apperr.IsKind(err, apperr.KindUnauthenticated) {
			t.Fatalf("expected Unauthenticated, got %v", err)
		}
	})
}
