package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/commu-board/auth-service/internal/apperr"
	"github.com/commu-board/auth-service/internal/domain"
	"github.com/commu-board/auth-service/internal/dto"
	"github.com/commu-board/auth-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthService returns canned results per operation
type fakeAuthService struct {
	signUpResp *dto.SignUpResponse
	signUpErr  error
	signInPair *domain.TokenPair
	signInErr  error
	verifyErr  error
}

func (f *fakeAuthService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SignUpResponse, error) {
	return f.signUpResp, f.signUpErr
}
func (f *fakeAuthService) SignIn(ctx context.Context, req *dto.SignInRequest) (*domain.TokenPair, error) {
	return f.signInPair, f.signInErr
}
func (f *fakeAuthService) SignOut(ctx context.Context, userID int64) error { return nil }
func (f *fakeAuthService) RefreshTokens(ctx context.Context, userID int64, refreshToken string) (*domain.TokenPair, error) {
	return f.signInPair, f.signInErr
}
func (f *fakeAuthService) CreateTokensSocialLogin(ctx context.Context, userID int64, email string, role domain.Role) (*domain.TokenPair, error) {
	return f.signInPair, f.signInErr
}
func (f *fakeAuthService) SendVerificationCode(ctx context.Context, emailAddr string) error {
	return f.verifyErr
}
func (f *fakeAuthService) VerifyEmail(ctx context.Context, emailAddr, code string) error {
	return f.verifyErr
}
func (f *fakeAuthService) ValidateAccessToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	return &domain.Claims{UserID: 1}, nil
}

var _ service.AuthService = (*fakeAuthService)(nil)

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	r := gin.New()
	h := NewAuthHandler(svc)
	r.POST("/signup", h.SignUp)
	r.POST("/signin", h.SignIn)
	r.POST("/email/verify", h.VerifyEmail)
	return r
}

func TestSignUpStatusMapping(t *testing.T) {
	validReq := dto.SignUpRequest{
		Email:          "alice@example.com",
		NickName:       "alice",
		Password:       "password123",
		VerifyPassword: "password123",
	}

	t.Run("created", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{signUpResp: &dto.SignUpResponse{Email: "alice@example.com"}})
		w := postJSON(t, r, "/signup", validReq)

		if w.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d (%s)", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"email":"alice@example.com"`) {
			t.Errorf("expected email-only projection, got %s", w.Body.String())
		}
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{signUpErr: apperr.Conflict("already registered")})
		w := postJSON(t, r, "/signup", validReq)

		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "CONFLICT") {
			t.Errorf("expected CONFLICT code, got %s", w.Body.String())
		}
	})

	t.Run("binding failure maps to 400", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{})
		w := postJSON(t, r, "/signup", gin.H{"email": "not-an-email"})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("internal failure masks the cause", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{signUpErr: apperr.Internal("internal error", errors.New("pq: disk full"))})
		w := postJSON(t, r, "/signup", validReq)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
		if strings.Contains(w.Body.String(), "disk full") {
			t.Error("internal cause leaked to the client")
		}
	})
}

func TestSignInStatusMapping(t *testing.T) {
	req := dto.SignInRequest{Email: "alice@example.com", Password: "password123"}

	t.Run("ok returns the pair", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{signInPair: &domain.TokenPair{
			AccessToken:  "a",
			RefreshToken: "r",
			ExpiresIn:    3600,
		}})
		w := postJSON(t, r, "/signin", req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("unknown email maps to 404", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{signInErr: apperr.NotFound("no account")})
		w := postJSON(t, r, "/signin", req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("bad password maps to 401", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{signInErr: apperr.Unauthenticated("invalid email or password")})
		w := postJSON(t, r, "/signin", req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestVerifyEmailStatusMapping(t *testing.T) {
	t.Run("code mismatch maps to 400", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{verifyErr: apperr.InvalidArgument("invalid verification code")})
		w := postJSON(t, r, "/email/verify", dto.VerifyEmailRequest{
			Email: "alice@example.com",
			Code:  "12345",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("non-numeric code is rejected by binding", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{})
		w := postJSON(t, r, "/email/verify", gin.H{
			"email": "alice@example.com",
			"code":  "abcde",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}
