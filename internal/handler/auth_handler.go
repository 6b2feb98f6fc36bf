package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commu-board/auth-service/internal/dto"
	"github.com/commu-board/auth-service/internal/middleware"
	"github.com/commu-board/auth-service/internal/service"
	"github.com/commu-board/auth-service/pkg/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp handles account registration
// POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if valid, msg := req.ValidateEmail(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_EMAIL", msg))
		return
	}

	result, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// SignIn handles credential login
// POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	pair, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(pair))
}

// SignOut clears the caller's refresh session
// POST /api/v1/auth/signout (guarded)
func (h *AuthHandler) SignOut(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("UNAUTHENTICATED", "missing authenticated user"))
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"signed_out": true}))
}

// Refresh rotates the refresh token and returns a new pair. Identity is
// taken from the presented refresh token itself, so an expired access
// token does not block refreshing.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	claims, err := h.authService.ValidateAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	pair, err := h.authService.RefreshTokens(c.Request.Context(), claims.UserID, req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(pair))
}

// SendVerificationCode mails a fresh email verification code
// POST /api/v1/auth/email/send-code
func (h *AuthHandler) SendVerificationCode(c *gin.Context) {
	var req dto.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.authService.SendVerificationCode(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"sent": true}))
}

// VerifyEmail consumes a pending verification code
// POST /api/v1/auth/email/verify
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"verified": true}))
}
