package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commu-board/auth-service/internal/dto"
	"github.com/commu-board/auth-service/internal/middleware"
	"github.com/commu-board/auth-service/internal/service"
	"github.com/commu-board/auth-service/pkg/response"
)

// UserHandler handles profile HTTP requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the caller's account projection
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("UNAUTHENTICATED", "missing authenticated user"))
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.NewUserResponse(user)))
}

// UpdateNickName changes the caller's display handle
// PATCH /api/v1/users/me/nickname
func (h *UserHandler) UpdateNickName(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("UNAUTHENTICATED", "missing authenticated user"))
		return
	}

	var req dto.UpdateNickNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.userService.UpdateNickName(c.Request.Context(), userID, &req); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"nick_name": req.NickName}))
}

// UpdatePassword rehashes and stores a new password for the caller
// PATCH /api/v1/users/me/password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("UNAUTHENTICATED", "missing authenticated user"))
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), userID, &req); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"updated": true}))
}

// Delete soft-deletes the caller's account
// DELETE /api/v1/users/me
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("UNAUTHENTICATED", "missing authenticated user"))
		return
	}

	var req dto.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID, &req); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}
