// Package handler exposes the HTTP surface over the service layer.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commu-board/auth-service/internal/apperr"
	"github.com/commu-board/auth-service/pkg/response"
)

// statusOf maps an error kind to its HTTP status
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a service error in the response envelope. Internal
// failures never leak their cause to the client.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := apperr.KindOf(err)
	msg := err.Error()
	if kind == apperr.KindInternal {
		msg = "internal server error"
	}
	c.JSON(statusOf(err), response.Error(kind.String(), msg))
}

// writeBindError renders a request-binding failure
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(apperr.KindInvalidArgument.String(), err.Error()))
}
