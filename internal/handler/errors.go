package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"gamebase/backend/internal/auth"
	"gamebase/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error  string            `json:"error" example:"An error message"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrForbidden):
		if _, ok := auth.CurrentUserID(c); !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
			return
		}
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You are not allowed to do this"})
	case errors.Is(err, service.ErrInvitationFull):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Invitation is full"})
	case errors.Is(err, service.ErrAlreadyJoined):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Already joined this invitation"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	default:
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// idParam parses a positive numeric path parameter, answering 400 when it
// is malformed.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// currentUserID is for routes behind AuthMiddleware.
func currentUserID(c *gin.Context) uint {
	id, _ := auth.CurrentUserID(c)
	return id
}
