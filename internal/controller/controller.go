package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/middleware"
	"github.com/lshigami/qams/internal/service"
	"github.com/rs/zerolog/log"
)

// RespondError writes the JSON error for err, choosing the status from the
// service error taxonomy. Unknown errors become a 500 with a generic message.
func RespondError(c *gin.Context, err error) {
	var stateErr *service.InvalidPaperStateError
	switch {
	case errors.As(err, &stateErr):
		expected := make([]string, len(stateErr.Expected))
		for i, s := range stateErr.Expected {
			expected[i] = string(s)
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error(), Expected: expected})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrDuplicateClaim), errors.Is(err, service.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).
			Str("requestID", middleware.RequestIDFrom(c)).
			Str("path", c.FullPath()).
			Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

// RespondBindError reports a request body or query that failed binding.
func RespondBindError(c *gin.Context, err error) {
	log.Warn().Err(err).Str("path", c.FullPath()).Msg("Failed to bind request")
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}

// ParseIDParam reads a positive numeric path parameter. On failure it writes
// a 400 and returns false.
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// QueryInt reads an optional integer query parameter, using def when absent.
func QueryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " query parameter"})
		return 0, false
	}
	return v, true
}

// CurrentActor returns the authenticated caller. Routes behind middleware.Auth
// always have one; a missing actor is answered with 401.
func CurrentActor(c *gin.Context) (service.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
	}
	return actor, ok
}
