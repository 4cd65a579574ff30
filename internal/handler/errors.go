package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imon025/quizi-backend/internal/response"
	"github.com/imon025/quizi-backend/internal/service"
)

// failFromService maps service-layer errors onto the API error taxonomy.
// Anything unrecognized becomes a 500 without leaking internals.
func failFromService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrInvalidAccessKey):
		response.Fail(c, http.StatusForbidden, response.ErrInvalidAccessKey)
	case errors.Is(err, service.ErrQuizNotStarted):
		response.Fail(c, http.StatusForbidden, response.ErrQuizNotStarted)
	case errors.Is(err, service.ErrQuizEnded):
		response.Fail(c, http.StatusForbidden, response.ErrQuizEnded)
	case errors.Is(err, service.ErrNoQuestions):
		response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
	case errors.Is(err, service.ErrAlreadySubmitted):
		response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
	case errors.Is(err, service.ErrSelfJoinDisabled):
		response.Fail(c, http.StatusForbidden, response.ErrSelfJoinDisabled)
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrSessionAlreadyActive):
		response.Fail(c, http.StatusConflict, response.ErrSessionActive)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
