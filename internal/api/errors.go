package api

import (
	"errors"
	"net/http"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// notFoundErrors cover both missing resources and resources owned by someone
// else; the two are indistinguishable to the caller.
var notFoundErrors = []error{
	service.ErrUserNotFound,
	service.ErrExerciseNotFound,
	service.ErrMesocycleNotFound,
	service.ErrWorkoutNotFound,
	service.ErrProgressNotFound,
	service.ErrPhotoNotFound,
}

var badRequestErrors = []error{
	domain.ErrValidation,
	service.ErrEmptySearchQuery,
	service.ErrUnsupportedContent,
}

// respondServiceError maps a service error to its HTTP status. Unexpected
// errors are logged and hidden behind a generic message.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case isAny(err, badRequestErrors):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case isAny(err, notFoundErrors):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrStateConflict), errors.Is(err, service.ErrUserAlreadyExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrPhotoStorageOff):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
