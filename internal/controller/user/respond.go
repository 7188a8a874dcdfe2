package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/service"
	"gorm.io/gorm"
)

// writeServiceError maps domain errors to HTTP statuses. Anything not in the
// taxonomy is a 500 with the error text in details.
func writeServiceError(ctx *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrCertificateAlreadyIssued),
		errors.Is(err, service.ErrAlreadyExists):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrAttemptLimitExceeded):
		ctx.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrCourseNotCompleted),
		errors.Is(err, service.ErrNoQuestionsConfigured),
		errors.Is(err, service.ErrInvalidContent):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrFinalQuizNotConfigured),
		errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: msg, Details: []string{err.Error()}})
	}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func parseUintQuery(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing " + name + " query parameter"})
		return 0, false
	}
	return uint(val), true
}
