package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/auth"
)

// HandleAPIError maps application errors to HTTP responses. Controllers
// hand every service error to this function so status codes stay
// consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrInvalidEmail, apperrors.ErrInvalidPassword):
		c.JSON(400, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationError, err.Error())))

	case apperrors.Is(err, apperrors.ErrInvalidCredentials,
		apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid,
		auth.ErrExpiredToken, auth.ErrInvalidToken):
		c.JSON(401, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Invalid credentials")))

	case apperrors.Is(err, apperrors.ErrPermissionDenied,
		apperrors.ErrNotCourseOwner, apperrors.ErrNotBookOwner):
		c.JSON(403, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())))

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound, apperrors.ErrRequestNotFound,
		apperrors.ErrAccountNotFound, apperrors.ErrCourseNotFound,
		apperrors.ErrCategoryNotFound, apperrors.ErrBookNotFound,
		apperrors.ErrEnrollmentNotFound, apperrors.ErrScheduleNotFound):
		c.JSON(404, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeNotFound, err.Error())))

	case errors.Is(err, apperrors.ErrPoolExhausted):
		c.JSON(409, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceExhausted, err.Error())))

	case apperrors.Is(err, apperrors.ErrRequestAlreadyReviewed,
		apperrors.ErrCourseApproved, apperrors.ErrCourseNotAvailable,
		apperrors.ErrAccountNotAllocated):
		c.JSON(409, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidState, err.Error())))

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrEmailAlreadyExists, apperrors.ErrDuplicatePendingRequest,
		apperrors.ErrAlreadyEnrolled, apperrors.ErrCategoryAlreadyExists,
		apperrors.ErrAlreadyPurchased, apperrors.ErrResourceAlreadyExists):
		c.JSON(409, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error())))

	default:
		c.JSON(500, dto.NewErrorAPIResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalError, "Internal server error")))
	}
}
