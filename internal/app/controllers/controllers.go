package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emres/learnhub/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter. On failure it writes
// a 400 response and returns false; callers should return immediately.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationError, "Invalid "+name+" parameter").
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorAPIResponse(detail))
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body. On failure it writes a 400 response and
// returns false.
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationError, "Invalid request data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorAPIResponse(detail))
		return false
	}
	return true
}
