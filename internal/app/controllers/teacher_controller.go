package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/app/services"
	"github.com/emres/learnhub/internal/middleware"
)

// TeacherController handles the teacher application workflow
type TeacherController struct {
	teacherService services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// CreateRequest opens a teacher application for the calling student
// @Summary Apply to become a teacher
// @Tags teacher-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeacherRequestRequest true "Application message"
// @Success 201 {object} dto.APIResponse{data=dto.TeacherRequestResponse} "Application submitted"
// @Failure 409 {object} dto.APIResponse "A pending application already exists"
// @Router /teacher-requests [post]
func (c *TeacherController) CreateRequest(ctx *gin.Context) {
	var req dto.CreateTeacherRequestRequest
	if !bindJSON(ctx, &req) {
		return
	}

	request, err := c.teacherService.CreateRequest(ctx, middleware.CurrentUserID(ctx), req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(
		dto.ToTeacherRequestResponse(request), "Application submitted successfully"))
}

// GetMyRequest returns the caller's most recent application
// @Summary Get own teacher application
// @Tags teacher-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TeacherRequestResponse} "Application"
// @Failure 404 {object} dto.APIResponse "No application found"
// @Router /teacher-requests/me [get]
func (c *TeacherController) GetMyRequest(ctx *gin.Context) {
	request, err := c.teacherService.GetMyRequest(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToTeacherRequestResponse(request), ""))
}

// ListRequests returns the admin review queue
// @Summary List teacher applications
// @Tags teacher-requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Applications"
// @Router /admin/teacher-requests [get]
func (c *TeacherController) ListRequests(ctx *gin.Context) {
	status := models.RequestStatus(ctx.Query("status"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	requests, total, err := c.teacherService.ListRequests(ctx, status, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.TeacherRequestResponse, 0, len(requests))
	for _, r := range requests {
		items = append(items, dto.ToTeacherRequestResponse(r))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewPagedResponse(items, page, pageSize, total), ""))
}

// ApproveRequest approves an application and allocates a pool account
// @Summary Approve a teacher application
// @Description Allocates the lowest-numbered free pool account, records it
// @Description on the application and promotes the user to teacher.
// @Tags teacher-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApproveTeacherRequestResponse} "Application approved"
// @Failure 404 {object} dto.APIResponse "Request not found"
// @Failure 409 {object} dto.APIResponse "Already reviewed, or the account pool is exhausted"
// @Router /admin/teacher-requests/{id}/approve [put]
func (c *TeacherController) ApproveRequest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	request, err := c.teacherService.ApproveRequest(ctx, id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ApproveTeacherRequestResponse{
		Request: dto.ToTeacherRequestResponse(request),
	}
	if request.AllocatedUsername != nil {
		resp.AllocatedUsername = *request.AllocatedUsername
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Application approved"))
}

// RejectRequest rejects an application with a reason
// @Summary Reject a teacher application
// @Tags teacher-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.RejectTeacherRequestRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherRequestResponse} "Application rejected"
// @Failure 409 {object} dto.APIResponse "Already reviewed"
// @Router /admin/teacher-requests/{id}/reject [put]
func (c *TeacherController) RejectRequest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectTeacherRequestRequest
	if !bindJSON(ctx, &req) {
		return
	}

	request, err := c.teacherService.RejectRequest(ctx, id, middleware.CurrentUserID(ctx), req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.ToTeacherRequestResponse(request), "Application rejected"))
}

// ReleaseAccount returns a pool account and demotes its holder
// @Summary Release a teacher account back to the pool
// @Tags teacher-requests
// @Produce json
// @Security BearerAuth
// @Param username path string true "Pool account username"
// @Success 200 {object} dto.APIResponse "Account released"
// @Failure 404 {object} dto.APIResponse "Account not found"
// @Failure 409 {object} dto.APIResponse "Account is not allocated"
// @Router /admin/teacher-accounts/{username}/release [put]
func (c *TeacherController) ReleaseAccount(ctx *gin.Context) {
	username := ctx.Param("username")

	if err := c.teacherService.ReleaseAccount(ctx, username); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Account released back to pool"))
}

// PoolStatus summarizes pool occupancy
// @Summary Get teacher account pool status
// @Tags teacher-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PoolStatusResponse} "Pool status"
// @Router /admin/teacher-accounts/status [get]
func (c *TeacherController) PoolStatus(ctx *gin.Context) {
	status, err := c.teacherService.PoolStatus(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status, ""))
}
