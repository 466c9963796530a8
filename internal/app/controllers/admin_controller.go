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

// AdminController handles admin dashboard aggregates
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// ListUsers returns the user directory
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (ADMIN, TEACHER, STUDENT)"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Users"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	c.listUsersByRole(ctx, models.RoleType(ctx.Query("role")))
}

// ListTeachers returns every teacher with their allocated pool account
// @Summary List teachers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Teachers"
// @Router /admin/teachers [get]
func (c *AdminController) ListTeachers(ctx *gin.Context) {
	c.listUsersByRole(ctx, models.RoleTeacher)
}

func (c *AdminController) listUsersByRole(ctx *gin.Context, role models.RoleType) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := c.adminService.ListUsers(ctx, role, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.ToUserResponse(u))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewPagedResponse(items, page, pageSize, total), ""))
}

// PlatformStats returns platform-wide counts
// @Summary Get platform statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PlatformStatsResponse} "Statistics"
// @Router /admin/stats [get]
func (c *AdminController) PlatformStats(ctx *gin.Context) {
	stats, err := c.adminService.PlatformStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}

// Analytics returns enrollment analytics
// @Summary Get enrollment analytics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AnalyticsResponse} "Analytics"
// @Router /admin/analytics [get]
func (c *AdminController) Analytics(ctx *gin.Context) {
	analytics, err := c.adminService.Analytics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(analytics, ""))
}
