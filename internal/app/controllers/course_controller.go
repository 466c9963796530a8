package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/app/services"
	"github.com/emres/learnhub/internal/middleware"
)

// CourseController handles course lifecycle operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse publishes a new course for the calling teacher
// @Summary Create a course
// @Description Free courses go live immediately; paid courses get the
// @Description platform commission added to their final price and await review.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.APIResponse "Invalid course data"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, middleware.CurrentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(
		dto.ToCourseResponse(course), "Course created successfully"))
}

// ListCourses returns the public catalog
// @Summary Browse approved courses
// @Tags courses
// @Produce json
// @Param subject query string false "Filter by subject"
// @Param classLevel query string false "Filter by class level"
// @Param categoryId query int false "Filter by category"
// @Param freeOnly query bool false "Only free courses"
// @Param search query string false "Search in title and description"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Courses"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var filter dto.CourseFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationError, "Invalid query parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorAPIResponse(detail))
		return
	}

	courses, total, err := c.courseService.ListCourses(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewPagedResponse(dto.ToCourseResponses(courses), filter.Page, filter.PageSize, total), ""))
}

// GetCourse retrieves one course
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToCourseResponse(course), ""))
}

// ListMyCourses returns the calling teacher's courses, drafts included
// @Summary List own courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Router /courses/mine [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListMyCourses(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToCourseResponses(courses), ""))
}

// UpdateCourse edits an owned, not-yet-approved course
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course changes"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Updated course"
// @Failure 403 {object} dto.APIResponse "Not the course owner"
// @Failure 409 {object} dto.APIResponse "Approved courses cannot be modified"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, middleware.CurrentUserID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.ToCourseResponse(course), "Course updated successfully"))
}

// DeleteCourse removes a course
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 403 {object} dto.APIResponse "Not the course owner"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	isAdmin := middleware.CurrentUserRole(ctx) == models.RoleAdmin
	if err := c.courseService.DeleteCourse(ctx, middleware.CurrentUserID(ctx), id, isAdmin); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Course deleted successfully"))
}

// ListPendingCourses returns courses awaiting review
// @Summary List courses pending approval
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Pending courses"
// @Router /admin/courses/pending [get]
func (c *CourseController) ListPendingCourses(ctx *gin.Context) {
	var filter dto.CourseFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationError, "Invalid query parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorAPIResponse(detail))
		return
	}

	courses, total, err := c.courseService.ListPendingCourses(ctx, filter.Page, filter.PageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewPagedResponse(dto.ToCourseResponses(courses), filter.Page, filter.PageSize, total), ""))
}

// ApproveCourse makes a course visible in the catalog
// @Summary Approve a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course approved"
// @Failure 409 {object} dto.APIResponse "Course already approved"
// @Router /admin/courses/{id}/approve [put]
func (c *CourseController) ApproveCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.ApproveCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.ToCourseResponse(course), "Course approved"))
}

// RejectCourse takes a course out of the catalog
// @Summary Reject a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.RejectCourseRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course rejected"
// @Router /admin/courses/{id}/reject [put]
func (c *CourseController) RejectCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.RejectCourse(ctx, id, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.ToCourseResponse(course), "Course rejected"))
}
