package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/app/services"
	"github.com/emres/learnhub/internal/middleware"
)

// StudentController handles enrollment and study planning
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// EnrollCourse enrolls the caller in a course
// @Summary Enroll in a course
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrolled"
// @Failure 409 {object} dto.APIResponse "Already enrolled, or course not available"
// @Router /courses/{id}/enroll [post]
func (c *StudentController) EnrollCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.studentService.EnrollCourse(ctx, middleware.CurrentUserID(ctx), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(
		dto.ToEnrollmentResponse(enrollment), "Enrolled successfully"))
}

// ListEnrollments returns the caller's course library
// @Summary List own enrollments
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments"
// @Router /students/enrollments [get]
func (c *StudentController) ListEnrollments(ctx *gin.Context) {
	enrollments, err := c.studentService.ListEnrollments(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		items = append(items, dto.ToEnrollmentResponse(e))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items, ""))
}

// GetProgress returns the caller's progress in one course
// @Summary Get course progress
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment"
// @Failure 404 {object} dto.APIResponse "Not enrolled in this course"
// @Router /courses/{id}/progress [get]
func (c *StudentController) GetProgress(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.studentService.GetProgress(ctx, middleware.CurrentUserID(ctx), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToEnrollmentResponse(enrollment), ""))
}

// MarkVideoWatched records a video view and updates progress
// @Summary Mark a course video as watched
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.MarkVideoWatchedRequest true "Watched video"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Progress updated"
// @Failure 404 {object} dto.APIResponse "Not enrolled in this course"
// @Router /courses/{id}/progress [put]
func (c *StudentController) MarkVideoWatched(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MarkVideoWatchedRequest
	if !bindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.studentService.MarkVideoWatched(ctx,
		middleware.CurrentUserID(ctx), courseID, req.VideoID, req.Duration)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.ToEnrollmentResponse(enrollment), "Progress updated"))
}

// GenerateSchedule builds a weekly study plan
// @Summary Generate a study schedule
// @Description Distributes the chosen subjects over weekday morning,
// @Description afternoon and evening slots in a fixed rotation.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateScheduleRequest true "Subjects and session length"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule generated"
// @Router /students/schedule [post]
func (c *StudentController) GenerateSchedule(ctx *gin.Context) {
	var req dto.GenerateScheduleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	schedule, err := c.studentService.GenerateSchedule(ctx,
		middleware.CurrentUserID(ctx), req.Subjects, req.SessionDuration)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.ToScheduleResponse(schedule), "Schedule generated"))
}

// GetSchedule returns the caller's current study plan
// @Summary Get own study schedule
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule"
// @Failure 404 {object} dto.APIResponse "No schedule found"
// @Router /students/schedule [get]
func (c *StudentController) GetSchedule(ctx *gin.Context) {
	schedule, err := c.studentService.GetSchedule(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToScheduleResponse(schedule), ""))
}

// Stats summarizes the caller's learning activity
// @Summary Get own learning statistics
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentStatsResponse} "Statistics"
// @Router /students/stats [get]
func (c *StudentController) Stats(ctx *gin.Context) {
	stats, err := c.studentService.Stats(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}
