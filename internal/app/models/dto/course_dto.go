package dto

import (
	"time"

	"github.com/emres/learnhub/internal/app/models"
)

// CreateCourseRequest is the payload for creating a course
type CreateCourseRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=200" example:"Calculus I"`
	Description string   `json:"description" binding:"required" example:"Limits, derivatives and integrals."`
	Subject     string   `json:"subject" binding:"required" example:"Mathematics"`
	ClassLevel  string   `json:"classLevel" binding:"required" example:"University"`
	CategoryID  *int64   `json:"categoryId,omitempty" example:"3"`
	Price       float64  `json:"price" binding:"gte=0" example:"49.99"`
	IsFree      bool     `json:"isFree" example:"false"`
	Videos      []string `json:"videos,omitempty"`
}

// UpdateCourseRequest is the payload for updating an unapproved course.
// Nil fields are left unchanged.
type UpdateCourseRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	Description *string  `json:"description,omitempty"`
	Subject     *string  `json:"subject,omitempty"`
	ClassLevel  *string  `json:"classLevel,omitempty"`
	CategoryID  *int64   `json:"categoryId,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	IsFree      *bool    `json:"isFree,omitempty"`
	Videos      []string `json:"videos,omitempty"`
}

// RejectCourseRequest is the payload for rejecting a course
type RejectCourseRequest struct {
	Reason string `json:"reason" binding:"required" example:"Content overlaps an existing course"`
}

// CourseFilterRequest carries the query parameters for course listing
type CourseFilterRequest struct {
	Subject    string `form:"subject"`
	ClassLevel string `form:"classLevel"`
	CategoryID int64  `form:"categoryId"`
	FreeOnly   bool   `form:"freeOnly"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// CourseResponse is the public representation of a course
type CourseResponse struct {
	ID              int64     `json:"id"`
	TeacherID       int64     `json:"teacherId"`
	TeacherName     string    `json:"teacherName,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Subject         string    `json:"subject"`
	ClassLevel      string    `json:"classLevel"`
	CategoryID      *int64    `json:"categoryId,omitempty"`
	CategoryName    string    `json:"categoryName,omitempty"`
	Price           float64   `json:"price"`
	FinalPrice      float64   `json:"finalPrice"`
	IsFree          bool      `json:"isFree"`
	Approved        bool      `json:"approved"`
	RejectionReason *string   `json:"rejectionReason,omitempty"`
	Videos          []string  `json:"videos"`
	EnrollmentCount int       `json:"enrollmentCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToCourseResponse maps a course model to its public representation
func ToCourseResponse(c *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:              c.ID,
		TeacherID:       c.TeacherID,
		Title:           c.Title,
		Description:     c.Description,
		Subject:         c.Subject,
		ClassLevel:      c.ClassLevel,
		CategoryID:      c.CategoryID,
		Price:           c.Price,
		FinalPrice:      c.FinalPrice,
		IsFree:          c.IsFree,
		Approved:        c.Approved,
		RejectionReason: c.RejectionReason,
		Videos:          c.Videos,
		EnrollmentCount: c.EnrollmentCount,
		CreatedAt:       c.CreatedAt,
	}
	if c.Teacher != nil {
		resp.TeacherName = c.Teacher.Name
	}
	if c.Category != nil {
		resp.CategoryName = c.Category.Name
	}
	return resp
}

// ToCourseResponses maps a slice of course models
func ToCourseResponses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, ToCourseResponse(c))
	}
	return out
}
