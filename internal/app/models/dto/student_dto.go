package dto

import (
	"time"

	"github.com/emres/learnhub/internal/app/models"
)

// MarkVideoWatchedRequest records one watched video for an enrollment
type MarkVideoWatchedRequest struct {
	VideoID  string `json:"videoId" binding:"required" example:"intro-01"`
	Duration int    `json:"duration" binding:"gte=0" example:"540"`
}

// GenerateScheduleRequest is the payload for generating a weekly study plan
type GenerateScheduleRequest struct {
	Subjects        []string `json:"subjects" binding:"required,min=1" example:"Mathematics,Physics"`
	SessionDuration int      `json:"sessionDuration" binding:"omitempty,min=15,max=240" example:"60"`
}

// EnrollmentResponse is the representation of a student's course enrollment
type EnrollmentResponse struct {
	ID                 int64                 `json:"id"`
	CourseID           int64                 `json:"courseId"`
	CourseTitle        string                `json:"courseTitle,omitempty"`
	VideosWatched      []models.WatchedVideo `json:"videosWatched"`
	ProgressPercentage int                   `json:"progressPercentage"`
	Completed          bool                  `json:"completed"`
	CompletedAt        *time.Time            `json:"completedAt,omitempty"`
	EnrolledAt         time.Time             `json:"enrolledAt"`
}

// StudentStatsResponse summarizes a student's learning activity
type StudentStatsResponse struct {
	TotalEnrollments int     `json:"totalEnrollments"`
	CompletedCourses int     `json:"completedCourses"`
	VideosWatched    int     `json:"videosWatched"`
	AverageProgress  float64 `json:"averageProgress"`
	TotalSpent       float64 `json:"totalSpent"`
}

// ScheduleResponse is the representation of a generated schedule
type ScheduleResponse struct {
	ID               int64                  `json:"id"`
	Entries          []models.ScheduleEntry `json:"entries"`
	SelectedSubjects []string               `json:"selectedSubjects"`
	GeneratedAt      time.Time              `json:"generatedAt"`
}

// ToEnrollmentResponse maps an enrollment model to its API representation
func ToEnrollmentResponse(e *models.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:                 e.ID,
		CourseID:           e.CourseID,
		VideosWatched:      e.VideosWatched,
		ProgressPercentage: e.ProgressPercentage,
		Completed:          e.Completed,
		CompletedAt:        e.CompletedAt,
		EnrolledAt:         e.EnrolledAt,
	}
	if e.Course != nil {
		resp.CourseTitle = e.Course.Title
	}
	return resp
}

// ToScheduleResponse maps a schedule model to its API representation
func ToScheduleResponse(s *models.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:               s.ID,
		Entries:          s.Entries,
		SelectedSubjects: s.SelectedSubjects,
		GeneratedAt:      s.GeneratedAt,
	}
}
