package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/logger"
)

const defaultSessionMinutes = 60

type enrollmentStore interface {
	Create(ctx context.Context, studentID, courseID int64) (int64, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	UpdateProgress(ctx context.Context, enrollment *models.Enrollment) error
}

type enrollmentCourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

type scheduleStore interface {
	Upsert(ctx context.Context, schedule *models.Schedule) (int64, error)
	GetByStudent(ctx context.Context, studentID int64) (*models.Schedule, error)
}

// StudentService defines the interface for enrollment and study planning
type StudentService interface {
	EnrollCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	GetProgress(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	MarkVideoWatched(ctx context.Context, studentID, courseID int64, videoID string, duration int) (*models.Enrollment, error)
	GenerateSchedule(ctx context.Context, studentID int64, subjects []string, sessionMinutes int) (*models.Schedule, error)
	GetSchedule(ctx context.Context, studentID int64) (*models.Schedule, error)
	Stats(ctx context.Context, studentID int64) (*dto.StudentStatsResponse, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	enrollments enrollmentStore
	courses     enrollmentCourseStore
	schedules   scheduleStore
}

// NewStudentService creates a new student service instance
func NewStudentService(enrollments enrollmentStore, courses enrollmentCourseStore, schedules scheduleStore) StudentService {
	return &studentServiceImpl{
		enrollments: enrollments,
		courses:     courses,
		schedules:   schedules,
	}
}

// EnrollCourse enrolls the student in an approved course
func (s *studentServiceImpl) EnrollCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.Approved {
		return nil, apperrors.ErrCourseNotAvailable
	}

	if _, err := s.enrollments.Create(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled")

	return s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
}

// ListEnrollments returns the student's enrollments with course details
func (s *studentServiceImpl) ListEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return s.enrollments.ListByStudent(ctx, studentID)
}

// GetProgress returns the student's enrollment in one course
func (s *studentServiceImpl) GetProgress(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	return s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
}

// MarkVideoWatched records a video view and recomputes course progress.
// Rewatching a video does not advance progress. An enrollment reaches
// completed when every course video has been watched.
func (s *studentServiceImpl) MarkVideoWatched(ctx context.Context, studentID, courseID int64, videoID string, duration int) (*models.Enrollment, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, fmt.Errorf("%w: video ID cannot be empty", apperrors.ErrValidationFailed)
	}

	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !containsVideo(course.Videos, videoID) {
		return nil, fmt.Errorf("%w: video %q is not part of this course", apperrors.ErrValidationFailed, videoID)
	}

	for _, w := range enrollment.VideosWatched {
		if w.VideoID == videoID {
			return enrollment, nil
		}
	}

	enrollment.VideosWatched = append(enrollment.VideosWatched, models.WatchedVideo{
		VideoID:  videoID,
		Duration: duration,
	})

	total := len(course.Videos)
	if total > 0 {
		enrollment.ProgressPercentage = len(enrollment.VideosWatched) * 100 / total
	}
	if enrollment.ProgressPercentage >= 100 {
		enrollment.ProgressPercentage = 100
		enrollment.Completed = true
	}

	if err := s.enrollments.UpdateProgress(ctx, enrollment); err != nil {
		return nil, err
	}

	return s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
}

// GenerateSchedule builds a weekly study plan by cycling the chosen
// subjects through every weekday slot. Monday morning gets the first
// subject, Monday afternoon the second, and so on through Friday evening.
func (s *studentServiceImpl) GenerateSchedule(ctx context.Context, studentID int64, subjects []string, sessionMinutes int) (*models.Schedule, error) {
	cleaned := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		if trimmed := strings.TrimSpace(subject); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: at least one subject is required", apperrors.ErrValidationFailed)
	}
	if sessionMinutes <= 0 {
		sessionMinutes = defaultSessionMinutes
	}

	slotsPerDay := len(models.ScheduleSlots)
	totalSlots := len(models.ScheduleDays) * slotsPerDay

	entries := make([]models.ScheduleEntry, 0, totalSlots)
	for slot := 0; slot < totalSlots; slot++ {
		entries = append(entries, models.ScheduleEntry{
			Day:      models.ScheduleDays[slot/slotsPerDay],
			TimeSlot: models.ScheduleSlots[slot%slotsPerDay],
			Subject:  cleaned[slot%len(cleaned)],
			Duration: sessionMinutes,
		})
	}

	schedule := &models.Schedule{
		StudentID:        studentID,
		Entries:          entries,
		SelectedSubjects: cleaned,
	}
	id, err := s.schedules.Upsert(ctx, schedule)
	if err != nil {
		return nil, err
	}
	schedule.ID = id

	return s.schedules.GetByStudent(ctx, studentID)
}

// GetSchedule returns the student's current study plan
func (s *studentServiceImpl) GetSchedule(ctx context.Context, studentID int64) (*models.Schedule, error) {
	return s.schedules.GetByStudent(ctx, studentID)
}

// Stats summarizes the student's learning activity
func (s *studentServiceImpl) Stats(ctx context.Context, studentID int64) (*dto.StudentStatsResponse, error) {
	enrollments, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	stats := &dto.StudentStatsResponse{TotalEnrollments: len(enrollments)}
	var progressSum int
	for _, e := range enrollments {
		if e.Completed {
			stats.CompletedCourses++
		}
		progressSum += e.ProgressPercentage
		stats.VideosWatched += len(e.VideosWatched)
		if e.Course != nil {
			stats.TotalSpent += e.Course.FinalPrice
		}
	}
	if len(enrollments) > 0 {
		stats.AverageProgress = float64(progressSum) / float64(len(enrollments))
	}
	return stats, nil
}

func containsVideo(videos []string, videoID string) bool {
	for _, v := range videos {
		if v == videoID {
			return true
		}
	}
	return false
}
