package models

import "time"

// WatchedVideo records a single video view within an enrollment
type WatchedVideo struct {
	VideoID   string    `json:"videoId"`
	WatchedAt time.Time `json:"watchedAt"`
	Duration  int       `json:"duration"` // seconds
}

// Enrollment tracks a student's progress through a course, based on the
// 'enrollments' table. One row per (student, course) pair.
type Enrollment struct {
	ID                 int64          `json:"id" db:"id"`
	StudentID          int64          `json:"studentId" db:"student_id"`
	CourseID           int64          `json:"courseId" db:"course_id"`
	VideosWatched      []WatchedVideo `json:"videosWatched" db:"videos_watched"`
	ProgressPercentage int            `json:"progressPercentage" db:"progress_percentage"`
	Completed          bool           `json:"completed" db:"completed"`
	CompletedAt        *time.Time     `json:"completedAt,omitempty" db:"completed_at"`
	EnrolledAt         time.Time      `json:"enrolledAt" db:"enrolled_at"`

	// Relation (populated when needed)
	Course *Course `json:"course,omitempty"`
}
