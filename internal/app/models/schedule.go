package models

import "time"

// Weekday and time slot values used by the schedule generator
var (
	ScheduleDays  = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	ScheduleSlots = []string{"morning", "afternoon", "evening"}
)

// ScheduleEntry is one study session in a weekly schedule
type ScheduleEntry struct {
	Day      string `json:"day"`
	TimeSlot string `json:"timeSlot"`
	Subject  string `json:"subject"`
	Duration int    `json:"duration"` // minutes
}

// Schedule is a student's generated weekly study plan, based on the
// 'schedules' table. Each student has at most one schedule; regeneration
// replaces it.
type Schedule struct {
	ID               int64           `json:"id" db:"id"`
	StudentID        int64           `json:"studentId" db:"student_id"`
	Entries          []ScheduleEntry `json:"entries" db:"entries"`
	SelectedSubjects []string        `json:"selectedSubjects" db:"selected_subjects"`
	GeneratedAt      time.Time       `json:"generatedAt" db:"generated_at"`
}
