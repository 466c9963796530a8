package models

import "time"

// Category groups courses, based on the 'categories' table. The slug is
// derived from the name on create/update.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Slug        string    `json:"slug" db:"slug"`
	CourseCount int       `json:"courseCount" db:"course_count"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
