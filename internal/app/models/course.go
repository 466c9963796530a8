package models

import "time"

// Course represents a published course, based on the 'courses' table.
//
// FinalPrice is always derived from Price by the pricing rule; it is never
// set independently. Free courses carry a zero price and are approved on
// creation. Approved courses are immutable to their owner.
type Course struct {
	ID              int64     `json:"id" db:"id"`
	TeacherID       int64     `json:"teacherId" db:"teacher_id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Subject         string    `json:"subject" db:"subject"`
	ClassLevel      string    `json:"classLevel" db:"class_level"`
	CategoryID      *int64    `json:"categoryId,omitempty" db:"category_id"`
	Price           float64   `json:"price" db:"price"`
	FinalPrice      float64   `json:"finalPrice" db:"final_price"`
	IsFree          bool      `json:"isFree" db:"is_free"`
	Approved        bool      `json:"approved" db:"approved"`
	RejectionReason *string   `json:"rejectionReason,omitempty" db:"rejection_reason"`
	Videos          []string  `json:"videos" db:"videos"`
	EnrollmentCount int       `json:"enrollmentCount" db:"enrollment_count"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Teacher  *User     `json:"teacher,omitempty"`
	Category *Category `json:"category,omitempty"`
}
