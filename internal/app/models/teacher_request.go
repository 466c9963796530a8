package models

import "time"

// TeacherRequest is a student's application to become a teacher, based on
// the 'teacher_requests' table. Status is monotonic: pending requests may be
// approved or rejected once; decided requests are never reviewed again.
type TeacherRequest struct {
	ID                int64         `json:"id" db:"id"`
	TeacherID         int64         `json:"teacherId" db:"teacher_id"` // Requesting user
	Message           string        `json:"message" db:"message"`
	Status            RequestStatus `json:"status" db:"status"`
	RejectionReason   *string       `json:"rejectionReason,omitempty" db:"rejection_reason"`
	AllocatedUsername *string       `json:"allocatedUsername,omitempty" db:"allocated_username"` // Copy of the pool credentials shown to the requester after approval
	AllocatedPassword *string       `json:"allocatedPassword,omitempty" db:"allocated_password"`
	ReviewedBy        *int64        `json:"reviewedBy,omitempty" db:"reviewed_by"` // Admin that decided the request
	ReviewedAt        *time.Time    `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt         time.Time     `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	Teacher *User `json:"teacher,omitempty"`
}
