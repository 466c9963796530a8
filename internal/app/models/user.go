package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                      int64     `json:"id" db:"id" example:"1"`                                // Unique identifier for the user
	Name                    string    `json:"name" db:"name" example:"Jane Doe"`                     // Display name
	Email                   string    `json:"email" db:"email" example:"jane@example.com"`           // User's email address
	Password                string    `json:"-" db:"password"`                                       // Hashed password (excluded from JSON)
	Role                    RoleType  `json:"role" db:"role" example:"STUDENT"`                      // User's role (ADMIN, TEACHER or STUDENT)
	IsApproved              bool      `json:"isApproved" db:"is_approved" example:"false"`           // Whether the user was approved as a teacher
	AllocatedTeacherAccount *string   `json:"allocatedTeacherAccount,omitempty" db:"allocated_teacher_account"` // Username of the pool account held by this teacher (nullable)
	Bio                     string    `json:"bio" db:"bio"`                                          // Free-text biography
	CreatedAt               time.Time `json:"createdAt" db:"created_at"`                             // Timestamp when the user was created
	UpdatedAt               time.Time `json:"updatedAt" db:"updated_at"`                             // Timestamp when the user was last updated
}
