package models

import "time"

// TeacherAccount is one pre-provisioned credential pair from the
// 'teacher_accounts_pool' table. Entries are created in bulk by the seeder
// and move from unallocated to allocated exactly once, via the teacher
// request approval workflow.
//
// Invariant: Allocated == false implies AllocatedTo == nil and
// AllocatedAt == nil.
type TeacherAccount struct {
	ID          int64      `json:"id" db:"id"`
	Username    string     `json:"username" db:"username"`   // Unique, immutable
	Password    string     `json:"-" db:"password"`          // Hashed credential (excluded from JSON)
	Allocated   bool       `json:"allocated" db:"allocated"`
	AllocatedTo *int64     `json:"allocatedTo,omitempty" db:"allocated_to"` // User holding this account (nullable)
	AllocatedAt *time.Time `json:"allocatedAt,omitempty" db:"allocated_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
