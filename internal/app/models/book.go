package models

import "time"

// Book is supplementary material published by a teacher for a course,
// based on the 'books' table.
type Book struct {
	ID            int64        `json:"id" db:"id"`
	TeacherID     int64        `json:"teacherId" db:"teacher_id"`
	CourseID      int64        `json:"courseId" db:"course_id"`
	Title         string       `json:"title" db:"title"`
	Author        string       `json:"author" db:"author"`
	Description   string       `json:"description" db:"description"`
	Price         float64      `json:"price" db:"price"`
	Category      BookCategory `json:"category" db:"category"`
	IsFree        bool         `json:"isFree" db:"is_free"`
	DownloadCount int          `json:"downloadCount" db:"download_count"`
	PurchaseCount int          `json:"purchaseCount" db:"purchase_count"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
}
