package dto

import (
	"time"

	"github.com/emres/learnhub/internal/app/models"
)

// CreateBookRequest is the payload for publishing a book
type CreateBookRequest struct {
	CourseID    int64               `json:"courseId" binding:"required" example:"7"`
	Title       string              `json:"title" binding:"required,min=2,max=200" example:"Calculus Workbook"`
	Author      string              `json:"author" binding:"required" example:"Jane Doe"`
	Description string              `json:"description" example:"Practice problems with solutions"`
	Price       float64             `json:"price" binding:"gte=0" example:"9.99"`
	Category    models.BookCategory `json:"category" binding:"required" example:"Workbook"`
	IsFree      bool                `json:"isFree" example:"false"`
}

// UpdateBookRequest is the payload for updating a book
type UpdateBookRequest struct {
	Title       *string              `json:"title,omitempty" binding:"omitempty,min=2,max=200"`
	Author      *string              `json:"author,omitempty"`
	Description *string              `json:"description,omitempty"`
	Price       *float64             `json:"price,omitempty" binding:"omitempty,gte=0"`
	Category    *models.BookCategory `json:"category,omitempty"`
	IsFree      *bool                `json:"isFree,omitempty"`
}

// BookResponse is the public representation of a book
type BookResponse struct {
	ID            int64               `json:"id"`
	TeacherID     int64               `json:"teacherId"`
	CourseID      int64               `json:"courseId"`
	Title         string              `json:"title"`
	Author        string              `json:"author"`
	Description   string              `json:"description"`
	Price         float64             `json:"price"`
	Category      models.BookCategory `json:"category"`
	IsFree        bool                `json:"isFree"`
	DownloadCount int                 `json:"downloadCount"`
	PurchaseCount int                 `json:"purchaseCount"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// ToBookResponse maps a book model to its public representation
func ToBookResponse(b *models.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		TeacherID:     b.TeacherID,
		CourseID:      b.CourseID,
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		Price:         b.Price,
		Category:      b.Category,
		IsFree:        b.IsFree,
		DownloadCount: b.DownloadCount,
		PurchaseCount: b.PurchaseCount,
		CreatedAt:     b.CreatedAt,
	}
}
