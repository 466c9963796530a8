package dto

import "github.com/emres/learnhub/internal/app/models"

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100" example:"Mathematics"`
	Description string `json:"description" example:"Algebra, geometry and calculus courses"`
}

// UpdateCategoryRequest is the payload for updating a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}

// CategoryResponse is the public representation of a category
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	CourseCount int    `json:"courseCount"`
}

// ToCategoryResponse maps a category model to its public representation
func ToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		CourseCount: c.CourseCount,
	}
}
