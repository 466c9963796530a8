package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/app/repositories"
	"github.com/emres/learnhub/internal/pkg/apperrors"
)

// CategoryService defines the interface for category management
type CategoryService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetAllCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// categoryServiceImpl implements the CategoryService interface
type categoryServiceImpl struct {
	categoryRepo *repositories.CategoryRepository
}

// NewCategoryService creates a new category service instance
func NewCategoryService(categoryRepo *repositories.CategoryRepository) CategoryService {
	return &categoryServiceImpl{categoryRepo: categoryRepo}
}

// Slugify derives a URL-safe slug from a category name
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// CreateCategory creates a new category with a derived slug
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	category := &models.Category{
		Name:        name,
		Description: req.Description,
		Slug:        Slugify(name),
	}
	id, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	return s.categoryRepo.GetByID(ctx, id)
}

// GetCategory retrieves a category by ID
func (s *categoryServiceImpl) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// GetCategoryBySlug retrieves a category by its slug
func (s *categoryServiceImpl) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(ctx, slug)
}

// GetAllCategories retrieves all categories
func (s *categoryServiceImpl) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// UpdateCategory edits a category; a name change re-derives the slug
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id int64, req dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
		}
		category.Name = name
		category.Slug = Slugify(name)
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return s.categoryRepo.GetByID(ctx, id)
}

// DeleteCategory removes a category
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}
