package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/app/repositories"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/logger"
)

// BookService defines the interface for book publishing operations
type BookService interface {
	CreateBook(ctx context.Context, teacherID int64, req dto.CreateBookRequest) (*models.Book, error)
	GetBook(ctx context.Context, id int64) (*models.Book, error)
	ListBooksByCourse(ctx context.Context, courseID int64) ([]*models.Book, error)
	ListMyBooks(ctx context.Context, teacherID int64) ([]*models.Book, error)
	GetAllBooks(ctx context.Context) ([]*models.Book, error)
	UpdateBook(ctx context.Context, teacherID, bookID int64, req dto.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, teacherID, bookID int64, isAdmin bool) error
	RecordDownload(ctx context.Context, bookID int64) error
	RecordPurchase(ctx context.Context, bookID int64) error
}

// bookServiceImpl implements the BookService interface
type bookServiceImpl struct {
	bookRepo   *repositories.BookRepository
	courseRepo *repositories.CourseRepository
}

// NewBookService creates a new book service instance
func NewBookService(bookRepo *repositories.BookRepository, courseRepo *repositories.CourseRepository) BookService {
	return &bookServiceImpl{
		bookRepo:   bookRepo,
		courseRepo: courseRepo,
	}
}

// CreateBook publishes a book attached to one of the teacher's own courses
func (s *bookServiceImpl) CreateBook(ctx context.Context, teacherID int64, req dto.CreateBookRequest) (*models.Book, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown book category %q", apperrors.ErrValidationFailed, req.Category)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidationFailed)
	}

	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, apperrors.ErrNotCourseOwner
	}

	book := &models.Book{
		TeacherID:   teacherID,
		CourseID:    req.CourseID,
		Title:       strings.TrimSpace(req.Title),
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsFree:      req.IsFree,
	}
	if book.IsFree {
		book.Price = 0
	}

	id, err := s.bookRepo.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("bookID", id).Int64("teacherID", teacherID).Msg("Book published")

	return s.bookRepo.GetByID(ctx, id)
}

// GetBook retrieves a book by ID
func (s *bookServiceImpl) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

// ListBooksByCourse retrieves all books attached to a course
func (s *bookServiceImpl) ListBooksByCourse(ctx context.Context, courseID int64) ([]*models.Book, error) {
	return s.bookRepo.ListByCourse(ctx, courseID)
}

// ListMyBooks retrieves all books published by the teacher
func (s *bookServiceImpl) ListMyBooks(ctx context.Context, teacherID int64) ([]*models.Book, error) {
	return s.bookRepo.ListByTeacher(ctx, teacherID)
}

// GetAllBooks retrieves every book
func (s *bookServiceImpl) GetAllBooks(ctx context.Context) ([]*models.Book, error) {
	return s.bookRepo.GetAll(ctx)
}

// UpdateBook edits an owned book
func (s *bookServiceImpl) UpdateBook(ctx context.Context, teacherID, bookID int64, req dto.UpdateBookRequest) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.TeacherID != teacherID {
		return nil, apperrors.ErrNotBookOwner
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
		}
		book.Title = strings.TrimSpace(*req.Title)
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown book category %q", apperrors.ErrValidationFailed, *req.Category)
		}
		book.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidationFailed)
		}
		book.Price = *req.Price
	}
	if req.IsFree != nil {
		book.IsFree = *req.IsFree
	}
	if book.IsFree {
		book.Price = 0
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return s.bookRepo.GetByID(ctx, bookID)
}

// DeleteBook removes a book. Owners can delete their own; admins any.
func (s *bookServiceImpl) DeleteBook(ctx context.Context, teacherID, bookID int64, isAdmin bool) error {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	if !isAdmin && book.TeacherID != teacherID {
		return apperrors.ErrNotBookOwner
	}

	return s.bookRepo.Delete(ctx, bookID)
}

// RecordDownload bumps a book's download counter
func (s *bookServiceImpl) RecordDownload(ctx context.Context, bookID int64) error {
	return s.bookRepo.IncrementDownloadCount(ctx, bookID)
}

// RecordPurchase bumps a book's purchase counter
func (s *bookServiceImpl) RecordPurchase(ctx context.Context, bookID int64) error {
	return s.bookRepo.IncrementPurchaseCount(ctx, bookID)
}
