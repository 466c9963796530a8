package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/logger"
)

type courseStore interface {
	Create(ctx context.Context, course *models.Course) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, filter dto.CourseFilterRequest, approvedOnly bool) ([]*models.Course, int64, error)
	ListPending(ctx context.Context, page, pageSize int) ([]*models.Course, int64, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	SetApproval(ctx context.Context, id int64, approved bool, rejectionReason *string) error
	Delete(ctx context.Context, id int64) error
}

type categoryStore interface {
	GetByID(ctx context.Context, id int64) (*models.Category, error)
}

// CourseService defines the interface for course lifecycle operations
type CourseService interface {
	CreateCourse(ctx context.Context, teacherID int64, req dto.CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id, viewerID int64, viewerRole models.RoleType) (*models.Course, error)
	ListCourses(ctx context.Context, filter dto.CourseFilterRequest) ([]*models.Course, int64, error)
	ListMyCourses(ctx context.Context, teacherID int64) ([]*models.Course, error)
	ListPendingCourses(ctx context.Context, page, pageSize int) ([]*models.Course, int64, error)
	UpdateCourse(ctx context.Context, teacherID, courseID int64, req dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, teacherID, courseID int64, isAdmin bool) error
	ApproveCourse(ctx context.Context, courseID int64) (*models.Course, error)
	RejectCourse(ctx context.Context, courseID int64, reason string) (*models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courses    courseStore
	categories categoryStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courses courseStore, categories categoryStore) CourseService {
	return &courseServiceImpl{
		courses:    courses,
		categories: categories,
	}
}

// CreateCourse publishes a new course draft for the given teacher. Free
// courses carry a zero price and go live immediately; paid courses get the
// commission applied to their final price and wait for admin approval.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, teacherID int64, req dto.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if !req.IsFree && req.Price <= 0 {
		return nil, fmt.Errorf("%w: paid courses must have a positive price", apperrors.ErrValidationFailed)
	}

	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	course := &models.Course{
		TeacherID:   teacherID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Subject:     req.Subject,
		ClassLevel:  req.ClassLevel,
		CategoryID:  req.CategoryID,
		Videos:      req.Videos,
	}
	if course.Videos == nil {
		course.Videos = []string{}
	}

	if req.IsFree {
		course.IsFree = true
		course.Price = 0
		course.FinalPrice = 0
		course.Approved = true
	} else {
		course.Price = req.Price
		course.FinalPrice = FinalPrice(req.Price)
	}

	id, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Int64("courseID", id).Int64("teacherID", teacherID).
		Bool("free", course.IsFree).Msg("Course created")

	return s.courses.GetByID(ctx, id)
}

// GetCourse retrieves a course. Unapproved courses are visible only to
// their owner and to admins.
func (s *courseServiceImpl) GetCourse(ctx context.Context, id, viewerID int64, viewerRole models.RoleType) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.Approved && viewerRole != models.RoleAdmin && course.TeacherID != viewerID {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// ListCourses returns the public catalog of approved courses
func (s *courseServiceImpl) ListCourses(ctx context.Context, filter dto.CourseFilterRequest) ([]*models.Course, int64, error) {
	normalizeFilter(&filter)
	return s.courses.List(ctx, filter, true)
}

// ListMyCourses returns every course owned by the teacher, drafts included
func (s *courseServiceImpl) ListMyCourses(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	return s.courses.ListByTeacher(ctx, teacherID)
}

// ListPendingCourses returns paid courses awaiting review, oldest first
func (s *courseServiceImpl) ListPendingCourses(ctx context.Context, page, pageSize int) ([]*models.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.courses.ListPending(ctx, page, pageSize)
}

// UpdateCourse edits an owned, not-yet-approved course. Approved courses
// are immutable to their owner; pricing fields are always recomputed so the
// final price can never drift from the base price.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, teacherID, courseID int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, apperrors.ErrNotCourseOwner
	}
	if course.Approved {
		return nil, apperrors.ErrCourseApproved
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
		}
		course.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Subject != nil {
		course.Subject = *req.Subject
	}
	if req.ClassLevel != nil {
		course.ClassLevel = *req.ClassLevel
	}
	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		course.CategoryID = req.CategoryID
	}
	if req.Videos != nil {
		course.Videos = req.Videos
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.IsFree != nil {
		course.IsFree = *req.IsFree
	}

	if course.IsFree {
		course.Price = 0
		course.FinalPrice = 0
		course.Approved = true
	} else {
		if course.Price <= 0 {
			return nil, fmt.Errorf("%w: paid courses must have a positive price", apperrors.ErrValidationFailed)
		}
		course.FinalPrice = FinalPrice(course.Price)
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.courses.GetByID(ctx, courseID)
}

// DeleteCourse removes a course. Owners can only delete drafts; admins can
// delete anything.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, teacherID, courseID int64, isAdmin bool) error {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !isAdmin {
		if course.TeacherID != teacherID {
			return apperrors.ErrNotCourseOwner
		}
		if course.Approved {
			return apperrors.ErrCourseApproved
		}
	}

	if err := s.courses.Delete(ctx, courseID); err != nil {
		return err
	}

	logger.Info().Int64("courseID", courseID).Msg("Course deleted")
	return nil
}

// ApproveCourse makes a paid course visible in the catalog. Approving an
// already approved course is a no-op that still succeeds.
func (s *courseServiceImpl) ApproveCourse(ctx context.Context, courseID int64) (*models.Course, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	if err := s.courses.SetApproval(ctx, courseID, true, nil); err != nil {
		return nil, err
	}

	logger.Info().Int64("courseID", courseID).Msg("Course approved")
	return s.courses.GetByID(ctx, courseID)
}

// RejectCourse takes a course out of the catalog with a reason. Rejection
// always forces the course back to draft, even if it was approved before.
func (s *courseServiceImpl) RejectCourse(ctx context.Context, courseID int64, reason string) (*models.Course, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason cannot be empty", apperrors.ErrValidationFailed)
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(reason)
	if err := s.courses.SetApproval(ctx, courseID, false, &trimmed); err != nil {
		return nil, err
	}

	logger.Info().Int64("courseID", courseID).Msg("Course rejected")
	return s.courses.GetByID(ctx, courseID)
}

func normalizeFilter(filter *dto.CourseFilterRequest) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
}
