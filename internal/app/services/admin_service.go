package services

import (
	"context"
	"fmt"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/app/repositories"
	"github.com/emres/learnhub/internal/pkg/apperrors"
)

// AdminService defines the interface for admin dashboard aggregates
type AdminService interface {
	ListUsers(ctx context.Context, role models.RoleType, page, pageSize int) ([]*models.User, int64, error)
	PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error)
	Analytics(ctx context.Context) (*dto.AnalyticsResponse, error)
}

// adminServiceImpl implements the AdminService interface
type adminServiceImpl struct {
	repos *repositories.Repositories
}

// NewAdminService creates a new admin service instance
func NewAdminService(repos *repositories.Repositories) AdminService {
	return &adminServiceImpl{repos: repos}
}

// ListUsers returns users for the admin directory, optionally by role
func (s *adminServiceImpl) ListUsers(ctx context.Context, role models.RoleType, page, pageSize int) ([]*models.User, int64, error) {
	if role != "" && !role.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, role)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repos.UserRepository.List(ctx, role, page, pageSize)
}

// PlatformStats collects platform-wide counts for the dashboard
func (s *adminServiceImpl) PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	stats := &dto.PlatformStatsResponse{}
	var err error

	if stats.TotalUsers, err = s.repos.UserRepository.Count(ctx); err != nil {
		return nil, fmt.Errorf("error collecting user count: %w", err)
	}
	if stats.TotalStudents, err = s.repos.UserRepository.CountByRole(ctx, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("error collecting student count: %w", err)
	}
	if stats.TotalTeachers, err = s.repos.UserRepository.CountByRole(ctx, models.RoleTeacher); err != nil {
		return nil, fmt.Errorf("error collecting teacher count: %w", err)
	}
	if stats.TotalCourses, err = s.repos.CourseRepository.Count(ctx); err != nil {
		return nil, fmt.Errorf("error collecting course count: %w", err)
	}
	if stats.ApprovedCourses, err = s.repos.CourseRepository.CountByApproval(ctx, true); err != nil {
		return nil, fmt.Errorf("error collecting approved course count: %w", err)
	}
	if stats.PendingCourses, err = s.repos.CourseRepository.CountByApproval(ctx, false); err != nil {
		return nil, fmt.Errorf("error collecting pending course count: %w", err)
	}
	if stats.TotalEnrollments, err = s.repos.EnrollmentRepository.Count(ctx); err != nil {
		return nil, fmt.Errorf("error collecting enrollment count: %w", err)
	}
	if stats.PendingRequests, err = s.repos.RequestRepository.CountByStatus(ctx, models.RequestPending); err != nil {
		return nil, fmt.Errorf("error collecting pending request count: %w", err)
	}
	if stats.TotalBooks, err = s.repos.BookRepository.Count(ctx); err != nil {
		return nil, fmt.Errorf("error collecting book count: %w", err)
	}
	if stats.TotalCategories, err = s.repos.CategoryRepository.Count(ctx); err != nil {
		return nil, fmt.Errorf("error collecting category count: %w", err)
	}
	if stats.TotalRevenue, err = s.repos.EnrollmentRepository.Revenue(ctx); err != nil {
		return nil, fmt.Errorf("error collecting revenue: %w", err)
	}

	return stats, nil
}

// Analytics collects enrollment analytics for the dashboard
func (s *adminServiceImpl) Analytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	bySubject, err := s.repos.CourseRepository.EnrollmentStatsBySubject(ctx)
	if err != nil {
		return nil, fmt.Errorf("error collecting subject stats: %w", err)
	}

	topCourses, err := s.repos.CourseRepository.TopCoursesByRevenue(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("error collecting top courses: %w", err)
	}

	avgProgress, completionRate, err := s.repos.EnrollmentRepository.ProgressStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error collecting progress stats: %w", err)
	}

	return &dto.AnalyticsResponse{
		EnrollmentsBySubject: bySubject,
		TopCourses:           topCourses,
		AverageProgress:      avgProgress,
		CompletionRate:       completionRate * 100,
	}, nil
}
