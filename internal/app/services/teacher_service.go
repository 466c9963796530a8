package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/logger"
)

// Store interfaces for the approval workflow. Satisfied by the concrete
// repositories; narrow on purpose so the workflow can be tested against
// in-memory implementations.

type teacherRequestStore interface {
	Create(ctx context.Context, req *models.TeacherRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.TeacherRequest, error)
	GetLatestByTeacherID(ctx context.Context, teacherID int64) (*models.TeacherRequest, error)
	List(ctx context.Context, status models.RequestStatus, page, pageSize int) ([]*models.TeacherRequest, int64, error)
	MarkApproved(ctx context.Context, id, reviewerID int64, username, hashedPassword string) error
	MarkRejected(ctx context.Context, id, reviewerID int64, reason string) error
	RevertApproval(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, status models.RequestStatus) (int64, error)
}

type accountPoolStore interface {
	ClaimNextAvailable(ctx context.Context, userID int64) (*models.TeacherAccount, error)
	Release(ctx context.Context, username string) error
	GetByUsername(ctx context.Context, username string) (*models.TeacherAccount, error)
	Count(ctx context.Context) (int64, error)
	CountAllocated(ctx context.Context) (int64, error)
}

type teacherUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	PromoteToTeacher(ctx context.Context, id int64, accountUsername string) error
	RevertTeacherPromotion(ctx context.Context, id int64) error
}

// TeacherService defines the interface for the teacher application workflow
type TeacherService interface {
	CreateRequest(ctx context.Context, teacherID int64, message string) (*models.TeacherRequest, error)
	GetMyRequest(ctx context.Context, teacherID int64) (*models.TeacherRequest, error)
	ListRequests(ctx context.Context, status models.RequestStatus, page, pageSize int) ([]*models.TeacherRequest, int64, error)
	ApproveRequest(ctx context.Context, requestID, reviewerID int64) (*models.TeacherRequest, error)
	RejectRequest(ctx context.Context, requestID, reviewerID int64, reason string) (*models.TeacherRequest, error)
	ReleaseAccount(ctx context.Context, username string) error
	PoolStatus(ctx context.Context) (*dto.PoolStatusResponse, error)
}

// teacherServiceImpl implements the TeacherService interface
type teacherServiceImpl struct {
	requests teacherRequestStore
	pool     accountPoolStore
	users    teacherUserStore
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(requests teacherRequestStore, pool accountPoolStore, users teacherUserStore) TeacherService {
	return &teacherServiceImpl{
		requests: requests,
		pool:     pool,
		users:    users,
	}
}

// CreateRequest opens a new application for the given student. A user may
// hold at most one pending application, and teachers cannot apply again.
func (s *teacherServiceImpl) CreateRequest(ctx context.Context, teacherID int64, message string) (*models.TeacherRequest, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.users.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: only students can apply to become teachers", apperrors.ErrPermissionDenied)
	}

	req := &models.TeacherRequest{
		TeacherID: teacherID,
		Message:   strings.TrimSpace(message),
		Status:    models.RequestPending,
	}
	id, err := s.requests.Create(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicatePendingRequest) {
			return nil, apperrors.ErrDuplicatePendingRequest
		}
		return nil, fmt.Errorf("error creating teacher request: %w", err)
	}

	return s.requests.GetByID(ctx, id)
}

// GetMyRequest returns the most recent application of the given user
func (s *teacherServiceImpl) GetMyRequest(ctx context.Context, teacherID int64) (*models.TeacherRequest, error) {
	req, err := s.requests.GetLatestByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRequestNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher request: %w", err)
	}
	return req, nil
}

// ListRequests returns applications for the admin review queue
func (s *teacherServiceImpl) ListRequests(ctx context.Context, status models.RequestStatus, page, pageSize int) ([]*models.TeacherRequest, int64, error) {
	if status != "" && status != models.RequestPending && !status.Terminal() {
		return nil, 0, fmt.Errorf("%w: unknown request status %q", apperrors.ErrValidationFailed, status)
	}
	return s.requests.List(ctx, status, page, pageSize)
}

// ApproveRequest decides a pending application in the requester's favor.
//
// Three records change: the pool account is claimed, the request is marked
// approved with the claimed credentials, and the user is promoted to
// teacher. The claim is the serialization point: concurrent approvals each
// obtain a distinct account or fail with ErrPoolExhausted. If the request
// turns out to be already decided the claim is released, and if the
// promotion fails both earlier writes are compensated.
func (s *teacherServiceImpl) ApproveRequest(ctx context.Context, requestID, reviewerID int64) (*models.TeacherRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, apperrors.ErrRequestAlreadyReviewed
	}

	account, err := s.pool.ClaimNextAvailable(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPoolExhausted) {
			logger.Warn().Int64("requestID", requestID).Msg("Teacher account pool exhausted")
			return nil, apperrors.ErrPoolExhausted
		}
		return nil, fmt.Errorf("error claiming teacher account: %w", err)
	}

	if err := s.requests.MarkApproved(ctx, requestID, reviewerID, account.Username, account.Password); err != nil {
		// Lost the race against another reviewer; put the account back.
		if releaseErr := s.pool.Release(ctx, account.Username); releaseErr != nil {
			logger.Error().Err(releaseErr).Str("username", account.Username).
				Msg("Failed to release pool account after approval conflict")
		}
		return nil, err
	}

	if err := s.users.PromoteToTeacher(ctx, req.TeacherID, account.Username); err != nil {
		if revertErr := s.requests.RevertApproval(ctx, requestID); revertErr != nil {
			logger.Error().Err(revertErr).Int64("requestID", requestID).
				Msg("Failed to revert request approval after promotion failure")
		}
		if releaseErr := s.pool.Release(ctx, account.Username); releaseErr != nil {
			logger.Error().Err(releaseErr).Str("username", account.Username).
				Msg("Failed to release pool account after promotion failure")
		}
		return nil, fmt.Errorf("error promoting user to teacher: %w", err)
	}

	logger.Info().Int64("requestID", requestID).Int64("userID", req.TeacherID).
		Str("account", account.Username).Msg("Teacher request approved")

	return s.requests.GetByID(ctx, requestID)
}

// RejectRequest decides a pending application against the requester
func (s *teacherServiceImpl) RejectRequest(ctx context.Context, requestID, reviewerID int64, reason string) (*models.TeacherRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason cannot be empty", apperrors.ErrValidationFailed)
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, apperrors.ErrRequestAlreadyReviewed
	}

	if err := s.requests.MarkRejected(ctx, requestID, reviewerID, strings.TrimSpace(reason)); err != nil {
		return nil, err
	}

	logger.Info().Int64("requestID", requestID).Int64("reviewerID", reviewerID).Msg("Teacher request rejected")

	return s.requests.GetByID(ctx, requestID)
}

// ReleaseAccount returns an allocated pool account and demotes the user
// holding it. Admin operation for offboarding teachers.
func (s *teacherServiceImpl) ReleaseAccount(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}

	account, err := s.pool.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !account.Allocated {
		return apperrors.ErrAccountNotAllocated
	}

	if err := s.pool.Release(ctx, username); err != nil {
		return err
	}

	if account.AllocatedTo != nil {
		if err := s.users.RevertTeacherPromotion(ctx, *account.AllocatedTo); err != nil {
			logger.Error().Err(err).Int64("userID", *account.AllocatedTo).
				Msg("Failed to demote user after account release")
		}
	}

	logger.Info().Str("username", username).Msg("Teacher account released back to pool")
	return nil
}

// PoolStatus summarizes pool occupancy for the admin dashboard
func (s *teacherServiceImpl) PoolStatus(ctx context.Context) (*dto.PoolStatusResponse, error) {
	total, err := s.pool.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting pool accounts: %w", err)
	}
	allocated, err := s.pool.CountAllocated(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting allocated accounts: %w", err)
	}

	status := &dto.PoolStatusResponse{
		Total:     total,
		Allocated: allocated,
		Available: total - allocated,
	}
	if total > 0 {
		status.UsagePercent = float64(allocated) / float64(total) * 100
	}
	return status, nil
}
